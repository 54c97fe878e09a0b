package snapshot

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slog"
)

func (sb *builder) createCommandPools() {
	sb.createAll(api.ObjectTypeCommandPool)
}

func (sb *builder) createDescriptorSetLayouts() {
	sb.createAll(api.ObjectTypeDescriptorSetLayout)
}

func (sb *builder) createPipelineLayouts() {
	sb.createAll(api.ObjectTypePipelineLayout)
	sb.createAll(api.ObjectTypeDescriptorUpdateTemplate)
}

func (sb *builder) createRenderPasses() {
	sb.createAll(api.ObjectTypeRenderPass)
}

func (sb *builder) createShaderModules() {
	sb.createAll(api.ObjectTypeShaderModule)
}

func (sb *builder) createPipelines() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypePipeline) {
		sb.createPipeline(obj)
	}
}

// createPipeline creates a pipeline after the pipeline it derives from. A destroyed base pipeline is
// not recreated.
func (sb *builder) createPipeline(obj wrappers.Object) {
	if pipeline, ok := obj.(*wrappers.Pipeline); ok && !pipeline.BasePipeline.IsNull() {
		base, err := sb.tracker.LookupID(pipeline.BasePipeline.ID)
		if err == nil && !sb.isEmitted(pipeline.BasePipeline.ID) {
			sb.createPipeline(base)
		}
	}

	sb.create(obj)
}

func (sb *builder) createDescriptorPools() {
	sb.createAll(api.ObjectTypeDescriptorPool)
}

// createFramebuffers creates every framebuffer whose attachment views were all recreated
func (sb *builder) createFramebuffers() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeFramebuffer) {
		framebuffer, ok := obj.(*wrappers.Framebuffer)
		if ok && !sb.hasAttachmentViews(framebuffer) {
			sb.logger.LogAttrs(sb.ctx, slog.LevelWarn, "framebuffer attachment view was destroyed, framebuffer will not be recreated",
				slog.String("Framebuffer", framebuffer.Handle.String()),
			)
			continue
		}

		sb.create(obj)
	}
}

func (sb *builder) hasAttachmentViews(framebuffer *wrappers.Framebuffer) bool {
	args, ok := framebuffer.CreateParams.(api.CreateFramebufferArgs)
	if !ok {
		return true
	}

	for i, attachment := range args.Attachments {
		if attachment == api.NullHandle {
			continue
		}
		if i >= len(framebuffer.Views) || framebuffer.Views[i].IsNull() || !sb.isEmitted(framebuffer.Views[i].ID) {
			return false
		}
	}
	return true
}

// createDescriptorSets allocates every descriptor set and writes each descriptor that was written to
// it, as long as the objects the descriptor refers to were recreated
func (sb *builder) createDescriptorSets() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeDescriptorSet) {
		sb.create(obj)

		set, ok := obj.(*wrappers.DescriptorSet)
		if !ok {
			continue
		}

		var writes []api.WriteDescriptorSet
		for _, number := range set.BindingNumbers() {
			binding := set.Bindings[number]
			for element, written := range binding.Written {
				if !written {
					continue
				}

				write := binding.Descriptor(set.Handle, number, element)
				if write.Count() == 0 || !sb.hasDescriptorReferents(write) {
					continue
				}
				writes = append(writes, write)
			}
		}

		if len(writes) == 0 {
			continue
		}

		sb.write(api.CallUpdateDescriptorSets, set.ID, api.UpdateDescriptorSetsArgs{
			Device: set.Device,
			Writes: writes,
		})
	}
}

func (sb *builder) hasDescriptorReferents(write api.WriteDescriptorSet) bool {
	for _, info := range write.ImageInfo {
		if !sb.isEmittedHandle(api.ObjectTypeSampler, info.Sampler) ||
			!sb.isEmittedHandle(api.ObjectTypeImageView, info.ImageView) {
			return false
		}
	}
	for _, info := range write.BufferInfo {
		if !sb.isEmittedHandle(api.ObjectTypeBuffer, info.Buffer) {
			return false
		}
	}
	for _, view := range write.TexelBufferView {
		if !sb.isEmittedHandle(api.ObjectTypeBufferView, view) {
			return false
		}
	}
	return true
}

// isEmittedHandle returns true if handle is null, or names a live object that was recreated
func (sb *builder) isEmittedHandle(objectType api.ObjectType, handle api.Handle) bool {
	if handle == api.NullHandle {
		return true
	}

	obj, err := sb.tracker.Lookup(objectType, handle)
	if err != nil {
		return false
	}
	return sb.isEmitted(obj.Base().ID)
}
