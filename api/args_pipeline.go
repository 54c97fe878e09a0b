package api

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

type CreateRenderPassArgs struct {
	Device     Handle
	RenderPass Handle

	Attachments         []core1_0.AttachmentDescription
	Subpasses           []core1_0.SubpassDescription
	SubpassDependencies []core1_0.SubpassDependency
}

func (a CreateRenderPassArgs) Clone() Args {
	a.Attachments = slices.Clone(a.Attachments)
	a.SubpassDependencies = slices.Clone(a.SubpassDependencies)

	if a.Subpasses != nil {
		subpasses := make([]core1_0.SubpassDescription, len(a.Subpasses))
		for i, subpass := range a.Subpasses {
			subpass.InputAttachments = slices.Clone(subpass.InputAttachments)
			subpass.ColorAttachments = slices.Clone(subpass.ColorAttachments)
			subpass.ResolveAttachments = slices.Clone(subpass.ResolveAttachments)
			subpass.PreserveAttachments = slices.Clone(subpass.PreserveAttachments)
			if subpass.DepthStencilAttachment != nil {
				depthStencil := *subpass.DepthStencilAttachment
				subpass.DepthStencilAttachment = &depthStencil
			}
			subpasses[i] = subpass
		}
		a.Subpasses = subpasses
	}

	return a
}

// FinalLayouts returns the layout each attachment is transitioned to at the end of a render pass instance
func (a CreateRenderPassArgs) FinalLayouts() []core1_0.ImageLayout {
	layouts := make([]core1_0.ImageLayout, len(a.Attachments))
	for i, attachment := range a.Attachments {
		layouts[i] = attachment.FinalLayout
	}
	return layouts
}

// CreateFramebufferArgs creates a framebuffer. Attachments are image view handles.
type CreateFramebufferArgs struct {
	Device      Handle
	Framebuffer Handle
	RenderPass  Handle

	Attachments []Handle
	Width       int
	Height      int
	Layers      int
}

func (a CreateFramebufferArgs) Clone() Args {
	a.Attachments = cloneHandles(a.Attachments)
	return a
}

type DescriptorSetLayoutBinding struct {
	Binding           int
	DescriptorType    core1_0.DescriptorType
	DescriptorCount   int
	StageFlags        core1_0.ShaderStageFlags
	ImmutableSamplers []Handle
}

type CreateDescriptorSetLayoutArgs struct {
	Device Handle
	Layout Handle

	Bindings []DescriptorSetLayoutBinding
}

func (a CreateDescriptorSetLayoutArgs) Clone() Args {
	if a.Bindings != nil {
		bindings := make([]DescriptorSetLayoutBinding, len(a.Bindings))
		for i, binding := range a.Bindings {
			binding.ImmutableSamplers = cloneHandles(binding.ImmutableSamplers)
			bindings[i] = binding
		}
		a.Bindings = bindings
	}
	return a
}

type CreatePipelineLayoutArgs struct {
	Device Handle
	Layout Handle

	SetLayouts         []Handle
	PushConstantRanges []core1_0.PushConstantRange
}

func (a CreatePipelineLayoutArgs) Clone() Args {
	a.SetLayouts = cloneHandles(a.SetLayouts)
	a.PushConstantRanges = slices.Clone(a.PushConstantRanges)
	return a
}

type PipelineShaderStage struct {
	Stage  core1_0.ShaderStageFlags
	Module Handle
	Name   string
}

// PipelineCreateInfo describes one graphics or compute pipeline. State holds the encoded
// fixed-function state and is opaque to the tracker.
type PipelineCreateInfo struct {
	Flags        core1_0.PipelineCreateFlags
	Stages       []PipelineShaderStage
	Layout       Handle
	RenderPass   Handle
	Subpass      int
	BasePipeline Handle
	State        []byte
}

func (i PipelineCreateInfo) clone() PipelineCreateInfo {
	i.Stages = slices.Clone(i.Stages)
	i.State = slices.Clone(i.State)
	return i
}

// CreatePipelinesArgs carries vkCreateGraphicsPipelines or vkCreateComputePipelines. CreateInfos and
// Pipelines are parallel slices. Wrappers and snapshots only ever hold single-pipeline arguments.
type CreatePipelinesArgs struct {
	Device        Handle
	PipelineCache Handle

	CreateInfos []PipelineCreateInfo
	Pipelines   []Handle
}

func (a CreatePipelinesArgs) Clone() Args {
	if a.CreateInfos != nil {
		infos := make([]PipelineCreateInfo, len(a.CreateInfos))
		for i, info := range a.CreateInfos {
			infos[i] = info.clone()
		}
		a.CreateInfos = infos
	}
	a.Pipelines = cloneHandles(a.Pipelines)
	return a
}

// Single returns the arguments that would have created only the pipeline at the provided index
func (a CreatePipelinesArgs) Single(index int) CreatePipelinesArgs {
	return CreatePipelinesArgs{
		Device:        a.Device,
		PipelineCache: a.PipelineCache,
		CreateInfos:   []PipelineCreateInfo{a.CreateInfos[index].clone()},
		Pipelines:     []Handle{a.Pipelines[index]},
	}
}
