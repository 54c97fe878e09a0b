package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slices"
)

// CreateRenderPass tracks a render pass created by vkCreateRenderPass or vkCreateRenderPass2
func (t *Tracker) CreateRenderPass(call api.CallID, args api.CreateRenderPassArgs) (*wrappers.RenderPass, error) {
	t.logger.Debug("Tracker::CreateRenderPass")

	renderPass := &wrappers.RenderPass{
		Wrapper:      t.newWrapper(api.ObjectTypeRenderPass, args.RenderPass, args.Device, call, args),
		Device:       args.Device,
		FinalLayouts: args.FinalLayouts(),
	}

	err := t.track(renderPass, nil)
	if err != nil {
		return nil, err
	}
	return renderPass, nil
}

func (t *Tracker) CreateFramebuffer(args api.CreateFramebufferArgs) (*wrappers.Framebuffer, error) {
	t.logger.Debug("Tracker::CreateFramebuffer")

	framebuffer := &wrappers.Framebuffer{
		Wrapper:     t.newWrapper(api.ObjectTypeFramebuffer, args.Framebuffer, args.Device, api.CallCreateFramebuffer, args),
		Device:      args.Device,
		RenderPass:  t.dependency(api.ObjectTypeRenderPass, args.RenderPass),
		Attachments: make([]wrappers.Ref, len(args.Attachments)),
		Views:       make([]wrappers.Ref, len(args.Attachments)),
	}

	for i, handle := range args.Attachments {
		view, err := lookup[*wrappers.ImageView](t, api.ObjectTypeImageView, handle)
		if err != nil {
			// The attachment is left null, so render pass instances will not transition it
			continue
		}
		framebuffer.Views[i] = view.Ref()
		framebuffer.Attachments[i] = view.Image
	}

	err := t.track(framebuffer, nil)
	if err != nil {
		return nil, err
	}
	return framebuffer, nil
}

func (t *Tracker) CreateDescriptorSetLayout(args api.CreateDescriptorSetLayoutArgs) (*wrappers.DescriptorSetLayout, error) {
	t.logger.Debug("Tracker::CreateDescriptorSetLayout")

	wrapper := t.newWrapper(api.ObjectTypeDescriptorSetLayout, args.Layout, args.Device, api.CallCreateDescriptorSetLayout, args)
	layout := &wrappers.DescriptorSetLayout{
		Wrapper:  wrapper,
		Device:   args.Device,
		Bindings: wrapper.CreateParams.(api.CreateDescriptorSetLayoutArgs).Bindings,
	}

	err := t.track(layout, nil)
	if err != nil {
		return nil, err
	}
	return layout, nil
}

func (t *Tracker) CreatePipelineLayout(args api.CreatePipelineLayoutArgs) (*wrappers.PipelineLayout, error) {
	t.logger.Debug("Tracker::CreatePipelineLayout")

	layout := &wrappers.PipelineLayout{
		Wrapper: t.newWrapper(api.ObjectTypePipelineLayout, args.Layout, args.Device, api.CallCreatePipelineLayout, args),
		Device:  args.Device,
	}

	for _, setLayout := range args.SetLayouts {
		dep := t.dependency(api.ObjectTypeDescriptorSetLayout, setLayout)
		if !dep.IsNull() {
			layout.SetLayouts = append(layout.SetLayouts, dep)
		}
	}

	err := t.track(layout, nil)
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// CreatePipelines tracks the pipelines created by one vkCreateGraphicsPipelines or vkCreateComputePipelines
// call. Each pipeline keeps the arguments that would have created it alone.
func (t *Tracker) CreatePipelines(call api.CallID, args api.CreatePipelinesArgs) ([]*wrappers.Pipeline, error) {
	t.logger.Debug("Tracker::CreatePipelines")

	if call != api.CallCreateGraphicsPipelines && call != api.CallCreateComputePipelines {
		return nil, errors.Newf("%s does not create pipelines", call)
	}
	if len(args.CreateInfos) != len(args.Pipelines) {
		return nil, errors.Newf("%d create infos were provided for %d pipelines", len(args.CreateInfos), len(args.Pipelines))
	}

	pipelines := make([]*wrappers.Pipeline, 0, len(args.Pipelines))
	var err error
	for i, handle := range args.Pipelines {
		if handle == api.NullHandle {
			continue
		}

		single := args.Single(i)
		info := single.CreateInfos[0]

		pipeline := &wrappers.Pipeline{
			Wrapper:      t.newWrapper(api.ObjectTypePipeline, handle, args.Device, call, single),
			Device:       args.Device,
			Layout:       t.dependency(api.ObjectTypePipelineLayout, info.Layout),
			RenderPass:   t.dependency(api.ObjectTypeRenderPass, info.RenderPass),
			BasePipeline: t.ref(api.ObjectTypePipeline, info.BasePipeline),
		}

		for _, stage := range info.Stages {
			dep := t.dependency(api.ObjectTypeShaderModule, stage.Module)
			if dep.IsNull() {
				continue
			}
			if slices.IndexFunc(pipeline.ShaderModules, func(d wrappers.Dependency) bool { return d.ID == dep.ID }) < 0 {
				pipeline.ShaderModules = append(pipeline.ShaderModules, dep)
			}
		}

		trackErr := t.track(pipeline, nil)
		if trackErr != nil {
			err = errors.CombineErrors(err, trackErr)
			continue
		}
		pipelines = append(pipelines, pipeline)
	}

	return pipelines, err
}
