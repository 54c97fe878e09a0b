package wrappers

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type RenderPass struct {
	Wrapper
	Device api.Handle

	// FinalLayouts holds the layout each attachment is left in when a render pass instance ends
	FinalLayouts []core1_0.ImageLayout
}

type Framebuffer struct {
	Wrapper
	Device api.Handle

	RenderPass Dependency
	// Attachments holds the images behind each attachment view, in attachment order
	Attachments []Ref
	// Views holds the attachment views themselves, in attachment order
	Views []Ref
}

func (f *Framebuffer) Dependencies() []Dependency {
	return appendDependency(nil, f.RenderPass)
}

type DescriptorSetLayout struct {
	Wrapper
	Device api.Handle

	Bindings []api.DescriptorSetLayoutBinding
}

// Binding returns the layout of the binding with the provided binding number
func (l *DescriptorSetLayout) Binding(binding int) (api.DescriptorSetLayoutBinding, bool) {
	for _, info := range l.Bindings {
		if info.Binding == binding {
			return info, true
		}
	}
	return api.DescriptorSetLayoutBinding{}, false
}

type PipelineLayout struct {
	Wrapper
	Device api.Handle

	SetLayouts []Dependency
}

func (l *PipelineLayout) Dependencies() []Dependency {
	return appendDependency(nil, l.SetLayouts...)
}

type Pipeline struct {
	Wrapper
	Device api.Handle

	ShaderModules []Dependency
	Layout        Dependency
	RenderPass    Dependency
	// BasePipeline is the pipeline this pipeline derives from, if any
	BasePipeline Ref
}

func (p *Pipeline) Dependencies() []Dependency {
	deps := appendDependency(nil, p.ShaderModules...)
	deps = appendDependency(deps, p.Layout)
	return appendDependency(deps, p.RenderPass)
}

func appendDependency(deps []Dependency, add ...Dependency) []Dependency {
	for _, dep := range add {
		if !dep.IsNull() {
			deps = append(deps, dep)
		}
	}
	return deps
}
