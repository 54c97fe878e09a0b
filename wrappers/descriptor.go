package wrappers

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type DescriptorPool struct {
	Wrapper
	Device api.Handle

	Flags   core1_0.DescriptorPoolCreateFlags
	MaxSets int
}

// DescriptorBinding holds the descriptors written to one binding of a descriptor set. Only one of the
// info slices is in use, depending on which kind of descriptor was written.
type DescriptorBinding struct {
	DescriptorType core1_0.DescriptorType
	Count          int

	Written          []bool
	ImageInfo        []api.DescriptorImageInfo
	BufferInfo       []api.DescriptorBufferInfo
	TexelBufferViews []api.Handle
}

func newDescriptorBinding(layout api.DescriptorSetLayoutBinding) *DescriptorBinding {
	return &DescriptorBinding{
		DescriptorType: layout.DescriptorType,
		Count:          layout.DescriptorCount,
		Written:        make([]bool, layout.DescriptorCount),
	}
}

// Descriptor returns the write that would recreate the descriptor at the provided array element
func (b *DescriptorBinding) Descriptor(set api.Handle, binding, element int) api.WriteDescriptorSet {
	write := api.WriteDescriptorSet{
		DstSet:          set,
		DstBinding:      binding,
		DstArrayElement: element,
		DescriptorType:  b.DescriptorType,
	}

	switch {
	case b.ImageInfo != nil:
		write.ImageInfo = []api.DescriptorImageInfo{b.ImageInfo[element]}
	case b.BufferInfo != nil:
		write.BufferInfo = []api.DescriptorBufferInfo{b.BufferInfo[element]}
	case b.TexelBufferViews != nil:
		write.TexelBufferView = []api.Handle{b.TexelBufferViews[element]}
	}

	return write
}

func (b *DescriptorBinding) copyElement(dst int, src *DescriptorBinding, srcElement int) {
	b.Written[dst] = src.Written[srcElement]
	if src.ImageInfo != nil {
		if b.ImageInfo == nil {
			b.ImageInfo = make([]api.DescriptorImageInfo, b.Count)
		}
		b.ImageInfo[dst] = src.ImageInfo[srcElement]
	}
	if src.BufferInfo != nil {
		if b.BufferInfo == nil {
			b.BufferInfo = make([]api.DescriptorBufferInfo, b.Count)
		}
		b.BufferInfo[dst] = src.BufferInfo[srcElement]
	}
	if src.TexelBufferViews != nil {
		if b.TexelBufferViews == nil {
			b.TexelBufferViews = make([]api.Handle, b.Count)
		}
		b.TexelBufferViews[dst] = src.TexelBufferViews[srcElement]
	}
}

type DescriptorSet struct {
	Wrapper
	Device api.Handle
	Pool   api.Handle

	Layout   Dependency
	Bindings map[int]*DescriptorBinding
}

// NewDescriptorSet builds a descriptor set with one empty binding for every binding of its layout
func NewDescriptorSet(base Wrapper, device, pool api.Handle, layout *DescriptorSetLayout) *DescriptorSet {
	set := &DescriptorSet{
		Wrapper:  base,
		Device:   device,
		Pool:     pool,
		Bindings: make(map[int]*DescriptorBinding),
	}

	if layout != nil {
		set.Layout = AsDependency(layout)
		for _, binding := range layout.Bindings {
			set.Bindings[binding.Binding] = newDescriptorBinding(binding)
		}
	}

	return set
}

func (s *DescriptorSet) Dependencies() []Dependency {
	return appendDependency(nil, s.Layout)
}

// BindingNumbers returns the set's binding numbers in ascending order
func (s *DescriptorSet) BindingNumbers() []int {
	numbers := maps.Keys(s.Bindings)
	slices.Sort(numbers)
	return numbers
}

// advance finds the binding and element written by the next consecutive descriptor update, rolling over
// into the following binding when an update runs past the end of a binding
func (s *DescriptorSet) advance(binding, element int) (int, int, *DescriptorBinding) {
	for {
		info, ok := s.Bindings[binding]
		if !ok {
			return binding, element, nil
		}
		if element < info.Count {
			return binding, element, info
		}
		element -= info.Count
		binding++
	}
}

// Write applies a descriptor write to the set. Descriptors past the end of the set's bindings are ignored.
func (s *DescriptorSet) Write(write api.WriteDescriptorSet) {
	binding := write.DstBinding
	element := write.DstArrayElement

	for i := 0; i < write.Count(); i++ {
		var info *DescriptorBinding
		binding, element, info = s.advance(binding, element)
		if info == nil {
			return
		}

		info.Written[element] = true
		switch {
		case len(write.ImageInfo) > 0:
			if info.ImageInfo == nil {
				info.ImageInfo = make([]api.DescriptorImageInfo, info.Count)
			}
			info.ImageInfo[element] = write.ImageInfo[i]
		case len(write.BufferInfo) > 0:
			if info.BufferInfo == nil {
				info.BufferInfo = make([]api.DescriptorBufferInfo, info.Count)
			}
			info.BufferInfo[element] = write.BufferInfo[i]
		default:
			if info.TexelBufferViews == nil {
				info.TexelBufferViews = make([]api.Handle, info.Count)
			}
			info.TexelBufferViews[element] = write.TexelBufferView[i]
		}
		element++
	}
}

// Copy applies a descriptor copy from src, which may be the receiver
func (s *DescriptorSet) Copy(src *DescriptorSet, descriptorCopy api.CopyDescriptorSet) {
	srcBinding, srcElement := descriptorCopy.SrcBinding, descriptorCopy.SrcArrayElement
	dstBinding, dstElement := descriptorCopy.DstBinding, descriptorCopy.DstArrayElement

	for i := 0; i < descriptorCopy.DescriptorCount; i++ {
		var srcInfo, dstInfo *DescriptorBinding
		srcBinding, srcElement, srcInfo = src.advance(srcBinding, srcElement)
		dstBinding, dstElement, dstInfo = s.advance(dstBinding, dstElement)
		if srcInfo == nil || dstInfo == nil {
			return
		}

		dstInfo.copyElement(dstElement, srcInfo, srcElement)
		srcElement++
		dstElement++
	}
}
