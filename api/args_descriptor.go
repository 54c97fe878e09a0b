package api

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

type CreateDescriptorPoolArgs struct {
	Device Handle
	Pool   Handle

	Flags     core1_0.DescriptorPoolCreateFlags
	MaxSets   int
	PoolSizes []core1_0.DescriptorPoolSize
}

func (a CreateDescriptorPoolArgs) Clone() Args {
	a.PoolSizes = slices.Clone(a.PoolSizes)
	return a
}

// AllocateDescriptorSetsArgs allocates descriptor sets. SetLayouts and Sets are parallel slices.
type AllocateDescriptorSetsArgs struct {
	Device Handle
	Pool   Handle

	SetLayouts []Handle
	Sets       []Handle
}

func (a AllocateDescriptorSetsArgs) Clone() Args {
	a.SetLayouts = cloneHandles(a.SetLayouts)
	a.Sets = cloneHandles(a.Sets)
	return a
}

type FreeDescriptorSetsArgs struct {
	Device Handle
	Pool   Handle
	Sets   []Handle
}

func (a FreeDescriptorSetsArgs) Clone() Args {
	a.Sets = cloneHandles(a.Sets)
	return a
}

type DescriptorImageInfo struct {
	Sampler     Handle
	ImageView   Handle
	ImageLayout core1_0.ImageLayout
}

type DescriptorBufferInfo struct {
	Buffer Handle
	Offset int
	Range  int
}

type WriteDescriptorSet struct {
	DstSet          Handle
	DstBinding      int
	DstArrayElement int
	DescriptorType  core1_0.DescriptorType

	ImageInfo       []DescriptorImageInfo
	BufferInfo      []DescriptorBufferInfo
	TexelBufferView []Handle
}

func (w WriteDescriptorSet) clone() WriteDescriptorSet {
	w.ImageInfo = slices.Clone(w.ImageInfo)
	w.BufferInfo = slices.Clone(w.BufferInfo)
	w.TexelBufferView = cloneHandles(w.TexelBufferView)
	return w
}

// Count returns the number of descriptors written
func (w WriteDescriptorSet) Count() int {
	switch {
	case len(w.ImageInfo) > 0:
		return len(w.ImageInfo)
	case len(w.BufferInfo) > 0:
		return len(w.BufferInfo)
	default:
		return len(w.TexelBufferView)
	}
}

type CopyDescriptorSet struct {
	SrcSet          Handle
	SrcBinding      int
	SrcArrayElement int
	DstSet          Handle
	DstBinding      int
	DstArrayElement int
	DescriptorCount int
}

type UpdateDescriptorSetsArgs struct {
	Device Handle
	Writes []WriteDescriptorSet
	Copies []CopyDescriptorSet
}

func (a UpdateDescriptorSetsArgs) Clone() Args {
	if a.Writes != nil {
		writes := make([]WriteDescriptorSet, len(a.Writes))
		for i, write := range a.Writes {
			writes[i] = write.clone()
		}
		a.Writes = writes
	}
	a.Copies = slices.Clone(a.Copies)
	return a
}
