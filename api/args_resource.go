package api

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

type AllocateMemoryArgs struct {
	Device Handle
	Memory Handle

	AllocationSize  int
	MemoryTypeIndex int
}

func (a AllocateMemoryArgs) Clone() Args {
	return a
}

// MapMemoryArgs maps a range of device memory. Data is the host address returned to the application;
// it is only meaningful inside the capturing process.
type MapMemoryArgs struct {
	Device Handle
	Memory Handle

	Offset int
	Size   int
	Flags  core1_0.MemoryMapFlags
	Data   uintptr
}

func (a MapMemoryArgs) Clone() Args {
	return a
}

type UnmapMemoryArgs struct {
	Device Handle
	Memory Handle
}

func (a UnmapMemoryArgs) Clone() Args {
	return a
}

type CreateBufferArgs struct {
	Device Handle
	Buffer Handle

	Flags              core1_0.BufferCreateFlags
	Size               int
	Usage              core1_0.BufferUsageFlags
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
}

func (a CreateBufferArgs) Clone() Args {
	a.QueueFamilyIndices = slices.Clone(a.QueueFamilyIndices)
	return a
}

type BindBufferMemoryArgs struct {
	Device Handle
	Buffer Handle
	Memory Handle
	Offset int
}

func (a BindBufferMemoryArgs) Clone() Args {
	return a
}

type CreateImageArgs struct {
	Device Handle
	Image  Handle

	Flags              core1_0.ImageCreateFlags
	ImageType          core1_0.ImageType
	Format             core1_0.Format
	Extent             core1_0.Extent3D
	MipLevels          int
	ArrayLayers        int
	Samples            core1_0.SampleCountFlags
	Tiling             core1_0.ImageTiling
	Usage              core1_0.ImageUsageFlags
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
	InitialLayout      core1_0.ImageLayout
}

func (a CreateImageArgs) Clone() Args {
	a.QueueFamilyIndices = slices.Clone(a.QueueFamilyIndices)
	return a
}

// BindImageMemoryArgs binds an image to memory. Size is the size from the image's memory
// requirements, as observed by the dispatch layer.
type BindImageMemoryArgs struct {
	Device Handle
	Image  Handle
	Memory Handle
	Offset int
	Size   int
}

func (a BindImageMemoryArgs) Clone() Args {
	return a
}

type CreateImageViewArgs struct {
	Device    Handle
	ImageView Handle
	Image     Handle

	ViewType         core1_0.ImageViewType
	Format           core1_0.Format
	SubresourceRange core1_0.ImageSubresourceRange
}

func (a CreateImageViewArgs) Clone() Args {
	return a
}

type CreateBufferViewArgs struct {
	Device     Handle
	BufferView Handle
	Buffer     Handle

	Format core1_0.Format
	Offset int
	Range  int
}

func (a CreateBufferViewArgs) Clone() Args {
	return a
}

// SetImageLayoutArgs restores the current layout of an image in a snapshot
type SetImageLayoutArgs struct {
	Device Handle
	Image  Handle
	Layout core1_0.ImageLayout
}

func (a SetImageLayoutArgs) Clone() Args {
	return a
}
