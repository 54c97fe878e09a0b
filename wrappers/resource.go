package wrappers

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// MemoryMapping describes the mapped range of a DeviceMemory. Data is the host address handed to the
// application.
type MemoryMapping struct {
	Offset int
	Size   int
	Flags  core1_0.MemoryMapFlags
	Data   uintptr
}

type DeviceMemory struct {
	Wrapper
	Device api.Handle

	MemoryTypeIndex int
	AllocationSize  int

	// Mapping is non-nil only while the memory is mapped
	Mapping *MemoryMapping
}

func (m *DeviceMemory) IsMapped() bool {
	return m.Mapping != nil
}

// MemoryBinding records the memory a buffer or image was bound to. Binding is a one-time operation.
type MemoryBinding struct {
	Memory Ref
	Offset int
	Size   int
}

func (b *MemoryBinding) IsBound() bool {
	return !b.Memory.IsNull()
}

// Bind sets the binding. It fails if the binding was already set.
func (b *MemoryBinding) Bind(memory Ref, offset, size int) error {
	if b.IsBound() {
		return errors.Wrapf(api.ErrAlreadyBound, "bound to memory %s", b.Memory.Handle)
	}

	b.Memory = memory
	b.Offset = offset
	b.Size = size
	return nil
}

type Buffer struct {
	Wrapper
	Device api.Handle

	Binding          MemoryBinding
	QueueFamilyIndex int
	CreatedSize      int
}

type Image struct {
	Wrapper
	Device api.Handle

	Binding          MemoryBinding
	QueueFamilyIndex int

	ImageType   core1_0.ImageType
	Format      core1_0.Format
	Extent      core1_0.Extent3D
	MipLevels   int
	ArrayLayers int
	Samples     core1_0.SampleCountFlags
	Tiling      core1_0.ImageTiling

	// CurrentLayout is the layout the image is in after every submitted command has executed
	CurrentLayout core1_0.ImageLayout

	// Swapchain is the owning swapchain for presentable images, and the null handle otherwise
	Swapchain api.Handle
}

func (i *Image) IsSwapchainImage() bool {
	return i.Swapchain != api.NullHandle
}

type ImageView struct {
	Wrapper
	Device api.Handle
	Image  Ref
}

type BufferView struct {
	Wrapper
	Device api.Handle
	Buffer Ref
}
