package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func (t *Tracker) AllocateMemory(args api.AllocateMemoryArgs) (*wrappers.DeviceMemory, error) {
	t.logger.Debug("Tracker::AllocateMemory")

	memory := &wrappers.DeviceMemory{
		Wrapper:         t.newWrapper(api.ObjectTypeDeviceMemory, args.Memory, args.Device, api.CallAllocateMemory, args),
		Device:          args.Device,
		MemoryTypeIndex: args.MemoryTypeIndex,
		AllocationSize:  args.AllocationSize,
	}

	err := t.track(memory, nil)
	if err != nil {
		return nil, err
	}
	return memory, nil
}

func (t *Tracker) MapMemory(args api.MapMemoryArgs) error {
	t.logger.Debug("Tracker::MapMemory")

	memory, err := lookup[*wrappers.DeviceMemory](t, api.ObjectTypeDeviceMemory, args.Memory)
	if err != nil {
		return err
	}

	memory.Mapping = &wrappers.MemoryMapping{
		Offset: args.Offset,
		Size:   args.Size,
		Flags:  args.Flags,
		Data:   args.Data,
	}
	return nil
}

func (t *Tracker) UnmapMemory(args api.UnmapMemoryArgs) error {
	t.logger.Debug("Tracker::UnmapMemory")

	memory, err := lookup[*wrappers.DeviceMemory](t, api.ObjectTypeDeviceMemory, args.Memory)
	if err != nil {
		return err
	}

	memory.Mapping = nil
	return nil
}

func firstQueueFamily(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	return indices[0]
}

func (t *Tracker) CreateBuffer(args api.CreateBufferArgs) (*wrappers.Buffer, error) {
	t.logger.Debug("Tracker::CreateBuffer")

	buffer := &wrappers.Buffer{
		Wrapper:          t.newWrapper(api.ObjectTypeBuffer, args.Buffer, args.Device, api.CallCreateBuffer, args),
		Device:           args.Device,
		QueueFamilyIndex: firstQueueFamily(args.QueueFamilyIndices),
		CreatedSize:      args.Size,
	}

	err := t.track(buffer, nil)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// BindBufferMemory records the memory a buffer is bound to. It fails with api.ErrAlreadyBound if the
// buffer was already bound.
func (t *Tracker) BindBufferMemory(args api.BindBufferMemoryArgs) error {
	t.logger.Debug("Tracker::BindBufferMemory")

	buffer, err := lookup[*wrappers.Buffer](t, api.ObjectTypeBuffer, args.Buffer)
	if err != nil {
		return err
	}

	memory, err := t.registry.Lookup(api.ObjectTypeDeviceMemory, args.Memory)
	if err != nil {
		return err
	}

	err = buffer.Binding.Bind(memory.Base().Ref(), args.Offset, buffer.CreatedSize)
	if err != nil {
		return errors.Wrapf(err, "buffer %s", args.Buffer)
	}
	return nil
}

func (t *Tracker) CreateImage(args api.CreateImageArgs) (*wrappers.Image, error) {
	t.logger.Debug("Tracker::CreateImage")

	image := &wrappers.Image{
		Wrapper:          t.newWrapper(api.ObjectTypeImage, args.Image, args.Device, api.CallCreateImage, args),
		Device:           args.Device,
		QueueFamilyIndex: firstQueueFamily(args.QueueFamilyIndices),
		ImageType:        args.ImageType,
		Format:           args.Format,
		Extent:           args.Extent,
		MipLevels:        args.MipLevels,
		ArrayLayers:      args.ArrayLayers,
		Samples:          args.Samples,
		Tiling:           args.Tiling,
		CurrentLayout:    args.InitialLayout,
	}

	err := t.track(image, nil)
	if err != nil {
		return nil, err
	}
	return image, nil
}

// BindImageMemory records the memory an image is bound to. It fails with api.ErrAlreadyBound if the
// image was already bound.
func (t *Tracker) BindImageMemory(args api.BindImageMemoryArgs) error {
	t.logger.Debug("Tracker::BindImageMemory")

	image, err := lookup[*wrappers.Image](t, api.ObjectTypeImage, args.Image)
	if err != nil {
		return err
	}

	memory, err := t.registry.Lookup(api.ObjectTypeDeviceMemory, args.Memory)
	if err != nil {
		return err
	}

	err = image.Binding.Bind(memory.Base().Ref(), args.Offset, args.Size)
	if err != nil {
		return errors.Wrapf(err, "image %s", args.Image)
	}
	return nil
}

func (t *Tracker) CreateImageView(args api.CreateImageViewArgs) (*wrappers.ImageView, error) {
	t.logger.Debug("Tracker::CreateImageView")

	view := &wrappers.ImageView{
		Wrapper: t.newWrapper(api.ObjectTypeImageView, args.ImageView, args.Device, api.CallCreateImageView, args),
		Device:  args.Device,
		Image:   t.ref(api.ObjectTypeImage, args.Image),
	}

	err := t.track(view, nil)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (t *Tracker) CreateBufferView(args api.CreateBufferViewArgs) (*wrappers.BufferView, error) {
	t.logger.Debug("Tracker::CreateBufferView")

	view := &wrappers.BufferView{
		Wrapper: t.newWrapper(api.ObjectTypeBufferView, args.BufferView, args.Device, api.CallCreateBufferView, args),
		Device:  args.Device,
		Buffer:  t.ref(api.ObjectTypeBuffer, args.Buffer),
	}

	err := t.track(view, nil)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetImageLayout sets the current layout of an image directly. Snapshots use it to restore layouts.
func (t *Tracker) SetImageLayout(args api.SetImageLayoutArgs) error {
	t.logger.Debug("Tracker::SetImageLayout")

	image, err := lookup[*wrappers.Image](t, api.ObjectTypeImage, args.Image)
	if err != nil {
		return err
	}

	image.CurrentLayout = args.Layout
	return nil
}

func (t *Tracker) setImageLayout(image api.HandleID, layout core1_0.ImageLayout) bool {
	obj, err := t.registry.LookupID(image)
	if err != nil {
		return false
	}

	wrapper, ok := obj.(*wrappers.Image)
	if !ok {
		return false
	}

	wrapper.CurrentLayout = layout
	return true
}
