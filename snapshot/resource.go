package snapshot

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// createDeviceMemories allocates every memory object and maps the memory that was mapped. The mapped
// contents are not part of the snapshot.
func (sb *builder) createDeviceMemories() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeDeviceMemory) {
		sb.create(obj)

		memory, ok := obj.(*wrappers.DeviceMemory)
		if !ok || !memory.IsMapped() {
			continue
		}

		if !sb.isHostVisible(memory) {
			sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Mapped memory is not host visible",
				slog.String("Memory", memory.Handle.String()),
				slog.Int("MemoryTypeIndex", memory.MemoryTypeIndex),
			)
			continue
		}

		sb.write(api.CallMapMemory, memory.ID, api.MapMemoryArgs{
			Device: memory.Device,
			Memory: memory.Handle,
			Offset: memory.Mapping.Offset,
			Size:   memory.Mapping.Size,
			Flags:  memory.Mapping.Flags,
			Data:   memory.Mapping.Data,
		})
	}
}

// isHostVisible returns false only if the memory properties of the memory's physical device were
// queried and say the memory type cannot be mapped
func (sb *builder) isHostVisible(memory *wrappers.DeviceMemory) bool {
	obj, err := sb.tracker.Lookup(api.ObjectTypeDevice, memory.Device)
	if err != nil {
		return true
	}
	device, ok := obj.(*wrappers.Device)
	if !ok {
		return true
	}

	obj, err = sb.tracker.Lookup(api.ObjectTypePhysicalDevice, device.PhysicalDevice)
	if err != nil {
		return true
	}
	physicalDevice, ok := obj.(*wrappers.PhysicalDevice)
	if !ok || physicalDevice.MemoryProperties == nil {
		return true
	}
	return physicalDevice.IsMemoryTypeHostVisible(memory.MemoryTypeIndex)
}

func (sb *builder) bindMemory(object wrappers.Ref, objectType api.ObjectType, binding wrappers.MemoryBinding) bool {
	if !binding.IsBound() {
		return false
	}

	if !sb.tracker.IsLive(binding.Memory.ID) {
		sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Bound memory was freed",
			slog.String("Type", objectType.String()),
			slog.String("Handle", object.Handle.String()),
		)
		return false
	}
	return true
}

func (sb *builder) createBuffers() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeBuffer) {
		sb.create(obj)

		buffer, ok := obj.(*wrappers.Buffer)
		if !ok || !sb.bindMemory(buffer.Ref(), api.ObjectTypeBuffer, buffer.Binding) {
			continue
		}

		sb.write(api.CallBindBufferMemory, buffer.ID, api.BindBufferMemoryArgs{
			Device: buffer.Device,
			Buffer: buffer.Handle,
			Memory: buffer.Binding.Memory.Handle,
			Offset: buffer.Binding.Offset,
		})
	}
}

// createImages creates and binds every image that does not belong to a swapchain, then restores the
// current layout of every image
func (sb *builder) createImages() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeImage) {
		image, ok := obj.(*wrappers.Image)
		if !ok {
			sb.create(obj)
			continue
		}

		if !image.IsSwapchainImage() {
			sb.create(image)

			if sb.bindMemory(image.Ref(), api.ObjectTypeImage, image.Binding) {
				sb.write(api.CallBindImageMemory, image.ID, api.BindImageMemoryArgs{
					Device: image.Device,
					Image:  image.Handle,
					Memory: image.Binding.Memory.Handle,
					Offset: image.Binding.Offset,
					Size:   image.Binding.Size,
				})
			}
		}

		if image.CurrentLayout != initialLayout(image) {
			sb.write(api.CallMetaSetImageLayout, image.ID, api.SetImageLayoutArgs{
				Device: image.Device,
				Image:  image.Handle,
				Layout: image.CurrentLayout,
			})
		}
	}
}

// initialLayout is the layout an image is in when it is recreated
func initialLayout(image *wrappers.Image) core1_0.ImageLayout {
	if args, ok := image.CreateParams.(api.CreateImageArgs); ok {
		return args.InitialLayout
	}
	return core1_0.ImageLayoutUndefined
}

// createViews creates every image view and buffer view whose resource is still live
func (sb *builder) createViews() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeImageView) {
		if view, ok := obj.(*wrappers.ImageView); ok && !sb.isEmitted(view.Image.ID) {
			sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Image view's image was destroyed",
				slog.String("ImageView", view.Handle.String()),
			)
			continue
		}
		sb.create(obj)
	}

	for _, obj := range sb.tracker.Objects(api.ObjectTypeBufferView) {
		if view, ok := obj.(*wrappers.BufferView); ok && !sb.isEmitted(view.Buffer.ID) {
			sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Buffer view's buffer was destroyed",
				slog.String("BufferView", view.Handle.String()),
			)
			continue
		}
		sb.create(obj)
	}
}

// createGenericObjects creates device objects whose only tracked state is their creation parameters
func (sb *builder) createGenericObjects() {
	sb.createAll(api.ObjectTypeSamplerYcbcrConversion)
	sb.createAll(api.ObjectTypeSampler)
	sb.createAll(api.ObjectTypePipelineCache)
	sb.createAll(api.ObjectTypeValidationCache)
	sb.createAll(api.ObjectTypeObjectTable)
	sb.createAll(api.ObjectTypeIndirectCommandsLayout)
	sb.createAll(api.ObjectTypeAccelerationStructure)
}
