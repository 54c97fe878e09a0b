package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

func (t *Tracker) surface(handle api.Handle) (*wrappers.Surface, error) {
	return lookup[*wrappers.Surface](t, api.ObjectTypeSurface, handle)
}

func (t *Tracker) GetPhysicalDeviceSurfaceSupport(args api.GetSurfaceSupportArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceSurfaceSupport")

	surface, err := t.surface(args.Surface)
	if err != nil {
		return err
	}

	surface.SetSupport(args.PhysicalDevice, args.QueueFamilyIndex, args.Supported)
	return nil
}

func (t *Tracker) GetPhysicalDeviceSurfaceCapabilities(args api.GetSurfaceCapabilitiesArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceSurfaceCapabilities")

	surface, err := t.surface(args.Surface)
	if err != nil {
		return err
	}

	surface.Capabilities[args.PhysicalDevice] = args.Capabilities
	return nil
}

func (t *Tracker) GetPhysicalDeviceSurfaceFormats(args api.GetSurfaceFormatsArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceSurfaceFormats")

	surface, err := t.surface(args.Surface)
	if err != nil {
		return err
	}

	surface.Formats[args.PhysicalDevice] = slices.Clone(args.Formats)
	return nil
}

func (t *Tracker) GetPhysicalDeviceSurfacePresentModes(args api.GetSurfacePresentModesArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceSurfacePresentModes")

	surface, err := t.surface(args.Surface)
	if err != nil {
		return err
	}

	surface.PresentModes[args.PhysicalDevice] = slices.Clone(args.PresentModes)
	return nil
}

func (t *Tracker) CreateSwapchain(args api.CreateSwapchainArgs) (*wrappers.Swapchain, error) {
	t.logger.Debug("Tracker::CreateSwapchain")

	swapchain := &wrappers.Swapchain{
		Wrapper:            t.newWrapper(api.ObjectTypeSwapchain, args.Swapchain, args.Device, api.CallCreateSwapchain, args),
		Device:             args.Device,
		Surface:            args.Surface,
		QueueFamilyIndex:   firstQueueFamily(args.QueueFamilyIndices),
		Format:             args.ImageFormat,
		Extent:             args.ImageExtent,
		ArrayLayers:        args.ImageArrayLayers,
		LastPresentedImage: -1,
	}

	err := t.track(swapchain, nil)
	if err != nil {
		return nil, err
	}
	return swapchain, nil
}

// GetSwapchainImages tracks the images owned by a swapchain. Images that were already retrieved keep
// their existing wrapper.
func (t *Tracker) GetSwapchainImages(args api.GetSwapchainImagesArgs) ([]*wrappers.Image, error) {
	t.logger.Debug("Tracker::GetSwapchainImages")

	swapchain, err := lookup[*wrappers.Swapchain](t, api.ObjectTypeSwapchain, args.Swapchain)
	if err != nil {
		return nil, err
	}
	if len(args.Images) == 0 {
		// Image count query
		return nil, nil
	}

	images := make([]*wrappers.Image, 0, len(args.Images))
	refs := make([]wrappers.Ref, 0, len(args.Images))
	for _, handle := range args.Images {
		image, err := lookup[*wrappers.Image](t, api.ObjectTypeImage, handle)
		if err != nil && !api.IsNotFound(err) {
			return nil, err
		}

		if image == nil {
			image = &wrappers.Image{
				Wrapper:          t.newWrapper(api.ObjectTypeImage, handle, args.Device, api.CallGetSwapchainImages, args),
				Device:           args.Device,
				QueueFamilyIndex: swapchain.QueueFamilyIndex,
				ImageType:        core1_0.ImageType2D,
				Format:           swapchain.Format,
				Extent:           core1_0.Extent3D{Width: swapchain.Extent.Width, Height: swapchain.Extent.Height, Depth: 1},
				MipLevels:        1,
				ArrayLayers:      swapchain.ArrayLayers,
				Samples:          core1_0.Samples1,
				Tiling:           core1_0.ImageTilingOptimal,
				CurrentLayout:    core1_0.ImageLayoutUndefined,
				Swapchain:        args.Swapchain,
			}

			err = t.track(image, swapchain)
			if err != nil {
				return nil, err
			}
		}

		images = append(images, image)
		refs = append(refs, image.Ref())
	}

	if len(swapchain.ImageAcquiredInfo) != len(refs) {
		swapchain.ImageAcquiredInfo = make([]wrappers.ImageAcquiredInfo, len(refs))
	}
	swapchain.Images = refs
	return images, nil
}

// AcquireNextImage marks a swapchain image as acquired, and marks the semaphore passed to the acquire
// as pending a signal from the acquire
func (t *Tracker) AcquireNextImage(args api.AcquireNextImageArgs) error {
	t.logger.Debug("Tracker::AcquireNextImage")

	swapchain, err := lookup[*wrappers.Swapchain](t, api.ObjectTypeSwapchain, args.Swapchain)
	if err != nil {
		return err
	}

	swapchain.Acquire(args.ImageIndex, t.ref(api.ObjectTypeSemaphore, args.Semaphore), t.ref(api.ObjectTypeFence, args.Fence))

	if args.Semaphore == api.NullHandle {
		return nil
	}
	return t.signalSemaphores([]api.Handle{args.Semaphore}, api.SignalSourceAcquireImage)
}

// QueuePresent consumes the wait semaphores and releases each presented image back to its swapchain
func (t *Tracker) QueuePresent(args api.QueuePresentArgs) error {
	t.logger.Debug("Tracker::QueuePresent")

	if len(args.Swapchains) != len(args.ImageIndices) {
		return errors.Newf("%d image indices were provided for %d swapchains", len(args.ImageIndices), len(args.Swapchains))
	}

	err := t.waitSemaphores(args.WaitSemaphores)

	for i, handle := range args.Swapchains {
		swapchain, lookupErr := lookup[*wrappers.Swapchain](t, api.ObjectTypeSwapchain, handle)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		swapchain.Present(args.ImageIndices[i])
	}

	return err
}
