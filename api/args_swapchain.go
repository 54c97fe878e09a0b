package api

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"golang.org/x/exp/slices"
)

type GetSurfaceSupportArgs struct {
	PhysicalDevice   Handle
	QueueFamilyIndex int
	Surface          Handle
	Supported        bool
}

func (a GetSurfaceSupportArgs) Clone() Args {
	return a
}

type GetSurfaceCapabilitiesArgs struct {
	PhysicalDevice Handle
	Surface        Handle
	Capabilities   khr_surface.SurfaceCapabilities
}

func (a GetSurfaceCapabilitiesArgs) Clone() Args {
	return a
}

type GetSurfaceFormatsArgs struct {
	PhysicalDevice Handle
	Surface        Handle
	Formats        []khr_surface.SurfaceFormat
}

func (a GetSurfaceFormatsArgs) Clone() Args {
	a.Formats = slices.Clone(a.Formats)
	return a
}

type GetSurfacePresentModesArgs struct {
	PhysicalDevice Handle
	Surface        Handle
	PresentModes   []khr_surface.PresentMode
}

func (a GetSurfacePresentModesArgs) Clone() Args {
	a.PresentModes = slices.Clone(a.PresentModes)
	return a
}

type CreateSwapchainArgs struct {
	Device    Handle
	Swapchain Handle
	Surface   Handle

	MinImageCount      int
	ImageFormat        core1_0.Format
	ImageColorSpace    khr_surface.ColorSpace
	ImageExtent        core1_0.Extent2D
	ImageArrayLayers   int
	ImageUsage         core1_0.ImageUsageFlags
	ImageSharingMode   core1_0.SharingMode
	QueueFamilyIndices []int
	PresentMode        khr_surface.PresentMode
	Clipped            bool
	OldSwapchain       Handle
}

func (a CreateSwapchainArgs) Clone() Args {
	a.QueueFamilyIndices = slices.Clone(a.QueueFamilyIndices)
	return a
}

// GetSwapchainImagesArgs retrieves the images owned by a swapchain. Images is in swapchain index order.
type GetSwapchainImagesArgs struct {
	Device    Handle
	Swapchain Handle
	Images    []Handle
}

func (a GetSwapchainImagesArgs) Clone() Args {
	a.Images = cloneHandles(a.Images)
	return a
}

// AcquireNextImageArgs carries vkAcquireNextImageKHR or vkAcquireNextImage2KHR. Snapshots also emit it to
// restore images that were acquired but not yet presented.
type AcquireNextImageArgs struct {
	Device     Handle
	Swapchain  Handle
	Semaphore  Handle
	Fence      Handle
	ImageIndex int
}

func (a AcquireNextImageArgs) Clone() Args {
	return a
}

// QueuePresentArgs presents images. Swapchains and ImageIndices are parallel slices.
type QueuePresentArgs struct {
	Queue          Handle
	WaitSemaphores []Handle
	Swapchains     []Handle
	ImageIndices   []int
}
