package wrappers

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// ImageAcquiredInfo tracks an image that the application has acquired from a swapchain and not yet
// presented, along with the synchronization objects the acquire signaled
type ImageAcquiredInfo struct {
	Acquired  bool
	Semaphore Ref
	Fence     Ref
}

type Swapchain struct {
	Wrapper
	Device  api.Handle
	Surface api.Handle

	QueueFamilyIndex int
	Format           core1_0.Format
	Extent           core1_0.Extent2D
	ArrayLayers      int

	// LastPresentedImage is -1 until an image has been presented
	LastPresentedImage int
	// Images and ImageAcquiredInfo are indexed by swapchain image index
	Images            []Ref
	ImageAcquiredInfo []ImageAcquiredInfo
}

func (s *Swapchain) Acquire(imageIndex int, semaphore, fence Ref) {
	if imageIndex < 0 || imageIndex >= len(s.ImageAcquiredInfo) {
		return
	}
	s.ImageAcquiredInfo[imageIndex] = ImageAcquiredInfo{
		Acquired:  true,
		Semaphore: semaphore,
		Fence:     fence,
	}
}

func (s *Swapchain) Present(imageIndex int) {
	if imageIndex < 0 || imageIndex >= len(s.ImageAcquiredInfo) {
		return
	}
	s.ImageAcquiredInfo[imageIndex] = ImageAcquiredInfo{}
	s.LastPresentedImage = imageIndex
}
