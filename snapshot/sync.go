package snapshot

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slog"
)

// createFences creates every fence in the signal state it is currently in
// createFences recreates fences as they were created, then moves any fence whose state has changed since
// creation to its current state
func (sb *builder) createFences() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeFence) {
		sb.create(obj)

		fence, ok := obj.(*wrappers.Fence)
		if !ok || fence.Signaled == fence.CreatedSignaled {
			continue
		}

		call := api.CallResetFences
		if fence.Signaled {
			call = api.CallWaitForFences
		}
		sb.write(call, fence.ID, api.FencesArgs{
			Device: fence.Device,
			Fences: []api.Handle{fence.Handle},
		})
	}
}

func (sb *builder) createSemaphores() {
	sb.createAll(api.ObjectTypeSemaphore)
}

func (sb *builder) createEvents() {
	sb.createAll(api.ObjectTypeEvent)
}

// restoreSemaphoreSignals restores every pending semaphore signal that restoreAcquiredImages will not
// restore by acquiring an image
func (sb *builder) restoreSemaphoreSignals() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeSwapchain) {
		swapchain, ok := obj.(*wrappers.Swapchain)
		if !ok {
			continue
		}

		for _, info := range swapchain.ImageAcquiredInfo {
			if !info.Acquired || info.Semaphore.IsNull() {
				continue
			}
			if _, claimed := sb.acquireSemaphores[info.Semaphore.ID]; claimed {
				continue
			}

			obj, err := sb.tracker.LookupID(info.Semaphore.ID)
			if err != nil {
				continue
			}
			if semaphore, ok := obj.(*wrappers.Semaphore); ok && semaphore.Signaled == api.SignalSourceAcquireImage {
				sb.acquireSemaphores[info.Semaphore.ID] = struct{}{}
			}
		}
	}

	for _, obj := range sb.tracker.Objects(api.ObjectTypeSemaphore) {
		semaphore, ok := obj.(*wrappers.Semaphore)
		if !ok || semaphore.Signaled == api.SignalSourceNone {
			continue
		}
		if _, claimed := sb.acquireSemaphores[semaphore.ID]; claimed {
			continue
		}

		sb.write(api.CallMetaSignalSemaphore, semaphore.ID, api.SignalSemaphoreArgs{
			Device:    semaphore.Device,
			Semaphore: semaphore.Handle,
			Source:    semaphore.Signaled,
		})
	}
}

// restoreAcquiredImages acquires every image that was acquired and not yet presented. Each acquire
// signals the semaphore it originally signaled, if that signal is still pending.
func (sb *builder) restoreAcquiredImages() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeSwapchain) {
		swapchain, ok := obj.(*wrappers.Swapchain)
		if !ok {
			continue
		}

		for index, info := range swapchain.ImageAcquiredInfo {
			if !info.Acquired {
				continue
			}

			args := api.AcquireNextImageArgs{
				Device:     swapchain.Device,
				Swapchain:  swapchain.Handle,
				ImageIndex: index,
			}

			if _, claimed := sb.acquireSemaphores[info.Semaphore.ID]; claimed && !info.Semaphore.IsNull() {
				args.Semaphore = info.Semaphore.Handle
				delete(sb.acquireSemaphores, info.Semaphore.ID)
			}
			if !info.Fence.IsNull() && sb.tracker.IsLive(info.Fence.ID) {
				args.Fence = info.Fence.Handle
			}

			sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Restoring acquired image",
				slog.String("Swapchain", swapchain.Handle.String()),
				slog.Int("ImageIndex", index),
			)
			sb.write(api.CallAcquireNextImage, swapchain.ID, args)
		}
	}
}
