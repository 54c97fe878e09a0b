package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/registry"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slog"
)

func (t *Tracker) CreateFence(args api.CreateFenceArgs) (*wrappers.Fence, error) {
	t.logger.Debug("Tracker::CreateFence")

	fence := &wrappers.Fence{
		Wrapper:         t.newWrapper(api.ObjectTypeFence, args.Fence, args.Device, api.CallCreateFence, args),
		Device:          args.Device,
		CreatedSignaled: args.Signaled,
		Signaled:        args.Signaled,
	}

	err := t.track(fence, nil)
	if err != nil {
		return nil, err
	}
	return fence, nil
}

func (t *Tracker) setFencesSignaled(fences []api.Handle, signaled bool) error {
	var err error
	for _, handle := range fences {
		fence, lookupErr := lookup[*wrappers.Fence](t, api.ObjectTypeFence, handle)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		fence.Signaled = signaled
	}
	return err
}

func (t *Tracker) ResetFences(args api.FencesArgs) error {
	t.logger.Debug("Tracker::ResetFences")

	return t.setFencesSignaled(args.Fences, false)
}

// SetFencesSignaled marks fences as signaled. The dispatch layer calls it when vkWaitForFences or
// vkGetFenceStatus report that fences have been signaled.
func (t *Tracker) SetFencesSignaled(args api.FencesArgs) error {
	t.logger.Debug("Tracker::SetFencesSignaled")

	return t.setFencesSignaled(args.Fences, true)
}

func (t *Tracker) semaphore(handle api.Handle) (*wrappers.Semaphore, error) {
	return lookup[*wrappers.Semaphore](t, api.ObjectTypeSemaphore, handle)
}

func (t *Tracker) waitSemaphores(handles []api.Handle) error {
	var err error
	for _, handle := range handles {
		semaphore, lookupErr := t.semaphore(handle)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		semaphore.Wait()
	}
	return err
}

// signalSemaphores marks semaphores as pending a signal. Semaphores that are already pending a signal
// keep their state, and the inconsistency is logged and returned once every semaphore is processed.
func (t *Tracker) signalSemaphores(handles []api.Handle, source api.SignalSource) error {
	var err error
	for _, handle := range handles {
		semaphore, lookupErr := t.semaphore(handle)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}

		signalErr := semaphore.Signal(source)
		if signalErr != nil {
			t.warn("semaphore signaled while a signal is pending", signalErr,
				slog.String("Semaphore", handle.String()),
				slog.String("Source", source.String()),
			)
			err = errors.CombineErrors(err, signalErr)
		}
	}
	return err
}

// QueueSubmit applies the pending state of every submitted command buffer, in submission order, and
// updates the signal state of the wait and signal semaphores. Pending state that targets objects
// destroyed since recording is dropped.
func (t *Tracker) QueueSubmit(args api.QueueSubmitArgs) error {
	t.logger.Debug("Tracker::QueueSubmit")

	var err error
	for _, submit := range args.Submits {
		err = errors.CombineErrors(err, t.waitSemaphores(submit.WaitSemaphores))

		for _, handle := range submit.CommandBuffers {
			commandBuffer, lookupErr := t.commandBuffer(handle)
			if lookupErr != nil {
				err = errors.CombineErrors(err, lookupErr)
				continue
			}
			t.applyPendingState(commandBuffer)
		}

		err = errors.CombineErrors(err, t.signalSemaphores(submit.SignalSemaphores, api.SignalSourceQueue))
	}

	return err
}

func (t *Tracker) applyPendingState(commandBuffer *wrappers.CommandBuffer) {
	for _, id := range sortedKeys(commandBuffer.PendingLayouts) {
		t.setImageLayout(id, commandBuffer.PendingLayouts[id].Layout)
	}

	for _, id := range sortedKeys(commandBuffer.PendingQueries) {
		queryPool, err := registry.LookupIDAs[*wrappers.QueryPool](t.registry, id)
		if err != nil {
			continue
		}

		for query, info := range commandBuffer.PendingQueries[id].Queries {
			queryPool.SetQuery(query, info)
		}
	}
}

// QueueBindSparse updates the signal state of the wait and signal semaphores of sparse binding operations
func (t *Tracker) QueueBindSparse(args api.QueueBindSparseArgs) error {
	t.logger.Debug("Tracker::QueueBindSparse")

	var err error
	for _, bind := range args.Binds {
		err = errors.CombineErrors(err, t.waitSemaphores(bind.WaitSemaphores))
		err = errors.CombineErrors(err, t.signalSemaphores(bind.SignalSemaphores, api.SignalSourceQueue))
	}
	return err
}

// SignalSemaphore sets the signal state of a semaphore directly. Snapshots use it to restore
// semaphores that were pending a signal at the trim point.
func (t *Tracker) SignalSemaphore(args api.SignalSemaphoreArgs) error {
	t.logger.Debug("Tracker::SignalSemaphore")

	semaphore, err := t.semaphore(args.Semaphore)
	if err != nil {
		return err
	}

	semaphore.Signaled = args.Source
	return nil
}
