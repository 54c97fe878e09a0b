package tracker

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
)

func TestTracker_ConcurrentCreateAndDestroy(t *testing.T) {
	testCases := map[string]struct {
		FreeBeforeDestroy bool
	}{
		"CascadeFromPool": {
			FreeBeforeDestroy: false,
		},
		"FreeThenDestroyPool": {
			FreeBeforeDestroy: true,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newDeviceTracker(t)

			const workers = 8
			var wg sync.WaitGroup
			errs := make([]error, workers)
			for worker := 0; worker < workers; worker++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					errs[worker] = createAndDestroyObjects(tracker, api.Handle((worker+1)*0x10000), testCase.FreeBeforeDestroy)
				}(worker)
			}
			wg.Wait()

			for _, err := range errs {
				require.NoError(t, err)
			}
			require.NoError(t, tracker.Validate())
			require.Empty(t, tracker.Objects(api.ObjectTypeBuffer))
			require.Empty(t, tracker.Objects(api.ObjectTypeCommandPool))
			require.Empty(t, tracker.Objects(api.ObjectTypeCommandBuffer))

			device, err := tracker.Lookup(api.ObjectTypeDevice, deviceHandle)
			require.NoError(t, err)
			for _, id := range tracker.Owned(device.Base().ID) {
				owned, err := tracker.LookupID(id)
				require.NoError(t, err)
				require.Equal(t, api.ObjectTypeQueue, owned.Base().Type)
			}
		})
	}
}

func createAndDestroyObjects(tracker *Tracker, base api.Handle, freeBeforeDestroy bool) error {
	for i := api.Handle(0); i < 20; i++ {
		handle := base + i*0x10

		if _, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: handle, Size: 64}); err != nil {
			return err
		}
		if _, err := tracker.Lookup(api.ObjectTypeBuffer, handle); err != nil {
			return err
		}

		pool := handle + 1
		if _, err := tracker.CreateCommandPool(api.CreateCommandPoolArgs{Device: deviceHandle, Pool: pool}); err != nil {
			return err
		}
		commandBuffers := []api.Handle{handle + 2, handle + 3}
		if _, err := tracker.AllocateCommandBuffers(api.AllocateCommandBuffersArgs{
			Device:         deviceHandle,
			Pool:           pool,
			CommandBuffers: commandBuffers,
		}); err != nil {
			return err
		}

		poolWrapper, err := tracker.Lookup(api.ObjectTypeCommandPool, pool)
		if err != nil {
			return err
		}
		if owned := len(tracker.Owned(poolWrapper.Base().ID)); owned != len(commandBuffers) {
			return errors.Newf("pool %s owns %d command buffers", pool, owned)
		}

		tracker.BuildStatsString(true)

		if freeBeforeDestroy {
			if err := tracker.FreeCommandBuffers(api.FreeCommandBuffersArgs{
				Device:         deviceHandle,
				Pool:           pool,
				CommandBuffers: commandBuffers,
			}); err != nil {
				return err
			}
		}
		if err := tracker.Destroy(api.ObjectTypeCommandPool, pool); err != nil {
			return err
		}
		if err := tracker.Destroy(api.ObjectTypeBuffer, handle); err != nil {
			return err
		}

		for _, commandBuffer := range commandBuffers {
			if _, err := tracker.Lookup(api.ObjectTypeCommandBuffer, commandBuffer); !api.IsNotFound(err) {
				return errors.Newf("command buffer %s outlived its pool", commandBuffer)
			}
		}
	}
	return nil
}
