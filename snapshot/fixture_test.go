package snapshot_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/snapshot"
	"github.com/vkngwrapper/capture/tracker"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

const (
	instanceHandle       api.Handle = 0x1000
	physicalDeviceHandle api.Handle = 0x1100
	deviceHandle         api.Handle = 0x1200
	queueHandle          api.Handle = 0x1300
)

func newTracker(t *testing.T) *tracker.Tracker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tracker.New(logger, tracker.CreateOptions{})
}

// newDeviceTracker returns a tracker with an instance, a physical device with one host visible memory
// type and one device local memory type, a device and its queue
func newDeviceTracker(t *testing.T) *tracker.Tracker {
	tr := newTracker(t)

	_, err := tr.CreateInstance(api.CreateInstanceArgs{Instance: instanceHandle, ApplicationName: "snapshot"})
	require.NoError(t, err)

	_, err = tr.EnumeratePhysicalDevices(api.EnumeratePhysicalDevicesArgs{
		Instance:        instanceHandle,
		PhysicalDevices: []api.Handle{physicalDeviceHandle},
	})
	require.NoError(t, err)

	require.NoError(t, tr.GetPhysicalDeviceMemoryProperties(api.GetPhysicalDeviceMemoryPropertiesArgs{
		PhysicalDevice: physicalDeviceHandle,
		Properties: core1_0.PhysicalDeviceMemoryProperties{
			MemoryTypes: []core1_0.MemoryType{
				{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent},
				{PropertyFlags: core1_0.MemoryPropertyDeviceLocal},
			},
		},
	}))

	_, err = tr.CreateDevice(api.CreateDeviceArgs{
		PhysicalDevice: physicalDeviceHandle,
		Device:         deviceHandle,
		QueueCreateInfos: []api.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 0, QueuePriorities: []float32{1}},
		},
	})
	require.NoError(t, err)

	_, err = tr.GetDeviceQueue(api.CallGetDeviceQueue, api.GetDeviceQueueArgs{
		Device: deviceHandle,
		Queue:  queueHandle,
	})
	require.NoError(t, err)

	return tr
}

func createImage(t *testing.T, tr *tracker.Tracker, handle api.Handle) {
	_, err := tr.CreateImage(api.CreateImageArgs{
		Device:        deviceHandle,
		Image:         handle,
		ImageType:     core1_0.ImageType2D,
		Format:        core1_0.FormatR8G8B8A8SRGB,
		Extent:        core1_0.Extent3D{Width: 64, Height: 64, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        core1_0.ImageTilingOptimal,
		InitialLayout: core1_0.ImageLayoutUndefined,
	})
	require.NoError(t, err)
}

func createSemaphore(t *testing.T, tr *tracker.Tracker, handle api.Handle) {
	_, err := tr.CreateObject(api.CallCreateSemaphore, api.CreateObjectArgs{
		Type:   api.ObjectTypeSemaphore,
		Parent: deviceHandle,
		Object: handle,
	})
	require.NoError(t, err)
}

func createCommandBuffer(t *testing.T, tr *tracker.Tracker, pool, handle api.Handle, level core1_0.CommandBufferLevel) {
	if _, err := tr.Lookup(api.ObjectTypeCommandPool, pool); api.IsNotFound(err) {
		_, err = tr.CreateCommandPool(api.CreateCommandPoolArgs{Device: deviceHandle, Pool: pool})
		require.NoError(t, err)
	}

	_, err := tr.AllocateCommandBuffers(api.AllocateCommandBuffersArgs{
		Device:         deviceHandle,
		Pool:           pool,
		Level:          level,
		CommandBuffers: []api.Handle{handle},
	})
	require.NoError(t, err)
}

func lookupAs[T wrappers.Object](t *testing.T, tr *tracker.Tracker, objectType api.ObjectType, handle api.Handle) T {
	obj, err := tr.Lookup(objectType, handle)
	require.NoError(t, err)

	typed, ok := obj.(T)
	require.True(t, ok)
	return typed
}

func build(t *testing.T, tr *tracker.Tracker) *snapshot.Snapshot {
	snap, err := snapshot.Build(context.Background(), tr, 1)
	require.NoError(t, err)
	return snap
}

// replay applies a snapshot to an empty tracker
func replay(t *testing.T, snap *snapshot.Snapshot) *tracker.Tracker {
	tr := newTracker(t)
	require.NoError(t, snapshot.Apply(context.Background(), tr, snap.Calls))
	require.NoError(t, tr.Validate())
	return tr
}

// callIndex returns the index of the first call of snap with the provided id that targets the object
// with the provided handle
func callIndex(t *testing.T, tr *tracker.Tracker, snap *snapshot.Snapshot, call api.CallID, objectType api.ObjectType, handle api.Handle) int {
	obj, err := tr.Lookup(objectType, handle)
	require.NoError(t, err)

	id := obj.Base().ID
	for i, c := range snap.Calls {
		if c.ID == call && c.Object == id {
			return i
		}
	}

	require.Failf(t, "call not found", "%s for %s %s", call, objectType, handle)
	return -1
}

func callsWithID(snap *snapshot.Snapshot, call api.CallID) []snapshot.Call {
	var calls []snapshot.Call
	for _, c := range snap.Calls {
		if c.ID == call {
			calls = append(calls, c)
		}
	}
	return calls
}
