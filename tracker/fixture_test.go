package tracker

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

const (
	instanceHandle       api.Handle = 0x1000
	physicalDeviceHandle api.Handle = 0x1100
	deviceHandle         api.Handle = 0x1200
	queueHandle          api.Handle = 0x1300
)

func newTestTracker(t *testing.T, flags CreateFlags) *Tracker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, CreateOptions{Flags: flags})
}

// newDeviceTracker returns a tracker with an instance, a physical device, a device with one queue
// and the queue itself already tracked
func newDeviceTracker(t *testing.T) *Tracker {
	tracker := newTestTracker(t, 0)

	_, err := tracker.CreateInstance(api.CreateInstanceArgs{Instance: instanceHandle})
	require.NoError(t, err)

	_, err = tracker.EnumeratePhysicalDevices(api.EnumeratePhysicalDevicesArgs{
		Instance:        instanceHandle,
		PhysicalDevices: []api.Handle{physicalDeviceHandle},
	})
	require.NoError(t, err)

	_, err = tracker.CreateDevice(api.CreateDeviceArgs{
		PhysicalDevice: physicalDeviceHandle,
		Device:         deviceHandle,
		QueueCreateInfos: []api.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 0, QueuePriorities: []float32{1}},
		},
	})
	require.NoError(t, err)

	_, err = tracker.GetDeviceQueue(api.CallGetDeviceQueue, api.GetDeviceQueueArgs{
		Device: deviceHandle,
		Queue:  queueHandle,
	})
	require.NoError(t, err)

	return tracker
}

func createImage(t *testing.T, tracker *Tracker, handle api.Handle) {
	_, err := tracker.CreateImage(api.CreateImageArgs{
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

func createCommandBuffers(t *testing.T, tracker *Tracker, pool api.Handle, level core1_0.CommandBufferLevel, handles ...api.Handle) {
	if _, err := tracker.Lookup(api.ObjectTypeCommandPool, pool); api.IsNotFound(err) {
		_, err = tracker.CreateCommandPool(api.CreateCommandPoolArgs{Device: deviceHandle, Pool: pool})
		require.NoError(t, err)
	}

	_, err := tracker.AllocateCommandBuffers(api.AllocateCommandBuffersArgs{
		Device:         deviceHandle,
		Pool:           pool,
		Level:          level,
		CommandBuffers: handles,
	})
	require.NoError(t, err)
}

func createSemaphore(t *testing.T, tracker *Tracker, handle api.Handle) {
	_, err := tracker.CreateObject(api.CallCreateSemaphore, api.CreateObjectArgs{
		Type:   api.ObjectTypeSemaphore,
		Parent: deviceHandle,
		Object: handle,
	})
	require.NoError(t, err)
}

func submit(t *testing.T, tracker *Tracker, commandBuffers ...api.Handle) {
	require.NoError(t, tracker.QueueSubmit(api.QueueSubmitArgs{
		Queue:   queueHandle,
		Submits: []api.SubmitInfo{{CommandBuffers: commandBuffers}},
	}))
}
