package tracker

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
)

func TestTracker_IDsIncreaseAcrossHandleReuse(t *testing.T) {
	tracker := newDeviceTracker(t)

	first, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10, Size: 256})
	require.NoError(t, err)
	require.NoError(t, tracker.Destroy(api.ObjectTypeBuffer, 0x10))

	second, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10, Size: 512})
	require.NoError(t, err)

	require.Greater(t, second.ID, first.ID)
	require.False(t, tracker.IsLive(first.ID))
	require.True(t, tracker.IsLive(second.ID))

	_, err = tracker.LookupID(first.ID)
	require.True(t, api.IsNotFound(err))

	obj, err := tracker.Lookup(api.ObjectTypeBuffer, 0x10)
	require.NoError(t, err)
	require.Same(t, second, obj)
}

func TestTracker_CreateParamsAreCloned(t *testing.T) {
	tracker := newDeviceTracker(t)

	indices := []int{2, 3}
	buffer, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10, QueueFamilyIndices: indices})
	require.NoError(t, err)

	indices[0] = 7
	require.Equal(t, []int{2, 3}, buffer.CreateParams.(api.CreateBufferArgs).QueueFamilyIndices)
	require.Equal(t, 2, buffer.QueueFamilyIndex)
}

func TestTracker_Errors(t *testing.T) {
	testCases := map[string]struct {
		Run     func(tracker *Tracker) error
		Err     error
		Message string
	}{
		"DuplicateCreation": {
			Run: func(tracker *Tracker) error {
				_, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10})
				if err != nil {
					return err
				}
				_, err = tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10})
				return err
			},
			Err: api.ErrDuplicateCreation,
		},
		"DoubleDestroy": {
			Run: func(tracker *Tracker) error {
				_, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10})
				if err != nil {
					return err
				}
				err = tracker.Destroy(api.ObjectTypeBuffer, 0x10)
				if err != nil {
					return err
				}
				return tracker.Destroy(api.ObjectTypeBuffer, 0x10)
			},
			Err: api.ErrNotFound,
		},
		"DestroyWrongType": {
			Run: func(tracker *Tracker) error {
				_, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10})
				if err != nil {
					return err
				}
				return tracker.Destroy(api.ObjectTypeImage, 0x10)
			},
			Err: api.ErrNotFound,
		},
		"ResetNonPool": {
			Run: func(tracker *Tracker) error {
				return tracker.ResetPool(api.ObjectTypeQueryPool, 0x10)
			},
			Err: api.ErrWrongObjectType,
		},
		"UnknownPhysicalDevice": {
			Run: func(tracker *Tracker) error {
				_, err := tracker.CreateDevice(api.CreateDeviceArgs{PhysicalDevice: 0x99, Device: 0x98})
				return err
			},
			Err: api.ErrNotFound,
		},
		"UnknownMemory": {
			Run: func(tracker *Tracker) error {
				return tracker.MapMemory(api.MapMemoryArgs{Device: deviceHandle, Memory: 0x10})
			},
			Err: api.ErrNotFound,
		},
		"NotAPipelineCall": {
			Run: func(tracker *Tracker) error {
				_, err := tracker.CreatePipelines(api.CallCreateBuffer, api.CreatePipelinesArgs{Device: deviceHandle})
				return err
			},
			Message: "does not create pipelines",
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newDeviceTracker(t)
			err := testCase.Run(tracker)
			require.Error(t, err)
			if testCase.Err != nil {
				require.True(t, errors.Is(err, testCase.Err), "unexpected error: %v", err)
			}
			if testCase.Message != "" {
				require.Contains(t, err.Error(), testCase.Message)
			}
			require.NoError(t, tracker.Validate())
		})
	}
}

func TestTracker_DuplicateCreationLeavesLiveObject(t *testing.T) {
	tracker := newDeviceTracker(t)

	original, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10, Size: 64})
	require.NoError(t, err)

	_, err = tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10, Size: 128})
	require.True(t, errors.Is(err, api.ErrDuplicateCreation))

	obj, err := tracker.Lookup(api.ObjectTypeBuffer, 0x10)
	require.NoError(t, err)
	require.Same(t, original, obj)
	require.Equal(t, 64, obj.(*wrappers.Buffer).CreatedSize)
	require.NoError(t, tracker.Validate())
}

func TestTracker_CascadeDestroy(t *testing.T) {
	testCases := map[string]struct {
		Setup      func(t *testing.T, tracker *Tracker)
		Type       api.ObjectType
		Handle     api.Handle
		Destroyed  []api.ObjectRef
		StillAlive []api.ObjectRef
	}{
		"InstanceOwnsPhysicalDevicesAndDisplays": {
			Setup: func(t *testing.T, tracker *Tracker) {
				_, err := tracker.GetPhysicalDeviceDisplayProperties(api.GetDisplayPropertiesArgs{
					PhysicalDevice: physicalDeviceHandle,
					Displays:       []api.Handle{0x20},
				})
				require.NoError(t, err)

				_, err = tracker.GetDisplayModeProperties(api.GetDisplayModePropertiesArgs{
					PhysicalDevice: physicalDeviceHandle,
					Display:        0x20,
					DisplayModes:   []api.Handle{0x21, 0x22},
				})
				require.NoError(t, err)
			},
			Type:   api.ObjectTypeInstance,
			Handle: instanceHandle,
			Destroyed: []api.ObjectRef{
				{Type: api.ObjectTypePhysicalDevice, Handle: physicalDeviceHandle},
				{Type: api.ObjectTypeDisplay, Handle: 0x20},
				{Type: api.ObjectTypeDisplayMode, Handle: 0x21},
				{Type: api.ObjectTypeDisplayMode, Handle: 0x22},
			},
			StillAlive: []api.ObjectRef{
				{Type: api.ObjectTypeDevice, Handle: deviceHandle},
			},
		},
		"DeviceOwnsQueues": {
			Type:   api.ObjectTypeDevice,
			Handle: deviceHandle,
			Destroyed: []api.ObjectRef{
				{Type: api.ObjectTypeQueue, Handle: queueHandle},
			},
			StillAlive: []api.ObjectRef{
				{Type: api.ObjectTypePhysicalDevice, Handle: physicalDeviceHandle},
			},
		},
		"SwapchainOwnsImages": {
			Setup: func(t *testing.T, tracker *Tracker) {
				_, err := tracker.CreateObject(api.CallCreateSurface, api.CreateObjectArgs{Type: api.ObjectTypeSurface, Parent: instanceHandle, Object: 0x30})
				require.NoError(t, err)
				_, err = tracker.CreateSwapchain(api.CreateSwapchainArgs{Device: deviceHandle, Swapchain: 0x31, Surface: 0x30, ImageArrayLayers: 1})
				require.NoError(t, err)
				_, err = tracker.GetSwapchainImages(api.GetSwapchainImagesArgs{Device: deviceHandle, Swapchain: 0x31, Images: []api.Handle{0x32, 0x33}})
				require.NoError(t, err)
			},
			Type:   api.ObjectTypeSwapchain,
			Handle: 0x31,
			Destroyed: []api.ObjectRef{
				{Type: api.ObjectTypeImage, Handle: 0x32},
				{Type: api.ObjectTypeImage, Handle: 0x33},
			},
			StillAlive: []api.ObjectRef{
				{Type: api.ObjectTypeSurface, Handle: 0x30},
			},
		},
		"DescriptorPoolOwnsSets": {
			Setup: func(t *testing.T, tracker *Tracker) {
				_, err := tracker.CreateDescriptorSetLayout(api.CreateDescriptorSetLayoutArgs{Device: deviceHandle, Layout: 0x40})
				require.NoError(t, err)
				_, err = tracker.CreateDescriptorPool(api.CreateDescriptorPoolArgs{Device: deviceHandle, Pool: 0x41, MaxSets: 2})
				require.NoError(t, err)
				_, err = tracker.AllocateDescriptorSets(api.AllocateDescriptorSetsArgs{
					Device:     deviceHandle,
					Pool:       0x41,
					SetLayouts: []api.Handle{0x40, 0x40},
					Sets:       []api.Handle{0x42, 0x43},
				})
				require.NoError(t, err)
			},
			Type:   api.ObjectTypeDescriptorPool,
			Handle: 0x41,
			Destroyed: []api.ObjectRef{
				{Type: api.ObjectTypeDescriptorSet, Handle: 0x42},
				{Type: api.ObjectTypeDescriptorSet, Handle: 0x43},
			},
			StillAlive: []api.ObjectRef{
				{Type: api.ObjectTypeDescriptorSetLayout, Handle: 0x40},
			},
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newDeviceTracker(t)
			if testCase.Setup != nil {
				testCase.Setup(t, tracker)
			}

			var destroyedIDs []api.HandleID
			for _, ref := range testCase.Destroyed {
				obj, err := tracker.Lookup(ref.Type, ref.Handle)
				require.NoError(t, err)
				destroyedIDs = append(destroyedIDs, obj.Base().ID)
			}

			require.NoError(t, tracker.Destroy(testCase.Type, testCase.Handle))

			for i, ref := range testCase.Destroyed {
				_, err := tracker.Lookup(ref.Type, ref.Handle)
				require.True(t, api.IsNotFound(err), "%s %s should have been destroyed", ref.Type, ref.Handle)
				require.False(t, tracker.IsLive(destroyedIDs[i]))
			}
			for _, ref := range testCase.StillAlive {
				_, err := tracker.Lookup(ref.Type, ref.Handle)
				require.NoError(t, err)
			}

			require.NoError(t, tracker.Validate())
		})
	}
}

func TestTracker_ResetPool(t *testing.T) {
	testCases := map[string]struct {
		Setup     func(t *testing.T, tracker *Tracker)
		PoolType  api.ObjectType
		ChildType api.ObjectType
	}{
		"CommandPool": {
			Setup: func(t *testing.T, tracker *Tracker) {
				createCommandBuffers(t, tracker, 0x50, 0, 0x51, 0x52)
			},
			PoolType:  api.ObjectTypeCommandPool,
			ChildType: api.ObjectTypeCommandBuffer,
		},
		"DescriptorPool": {
			Setup: func(t *testing.T, tracker *Tracker) {
				_, err := tracker.CreateDescriptorSetLayout(api.CreateDescriptorSetLayoutArgs{Device: deviceHandle, Layout: 0x40})
				require.NoError(t, err)
				_, err = tracker.CreateDescriptorPool(api.CreateDescriptorPoolArgs{Device: deviceHandle, Pool: 0x50, MaxSets: 2})
				require.NoError(t, err)
				_, err = tracker.AllocateDescriptorSets(api.AllocateDescriptorSetsArgs{
					Device:     deviceHandle,
					Pool:       0x50,
					SetLayouts: []api.Handle{0x40, 0x40},
					Sets:       []api.Handle{0x51, 0x52},
				})
				require.NoError(t, err)
			},
			PoolType:  api.ObjectTypeDescriptorPool,
			ChildType: api.ObjectTypeDescriptorSet,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newDeviceTracker(t)
			testCase.Setup(t, tracker)

			pool, err := tracker.Lookup(testCase.PoolType, 0x50)
			require.NoError(t, err)
			require.Len(t, tracker.Owned(pool.Base().ID), 2)

			require.NoError(t, tracker.ResetPool(testCase.PoolType, 0x50))

			for _, handle := range []api.Handle{0x51, 0x52} {
				_, err = tracker.Lookup(testCase.ChildType, handle)
				require.True(t, api.IsNotFound(err))
			}
			require.Empty(t, tracker.Owned(pool.Base().ID))
			require.NoError(t, tracker.Validate())

			// The pool survives the reset and can still be destroyed once
			require.NoError(t, tracker.Destroy(testCase.PoolType, 0x50))
			require.True(t, api.IsNotFound(tracker.Destroy(testCase.PoolType, 0x50)))
			require.NoError(t, tracker.Validate())
		})
	}
}

func TestTracker_FreeThenDestroyPool(t *testing.T) {
	tracker := newDeviceTracker(t)
	createCommandBuffers(t, tracker, 0x50, 0, 0x51, 0x52)

	require.NoError(t, tracker.FreeCommandBuffers(api.FreeCommandBuffersArgs{
		Device:         deviceHandle,
		Pool:           0x50,
		CommandBuffers: []api.Handle{0x51, api.NullHandle},
	}))
	require.Len(t, tracker.Objects(api.ObjectTypeCommandBuffer), 1)

	require.NoError(t, tracker.Destroy(api.ObjectTypeCommandPool, 0x50))
	require.Empty(t, tracker.Objects(api.ObjectTypeCommandBuffer))
	require.NoError(t, tracker.Validate())
}

func TestTracker_RetrievedObjectsAreDeduplicated(t *testing.T) {
	tracker := newDeviceTracker(t)

	physicalDevice, err := tracker.Lookup(api.ObjectTypePhysicalDevice, physicalDeviceHandle)
	require.NoError(t, err)

	devices, err := tracker.EnumeratePhysicalDevices(api.EnumeratePhysicalDevicesArgs{
		Instance:        instanceHandle,
		PhysicalDevices: []api.Handle{physicalDeviceHandle, 0x1101},
	})
	require.NoError(t, err)
	require.Len(t, devices, 2)
	require.Same(t, physicalDevice, devices[0])

	queue, err := tracker.Lookup(api.ObjectTypeQueue, queueHandle)
	require.NoError(t, err)
	again, err := tracker.GetDeviceQueue(api.CallGetDeviceQueue, api.GetDeviceQueueArgs{Device: deviceHandle, Queue: queueHandle})
	require.NoError(t, err)
	require.Same(t, queue, again)

	instance, err := tracker.Lookup(api.ObjectTypeInstance, instanceHandle)
	require.NoError(t, err)
	require.Equal(t, []api.HandleID{physicalDevice.Base().ID, devices[1].ID}, tracker.Owned(instance.Base().ID))
	require.NoError(t, tracker.Validate())
}

func TestTracker_QueueOutsideCreatedSlots(t *testing.T) {
	tracker := newDeviceTracker(t)

	// Retrieval is still tracked, only a warning is logged
	queue, err := tracker.GetDeviceQueue(api.CallGetDeviceQueue2, api.GetDeviceQueueArgs{
		Device:           deviceHandle,
		QueueFamilyIndex: 3,
		Queue:            0x1301,
	})
	require.NoError(t, err)
	require.Equal(t, api.CallGetDeviceQueue2, queue.CreateCall)
}

func TestTracker_PipelineDependencies(t *testing.T) {
	tracker := newDeviceTracker(t)

	_, err := tracker.CreateObject(api.CallCreateShaderModule, api.CreateObjectArgs{Type: api.ObjectTypeShaderModule, Parent: deviceHandle, Object: 0x60})
	require.NoError(t, err)
	_, err = tracker.CreateDescriptorSetLayout(api.CreateDescriptorSetLayoutArgs{Device: deviceHandle, Layout: 0x61})
	require.NoError(t, err)
	_, err = tracker.CreatePipelineLayout(api.CreatePipelineLayoutArgs{Device: deviceHandle, Layout: 0x62, SetLayouts: []api.Handle{0x61}})
	require.NoError(t, err)

	pipelines, err := tracker.CreatePipelines(api.CallCreateComputePipelines, api.CreatePipelinesArgs{
		Device: deviceHandle,
		CreateInfos: []api.PipelineCreateInfo{
			{Stages: []api.PipelineShaderStage{{Module: 0x60, Name: "main"}, {Module: 0x60, Name: "other"}}, Layout: 0x62},
			{Stages: []api.PipelineShaderStage{{Module: 0x60, Name: "main"}}, Layout: 0x62, BasePipeline: 0x63},
		},
		Pipelines: []api.Handle{0x63, 0x64},
	})
	require.NoError(t, err)
	require.Len(t, pipelines, 2)

	require.Len(t, pipelines[0].ShaderModules, 1)
	require.Equal(t, api.Handle(0x62), pipelines[0].Layout.Handle)
	require.Len(t, pipelines[0].Layout.Dependencies, 1)
	require.Equal(t, api.Handle(0x61), pipelines[0].Layout.Dependencies[0].Handle)
	require.Equal(t, pipelines[0].Ref(), pipelines[1].BasePipeline)

	single := pipelines[1].CreateParams.(api.CreatePipelinesArgs)
	require.Equal(t, []api.Handle{0x64}, single.Pipelines)
	require.Len(t, single.CreateInfos, 1)

	// Destroying a dependency does not affect the pipeline's clone of it
	require.NoError(t, tracker.Destroy(api.ObjectTypeShaderModule, 0x60))
	require.Equal(t, api.Handle(0x60), pipelines[0].ShaderModules[0].Handle)
	require.NoError(t, tracker.Validate())
}

func TestTracker_BuildStatsString(t *testing.T) {
	tracker := newDeviceTracker(t)

	var stats Statistics
	tracker.CalculateStatistics(&stats)
	require.Equal(t, 4, stats.ObjectCount)
	require.Equal(t, 1, stats.TypeCounts[api.ObjectTypeQueue])

	var summary struct {
		Total int
		Types map[string]struct {
			Count   int
			Objects []map[string]string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(tracker.BuildStatsString(false)), &summary))
	require.Equal(t, 4, summary.Total)
	require.Len(t, summary.Types, 4)
	require.Empty(t, summary.Types["Device"].Objects)

	require.NoError(t, json.Unmarshal([]byte(tracker.BuildStatsString(true)), &summary))
	require.Len(t, summary.Types["Queue"].Objects, 1)
	require.Equal(t, queueHandle.String(), summary.Types["Queue"].Objects[0]["Handle"])
	require.Equal(t, deviceHandle.String(), summary.Types["Queue"].Objects[0]["Parent"])
	require.Equal(t, api.CallGetDeviceQueue.String(), summary.Types["Queue"].Objects[0]["CreateCall"])
}
