package snapshot

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/tracker"
)

// Apply feeds calls to the handlers of t in order. Replaying a snapshot into an empty tracker rebuilds the
// state of the tracker the snapshot was built from. Apply stops at the first call that fails.
func Apply(ctx context.Context, t *tracker.Tracker, calls []Call) error {
	for i, call := range calls {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := applyCall(t, call)
		if err != nil {
			return errors.Wrapf(err, "call %d (%s)", i, call.ID)
		}
	}
	return nil
}

func applyCall(t *tracker.Tracker, call Call) error {
	var err error

	switch args := call.Args.(type) {
	case api.CreateObjectArgs:
		_, err = t.CreateObject(call.ID, args)
	case api.DestroyObjectArgs:
		err = t.Destroy(args.Type, args.Object)
	case api.ResetPoolArgs:
		err = t.ResetPool(args.Type, args.Pool)

	case api.CreateInstanceArgs:
		_, err = t.CreateInstance(args)
	case api.EnumeratePhysicalDevicesArgs:
		_, err = t.EnumeratePhysicalDevices(args)
	case api.GetPhysicalDeviceMemoryPropertiesArgs:
		err = t.GetPhysicalDeviceMemoryProperties(args)
	case api.GetQueueFamilyPropertiesArgs:
		err = t.GetPhysicalDeviceQueueFamilyProperties(call.ID, args)
	case api.GetDisplayPropertiesArgs:
		_, err = t.GetPhysicalDeviceDisplayProperties(args)
	case api.GetDisplayModePropertiesArgs:
		_, err = t.GetDisplayModeProperties(args)
	case api.CreateDisplayModeArgs:
		_, err = t.CreateDisplayMode(args)
	case api.CreateDeviceArgs:
		_, err = t.CreateDevice(args)
	case api.GetDeviceQueueArgs:
		_, err = t.GetDeviceQueue(call.ID, args)

	case api.GetSurfaceSupportArgs:
		err = t.GetPhysicalDeviceSurfaceSupport(args)
	case api.GetSurfaceCapabilitiesArgs:
		err = t.GetPhysicalDeviceSurfaceCapabilities(args)
	case api.GetSurfaceFormatsArgs:
		err = t.GetPhysicalDeviceSurfaceFormats(args)
	case api.GetSurfacePresentModesArgs:
		err = t.GetPhysicalDeviceSurfacePresentModes(args)
	case api.CreateSwapchainArgs:
		_, err = t.CreateSwapchain(args)
	case api.GetSwapchainImagesArgs:
		_, err = t.GetSwapchainImages(args)
	case api.AcquireNextImageArgs:
		err = t.AcquireNextImage(args)

	case api.AllocateMemoryArgs:
		_, err = t.AllocateMemory(args)
	case api.MapMemoryArgs:
		err = t.MapMemory(args)
	case api.UnmapMemoryArgs:
		err = t.UnmapMemory(args)
	case api.CreateBufferArgs:
		_, err = t.CreateBuffer(args)
	case api.BindBufferMemoryArgs:
		err = t.BindBufferMemory(args)
	case api.CreateImageArgs:
		_, err = t.CreateImage(args)
	case api.BindImageMemoryArgs:
		err = t.BindImageMemory(args)
	case api.CreateImageViewArgs:
		_, err = t.CreateImageView(args)
	case api.CreateBufferViewArgs:
		_, err = t.CreateBufferView(args)
	case api.SetImageLayoutArgs:
		err = t.SetImageLayout(args)

	case api.CreateFenceArgs:
		_, err = t.CreateFence(args)
	case api.FencesArgs:
		if call.ID == api.CallResetFences {
			err = t.ResetFences(args)
		} else {
			err = t.SetFencesSignaled(args)
		}
	case api.SignalSemaphoreArgs:
		err = t.SignalSemaphore(args)

	case api.CreateCommandPoolArgs:
		_, err = t.CreateCommandPool(args)
	case api.AllocateCommandBuffersArgs:
		_, err = t.AllocateCommandBuffers(args)
	case api.FreeCommandBuffersArgs:
		err = t.FreeCommandBuffers(args)
	case api.RestoreCommandBufferArgs:
		err = t.RestoreCommandBuffer(args)
	case api.CreateQueryPoolArgs:
		_, err = t.CreateQueryPool(args)
	case api.RestoreQueriesArgs:
		err = t.RestoreQueries(args)

	case api.CreateDescriptorPoolArgs:
		_, err = t.CreateDescriptorPool(args)
	case api.AllocateDescriptorSetsArgs:
		_, err = t.AllocateDescriptorSets(args)
	case api.FreeDescriptorSetsArgs:
		err = t.FreeDescriptorSets(args)
	case api.UpdateDescriptorSetsArgs:
		err = t.UpdateDescriptorSets(args)

	case api.CreateRenderPassArgs:
		_, err = t.CreateRenderPass(call.ID, args)
	case api.CreateFramebufferArgs:
		_, err = t.CreateFramebuffer(args)
	case api.CreateDescriptorSetLayoutArgs:
		_, err = t.CreateDescriptorSetLayout(args)
	case api.CreatePipelineLayoutArgs:
		_, err = t.CreatePipelineLayout(args)
	case api.CreatePipelinesArgs:
		_, err = t.CreatePipelines(call.ID, args)

	default:
		err = errors.Newf("unsupported arguments %T", call.Args)
	}

	return err
}
