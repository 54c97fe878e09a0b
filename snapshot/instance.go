package snapshot

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func (sb *builder) createInstances() {
	sb.createAll(api.ObjectTypeInstance)
	sb.createAll(api.ObjectTypeDebugReportCallback)
	sb.createAll(api.ObjectTypeDebugUtilsMessenger)
}

// createPhysicalDevices retrieves every physical device, and repeats the property queries the
// application made. Queries that were never made are not written.
func (sb *builder) createPhysicalDevices() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypePhysicalDevice) {
		sb.create(obj)

		physicalDevice, ok := obj.(*wrappers.PhysicalDevice)
		if !ok {
			continue
		}

		if physicalDevice.MemoryProperties != nil {
			args := api.GetPhysicalDeviceMemoryPropertiesArgs{
				PhysicalDevice: physicalDevice.Handle,
				Properties:     *physicalDevice.MemoryProperties,
			}
			sb.write(api.CallGetPhysicalDeviceMemoryProperties, physicalDevice.ID, args.Clone())
		}

		if physicalDevice.QueueFamilies != nil {
			sb.write(physicalDevice.QueueFamilies.Call, physicalDevice.ID, api.GetQueueFamilyPropertiesArgs{
				PhysicalDevice: physicalDevice.Handle,
				Properties:     slices.Clone(physicalDevice.QueueFamilies.Properties),
			})
		}
	}

	sb.createAll(api.ObjectTypeDisplay)
	sb.createAll(api.ObjectTypeDisplayMode)
}

func (sb *builder) createSurfaces() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeSurface) {
		sb.create(obj)

		surface, ok := obj.(*wrappers.Surface)
		if !ok {
			continue
		}

		for _, physicalDevice := range surface.QueriedPhysicalDevices() {
			support := surface.Support[physicalDevice]
			families := maps.Keys(support)
			slices.Sort(families)

			for _, family := range families {
				sb.write(api.CallGetPhysicalDeviceSurfaceSupport, surface.ID, api.GetSurfaceSupportArgs{
					PhysicalDevice:   physicalDevice,
					QueueFamilyIndex: family,
					Surface:          surface.Handle,
					Supported:        support[family],
				})
			}

			if capabilities, ok := surface.Capabilities[physicalDevice]; ok {
				sb.write(api.CallGetPhysicalDeviceSurfaceCapabilities, surface.ID, api.GetSurfaceCapabilitiesArgs{
					PhysicalDevice: physicalDevice,
					Surface:        surface.Handle,
					Capabilities:   capabilities,
				})
			}

			if formats, ok := surface.Formats[physicalDevice]; ok {
				sb.write(api.CallGetPhysicalDeviceSurfaceFormats, surface.ID, api.GetSurfaceFormatsArgs{
					PhysicalDevice: physicalDevice,
					Surface:        surface.Handle,
					Formats:        slices.Clone(formats),
				})
			}

			if presentModes, ok := surface.PresentModes[physicalDevice]; ok {
				sb.write(api.CallGetPhysicalDeviceSurfacePresentModes, surface.ID, api.GetSurfacePresentModesArgs{
					PhysicalDevice: physicalDevice,
					Surface:        surface.Handle,
					PresentModes:   slices.Clone(presentModes),
				})
			}
		}
	}
}

func (sb *builder) createDevices() {
	sb.createAll(api.ObjectTypeDevice)
}

func (sb *builder) createQueues() {
	sb.createAll(api.ObjectTypeQueue)
}

// createSwapchains creates every swapchain and retrieves its images in swapchain index order
func (sb *builder) createSwapchains() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeSwapchain) {
		sb.create(obj)

		swapchain, ok := obj.(*wrappers.Swapchain)
		if !ok || len(swapchain.Images) == 0 {
			continue
		}

		images := make([]api.Handle, len(swapchain.Images))
		for i, image := range swapchain.Images {
			images[i] = image.Handle
			sb.emitted[image.ID] = struct{}{}
		}

		sb.write(api.CallGetSwapchainImages, swapchain.ID, api.GetSwapchainImagesArgs{
			Device:    swapchain.Device,
			Swapchain: swapchain.Handle,
			Images:    images,
		})
	}
}
