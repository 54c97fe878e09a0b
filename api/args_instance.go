package api

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

type CreateInstanceArgs struct {
	Instance Handle

	ApplicationName    string
	ApplicationVersion common.Version
	EngineName         string
	EngineVersion      common.Version
	APIVersion         common.APIVersion

	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

func (a CreateInstanceArgs) Clone() Args {
	a.EnabledLayerNames = slices.Clone(a.EnabledLayerNames)
	a.EnabledExtensionNames = slices.Clone(a.EnabledExtensionNames)
	return a
}

// EnumeratePhysicalDevicesArgs retrieves physical devices. Snapshots emit one call per physical device.
type EnumeratePhysicalDevicesArgs struct {
	Instance        Handle
	PhysicalDevices []Handle
}

func (a EnumeratePhysicalDevicesArgs) Clone() Args {
	a.PhysicalDevices = cloneHandles(a.PhysicalDevices)
	return a
}

type GetPhysicalDeviceMemoryPropertiesArgs struct {
	PhysicalDevice Handle
	Properties     core1_0.PhysicalDeviceMemoryProperties
}

func (a GetPhysicalDeviceMemoryPropertiesArgs) Clone() Args {
	a.Properties.MemoryTypes = slices.Clone(a.Properties.MemoryTypes)
	a.Properties.MemoryHeaps = slices.Clone(a.Properties.MemoryHeaps)
	return a
}

// GetQueueFamilyPropertiesArgs carries the result of vkGetPhysicalDeviceQueueFamilyProperties or
// vkGetPhysicalDeviceQueueFamilyProperties2
type GetQueueFamilyPropertiesArgs struct {
	PhysicalDevice Handle
	Properties     []core1_0.QueueFamilyProperties
}

func (a GetQueueFamilyPropertiesArgs) Clone() Args {
	a.Properties = slices.Clone(a.Properties)
	return a
}

type GetDisplayPropertiesArgs struct {
	PhysicalDevice Handle
	Displays       []Handle
}

func (a GetDisplayPropertiesArgs) Clone() Args {
	a.Displays = cloneHandles(a.Displays)
	return a
}

type GetDisplayModePropertiesArgs struct {
	PhysicalDevice Handle
	Display        Handle
	DisplayModes   []Handle
}

func (a GetDisplayModePropertiesArgs) Clone() Args {
	a.DisplayModes = cloneHandles(a.DisplayModes)
	return a
}

type CreateDisplayModeArgs struct {
	PhysicalDevice Handle
	Display        Handle
	DisplayMode    Handle

	VisibleRegion core1_0.Extent2D
	RefreshRate   int
}

func (a CreateDisplayModeArgs) Clone() Args {
	return a
}

type DeviceQueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

type CreateDeviceArgs struct {
	PhysicalDevice Handle
	Device         Handle

	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledExtensionNames []string
	EnabledFeatures       *core1_0.PhysicalDeviceFeatures
}

func (a CreateDeviceArgs) Clone() Args {
	queues := make([]DeviceQueueCreateInfo, len(a.QueueCreateInfos))
	for i, info := range a.QueueCreateInfos {
		queues[i] = DeviceQueueCreateInfo{
			QueueFamilyIndex: info.QueueFamilyIndex,
			QueuePriorities:  slices.Clone(info.QueuePriorities),
		}
	}
	a.QueueCreateInfos = queues
	a.EnabledExtensionNames = slices.Clone(a.EnabledExtensionNames)

	if a.EnabledFeatures != nil {
		features := *a.EnabledFeatures
		a.EnabledFeatures = &features
	}
	return a
}

// QueueCount returns the number of queues requested for the provided family
func (a CreateDeviceArgs) QueueCount(queueFamilyIndex int) int {
	count := 0
	for _, info := range a.QueueCreateInfos {
		if info.QueueFamilyIndex == queueFamilyIndex {
			count += len(info.QueuePriorities)
		}
	}
	return count
}

type GetDeviceQueueArgs struct {
	Device           Handle
	QueueFamilyIndex int
	QueueIndex       int
	Queue            Handle
}

func (a GetDeviceQueueArgs) Clone() Args {
	return a
}
