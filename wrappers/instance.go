package wrappers

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Instance struct {
	Wrapper
}

// QueueFamilyQuery holds the result of the queue family properties query an application made, and which
// variant of the query made it
type QueueFamilyQuery struct {
	Call       api.CallID
	Properties []core1_0.QueueFamilyProperties
}

type PhysicalDevice struct {
	Wrapper
	Instance api.Handle

	// MemoryProperties is nil until the application queries it
	MemoryProperties *core1_0.PhysicalDeviceMemoryProperties
	// QueueFamilies is nil until the application queries it
	QueueFamilies *QueueFamilyQuery
}

func (p *PhysicalDevice) MemoryTypeCount() int {
	if p.MemoryProperties == nil {
		return 0
	}
	return len(p.MemoryProperties.MemoryTypes)
}

// MemoryTypeProperties returns the property flags of a memory type. Memory types of a physical device
// whose memory properties were never queried have no known properties.
func (p *PhysicalDevice) MemoryTypeProperties(memoryTypeIndex int) core1_0.MemoryPropertyFlags {
	if memoryTypeIndex < 0 || memoryTypeIndex >= p.MemoryTypeCount() {
		return 0
	}
	return p.MemoryProperties.MemoryTypes[memoryTypeIndex].PropertyFlags
}

func (p *PhysicalDevice) IsMemoryTypeHostVisible(memoryTypeIndex int) bool {
	return p.MemoryTypeProperties(memoryTypeIndex)&core1_0.MemoryPropertyHostVisible != 0
}

func (p *PhysicalDevice) IsMemoryTypeHostNonCoherent(memoryTypeIndex int) bool {
	flags := p.MemoryTypeProperties(memoryTypeIndex)

	return flags&(core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent) == core1_0.MemoryPropertyHostVisible
}

type QueueSlot struct {
	QueueFamilyIndex int
	QueueIndex       int
}

// Device tracks a logical device. Its queues are owned by it in the ownership graph.
type Device struct {
	Wrapper
	PhysicalDevice api.Handle
}

// HasQueueSlot returns true if the device was created with a queue at the provided family and index
func (d *Device) HasQueueSlot(slot QueueSlot) bool {
	args, ok := d.CreateParams.(api.CreateDeviceArgs)
	if !ok {
		return false
	}
	return slot.QueueIndex >= 0 && slot.QueueIndex < args.QueueCount(slot.QueueFamilyIndex)
}

type Queue struct {
	Wrapper
	Device           api.Handle
	QueueFamilyIndex int
	QueueIndex       int
}

// Surface caches the results of the surface queries an application made, keyed by physical device.
// A physical device missing from a map was never queried for that property.
type Surface struct {
	Wrapper

	Support      map[api.Handle]map[int]bool
	Capabilities map[api.Handle]khr_surface.SurfaceCapabilities
	Formats      map[api.Handle][]khr_surface.SurfaceFormat
	PresentModes map[api.Handle][]khr_surface.PresentMode
}

func NewSurface(base Wrapper) *Surface {
	return &Surface{
		Wrapper:      base,
		Support:      make(map[api.Handle]map[int]bool),
		Capabilities: make(map[api.Handle]khr_surface.SurfaceCapabilities),
		Formats:      make(map[api.Handle][]khr_surface.SurfaceFormat),
		PresentModes: make(map[api.Handle][]khr_surface.PresentMode),
	}
}

func (s *Surface) SetSupport(physicalDevice api.Handle, queueFamilyIndex int, supported bool) {
	support, ok := s.Support[physicalDevice]
	if !ok {
		support = make(map[int]bool)
		s.Support[physicalDevice] = support
	}
	support[queueFamilyIndex] = supported
}

// QueriedPhysicalDevices returns every physical device the surface was queried against, in handle order
func (s *Surface) QueriedPhysicalDevices() []api.Handle {
	set := make(map[api.Handle]struct{})
	for _, m := range []map[api.Handle]struct{}{
		keySet(s.Support), keySet(s.Capabilities), keySet(s.Formats), keySet(s.PresentModes),
	} {
		for handle := range m {
			set[handle] = struct{}{}
		}
	}

	handles := maps.Keys(set)
	slices.Sort(handles)
	return handles
}

func keySet[V any](m map[api.Handle]V) map[api.Handle]struct{} {
	set := make(map[api.Handle]struct{}, len(m))
	for key := range m {
		set[key] = struct{}{}
	}
	return set
}
