package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

func (t *Tracker) CreateInstance(args api.CreateInstanceArgs) (*wrappers.Instance, error) {
	t.logger.Debug("Tracker::CreateInstance")

	instance := &wrappers.Instance{
		Wrapper: t.newWrapper(api.ObjectTypeInstance, args.Instance, api.NullHandle, api.CallCreateInstance, args),
	}

	err := t.track(instance, nil)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// EnumeratePhysicalDevices tracks every physical device retrieved from an instance. Physical devices
// that were already retrieved keep their existing wrapper.
func (t *Tracker) EnumeratePhysicalDevices(args api.EnumeratePhysicalDevicesArgs) ([]*wrappers.PhysicalDevice, error) {
	t.logger.Debug("Tracker::EnumeratePhysicalDevices")

	instance, err := lookup[*wrappers.Instance](t, api.ObjectTypeInstance, args.Instance)
	if err != nil {
		return nil, err
	}

	physicalDevices := make([]*wrappers.PhysicalDevice, 0, len(args.PhysicalDevices))
	for _, handle := range args.PhysicalDevices {
		existing, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, handle)
		if err == nil {
			physicalDevices = append(physicalDevices, existing)
			continue
		} else if !api.IsNotFound(err) {
			return nil, err
		}

		params := api.EnumeratePhysicalDevicesArgs{Instance: args.Instance, PhysicalDevices: []api.Handle{handle}}
		physicalDevice := &wrappers.PhysicalDevice{
			Wrapper:  t.newWrapper(api.ObjectTypePhysicalDevice, handle, args.Instance, api.CallEnumeratePhysicalDevices, params),
			Instance: args.Instance,
		}

		err = t.track(physicalDevice, instance)
		if err != nil {
			return nil, err
		}
		physicalDevices = append(physicalDevices, physicalDevice)
	}

	return physicalDevices, nil
}

func (t *Tracker) GetPhysicalDeviceMemoryProperties(args api.GetPhysicalDeviceMemoryPropertiesArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceMemoryProperties")

	physicalDevice, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return err
	}

	cloned := args.Clone().(api.GetPhysicalDeviceMemoryPropertiesArgs)
	physicalDevice.MemoryProperties = &cloned.Properties
	return nil
}

// GetPhysicalDeviceQueueFamilyProperties records the queue family properties the application retrieved,
// and which variant of the query retrieved them
func (t *Tracker) GetPhysicalDeviceQueueFamilyProperties(call api.CallID, args api.GetQueueFamilyPropertiesArgs) error {
	t.logger.Debug("Tracker::GetPhysicalDeviceQueueFamilyProperties")

	if call != api.CallGetPhysicalDeviceQueueFamilyProperties && call != api.CallGetPhysicalDeviceQueueFamilyProperties2 {
		return errors.Newf("%s is not a queue family properties query", call)
	}

	physicalDevice, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return err
	}

	physicalDevice.QueueFamilies = &wrappers.QueueFamilyQuery{
		Call:       call,
		Properties: slices.Clone(args.Properties),
	}
	return nil
}

// GetPhysicalDeviceDisplayProperties tracks every display retrieved from a physical device. Displays
// that were already retrieved keep their existing wrapper.
func (t *Tracker) GetPhysicalDeviceDisplayProperties(args api.GetDisplayPropertiesArgs) ([]wrappers.Object, error) {
	t.logger.Debug("Tracker::GetPhysicalDeviceDisplayProperties")

	physicalDevice, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	displays := make([]wrappers.Object, 0, len(args.Displays))
	for _, handle := range args.Displays {
		params := api.GetDisplayPropertiesArgs{PhysicalDevice: args.PhysicalDevice, Displays: []api.Handle{handle}}
		display, err := t.retrieve(api.ObjectTypeDisplay, handle, args.PhysicalDevice, api.CallGetPhysicalDeviceDisplayProperties, params, physicalDevice)
		if err != nil {
			return nil, err
		}
		displays = append(displays, display)
	}

	return displays, nil
}

// GetDisplayModeProperties tracks every display mode retrieved from a display. Display modes are owned by
// the physical device, alongside its displays.
func (t *Tracker) GetDisplayModeProperties(args api.GetDisplayModePropertiesArgs) ([]wrappers.Object, error) {
	t.logger.Debug("Tracker::GetDisplayModeProperties")

	physicalDevice, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	modes := make([]wrappers.Object, 0, len(args.DisplayModes))
	for _, handle := range args.DisplayModes {
		params := api.GetDisplayModePropertiesArgs{PhysicalDevice: args.PhysicalDevice, Display: args.Display, DisplayModes: []api.Handle{handle}}
		mode, err := t.retrieve(api.ObjectTypeDisplayMode, handle, args.PhysicalDevice, api.CallGetDisplayModeProperties, params, physicalDevice)
		if err != nil {
			return nil, err
		}
		modes = append(modes, mode)
	}

	return modes, nil
}

func (t *Tracker) CreateDisplayMode(args api.CreateDisplayModeArgs) (wrappers.Object, error) {
	t.logger.Debug("Tracker::CreateDisplayMode")

	physicalDevice, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	mode := t.newWrapper(api.ObjectTypeDisplayMode, args.DisplayMode, args.PhysicalDevice, api.CallCreateDisplayMode, args)
	err = t.track(&mode, physicalDevice)
	if err != nil {
		return nil, err
	}
	return &mode, nil
}

// retrieve returns the live wrapper for a retrieved object, or tracks a new one under owner
func (t *Tracker) retrieve(objectType api.ObjectType, handle api.Handle, parent api.Handle, call api.CallID, params api.Args, owner wrappers.Object) (wrappers.Object, error) {
	existing, err := t.registry.Lookup(objectType, handle)
	if err == nil {
		return existing, nil
	} else if !api.IsNotFound(err) {
		return nil, err
	}

	obj := t.newWrapper(objectType, handle, parent, call, params)
	err = t.track(&obj, owner)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (t *Tracker) CreateDevice(args api.CreateDeviceArgs) (*wrappers.Device, error) {
	t.logger.Debug("Tracker::CreateDevice")

	_, err := lookup[*wrappers.PhysicalDevice](t, api.ObjectTypePhysicalDevice, args.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	device := &wrappers.Device{
		Wrapper:        t.newWrapper(api.ObjectTypeDevice, args.Device, args.PhysicalDevice, api.CallCreateDevice, args),
		PhysicalDevice: args.PhysicalDevice,
	}

	err = t.track(device, nil)
	if err != nil {
		return nil, err
	}
	return device, nil
}

// GetDeviceQueue tracks a queue retrieved from a device. The device's queue slots are fixed when the
// device is created. Retrieving a queue that was already retrieved returns the existing wrapper.
func (t *Tracker) GetDeviceQueue(call api.CallID, args api.GetDeviceQueueArgs) (*wrappers.Queue, error) {
	t.logger.Debug("Tracker::GetDeviceQueue")

	device, err := lookup[*wrappers.Device](t, api.ObjectTypeDevice, args.Device)
	if err != nil {
		return nil, err
	}

	existing, err := lookup[*wrappers.Queue](t, api.ObjectTypeQueue, args.Queue)
	if err == nil {
		return existing, nil
	} else if !api.IsNotFound(err) {
		return nil, err
	}

	slot := wrappers.QueueSlot{QueueFamilyIndex: args.QueueFamilyIndex, QueueIndex: args.QueueIndex}
	if !device.HasQueueSlot(slot) {
		t.logger.Warn("queue retrieved from a family or index the device was not created with",
			slog.Int("QueueFamilyIndex", args.QueueFamilyIndex),
			slog.Int("QueueIndex", args.QueueIndex),
		)
	}

	queue := &wrappers.Queue{
		Wrapper:          t.newWrapper(api.ObjectTypeQueue, args.Queue, args.Device, call, args),
		Device:           args.Device,
		QueueFamilyIndex: args.QueueFamilyIndex,
		QueueIndex:       args.QueueIndex,
	}

	err = t.track(queue, device)
	if err != nil {
		return nil, err
	}
	return queue, nil
}
