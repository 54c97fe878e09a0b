package api

import "fmt"

// Handle is a native handle value as returned by the driver. Handle values are only unique among
// live objects of the same ObjectType and may be reused after an object is destroyed.
type Handle uint64

// NullHandle is the native null handle
const NullHandle Handle = 0

func (h Handle) String() string {
	return fmt.Sprintf("%#x", uint64(h))
}

// HandleID is the process-wide unique identifier assigned to an object when it is first tracked. Unlike
// Handle, a HandleID is never reused, and it is the value persisted in place of native handles.
type HandleID uint64

// NullHandleID is never assigned to a tracked object
const NullHandleID HandleID = 0

// ObjectType identifies the category of a tracked object. Handle lookup is scoped per ObjectType.
type ObjectType int32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeInstance
	ObjectTypePhysicalDevice
	ObjectTypeDevice
	ObjectTypeQueue
	ObjectTypeSemaphore
	ObjectTypeCommandBuffer
	ObjectTypeFence
	ObjectTypeDeviceMemory
	ObjectTypeBuffer
	ObjectTypeImage
	ObjectTypeEvent
	ObjectTypeQueryPool
	ObjectTypeBufferView
	ObjectTypeImageView
	ObjectTypeShaderModule
	ObjectTypePipelineCache
	ObjectTypePipelineLayout
	ObjectTypeRenderPass
	ObjectTypePipeline
	ObjectTypeDescriptorSetLayout
	ObjectTypeSampler
	ObjectTypeDescriptorPool
	ObjectTypeDescriptorSet
	ObjectTypeFramebuffer
	ObjectTypeCommandPool
	ObjectTypeSamplerYcbcrConversion
	ObjectTypeDescriptorUpdateTemplate
	ObjectTypeSurface
	ObjectTypeSwapchain
	ObjectTypeDisplay
	ObjectTypeDisplayMode
	ObjectTypeDebugReportCallback
	ObjectTypeDebugUtilsMessenger
	ObjectTypeValidationCache
	ObjectTypeObjectTable
	ObjectTypeIndirectCommandsLayout
	ObjectTypeAccelerationStructure

	// ObjectTypeCount is the number of distinct object types, including ObjectTypeUnknown
	ObjectTypeCount
)

var objectTypeMapping = make(map[ObjectType]string)

func (t ObjectType) String() string {
	str, ok := objectTypeMapping[t]
	if !ok {
		return fmt.Sprintf("ObjectType(%d)", int32(t))
	}
	return str
}

// IsValid returns true if t names a real object category
func (t ObjectType) IsValid() bool {
	return t > ObjectTypeUnknown && t < ObjectTypeCount
}

func init() {
	objectTypeMapping[ObjectTypeUnknown] = "Unknown"
	objectTypeMapping[ObjectTypeInstance] = "Instance"
	objectTypeMapping[ObjectTypePhysicalDevice] = "PhysicalDevice"
	objectTypeMapping[ObjectTypeDevice] = "Device"
	objectTypeMapping[ObjectTypeQueue] = "Queue"
	objectTypeMapping[ObjectTypeSemaphore] = "Semaphore"
	objectTypeMapping[ObjectTypeCommandBuffer] = "CommandBuffer"
	objectTypeMapping[ObjectTypeFence] = "Fence"
	objectTypeMapping[ObjectTypeDeviceMemory] = "DeviceMemory"
	objectTypeMapping[ObjectTypeBuffer] = "Buffer"
	objectTypeMapping[ObjectTypeImage] = "Image"
	objectTypeMapping[ObjectTypeEvent] = "Event"
	objectTypeMapping[ObjectTypeQueryPool] = "QueryPool"
	objectTypeMapping[ObjectTypeBufferView] = "BufferView"
	objectTypeMapping[ObjectTypeImageView] = "ImageView"
	objectTypeMapping[ObjectTypeShaderModule] = "ShaderModule"
	objectTypeMapping[ObjectTypePipelineCache] = "PipelineCache"
	objectTypeMapping[ObjectTypePipelineLayout] = "PipelineLayout"
	objectTypeMapping[ObjectTypeRenderPass] = "RenderPass"
	objectTypeMapping[ObjectTypePipeline] = "Pipeline"
	objectTypeMapping[ObjectTypeDescriptorSetLayout] = "DescriptorSetLayout"
	objectTypeMapping[ObjectTypeSampler] = "Sampler"
	objectTypeMapping[ObjectTypeDescriptorPool] = "DescriptorPool"
	objectTypeMapping[ObjectTypeDescriptorSet] = "DescriptorSet"
	objectTypeMapping[ObjectTypeFramebuffer] = "Framebuffer"
	objectTypeMapping[ObjectTypeCommandPool] = "CommandPool"
	objectTypeMapping[ObjectTypeSamplerYcbcrConversion] = "SamplerYcbcrConversion"
	objectTypeMapping[ObjectTypeDescriptorUpdateTemplate] = "DescriptorUpdateTemplate"
	objectTypeMapping[ObjectTypeSurface] = "Surface"
	objectTypeMapping[ObjectTypeSwapchain] = "Swapchain"
	objectTypeMapping[ObjectTypeDisplay] = "Display"
	objectTypeMapping[ObjectTypeDisplayMode] = "DisplayMode"
	objectTypeMapping[ObjectTypeDebugReportCallback] = "DebugReportCallback"
	objectTypeMapping[ObjectTypeDebugUtilsMessenger] = "DebugUtilsMessenger"
	objectTypeMapping[ObjectTypeValidationCache] = "ValidationCache"
	objectTypeMapping[ObjectTypeObjectTable] = "ObjectTable"
	objectTypeMapping[ObjectTypeIndirectCommandsLayout] = "IndirectCommandsLayout"
	objectTypeMapping[ObjectTypeAccelerationStructure] = "AccelerationStructure"
}
