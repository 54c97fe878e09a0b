package api

import "fmt"

// CallID identifies an intercepted API call, or one of the synthetic state restoration calls emitted
// in a snapshot
type CallID uint32

const (
	CallUnknown CallID = iota

	CallCreateInstance
	CallDestroyInstance
	CallEnumeratePhysicalDevices
	CallGetPhysicalDeviceMemoryProperties
	CallGetPhysicalDeviceQueueFamilyProperties
	CallGetPhysicalDeviceQueueFamilyProperties2
	CallGetPhysicalDeviceDisplayProperties
	CallGetDisplayModeProperties
	CallCreateDisplayMode

	CallCreateDevice
	CallDestroyDevice
	CallGetDeviceQueue
	CallGetDeviceQueue2

	CallAllocateMemory
	CallFreeMemory
	CallMapMemory
	CallUnmapMemory

	CallCreateBuffer
	CallDestroyBuffer
	CallBindBufferMemory
	CallCreateImage
	CallDestroyImage
	CallBindImageMemory
	CallCreateImageView
	CallDestroyImageView
	CallCreateBufferView
	CallDestroyBufferView

	CallCreateShaderModule
	CallDestroyShaderModule
	CallCreateRenderPass
	CallCreateRenderPass2
	CallDestroyRenderPass
	CallCreateFramebuffer
	CallDestroyFramebuffer
	CallCreateDescriptorSetLayout
	CallDestroyDescriptorSetLayout
	CallCreatePipelineLayout
	CallDestroyPipelineLayout
	CallCreateGraphicsPipelines
	CallCreateComputePipelines
	CallDestroyPipeline

	CallCreateDescriptorPool
	CallDestroyDescriptorPool
	CallResetDescriptorPool
	CallAllocateDescriptorSets
	CallFreeDescriptorSets
	CallUpdateDescriptorSets

	CallCreateCommandPool
	CallDestroyCommandPool
	CallResetCommandPool
	CallAllocateCommandBuffers
	CallFreeCommandBuffers
	CallBeginCommandBuffer
	CallResetCommandBuffer

	CallCreateQueryPool
	CallDestroyQueryPool

	CallCreateSemaphore
	CallDestroySemaphore
	CallCreateFence
	CallDestroyFence
	CallResetFences
	CallGetFenceStatus
	CallWaitForFences
	CallCreateEvent
	CallDestroyEvent

	CallCreateSampler
	CallDestroySampler
	CallCreatePipelineCache
	CallDestroyPipelineCache
	CallCreateSamplerYcbcrConversion
	CallDestroySamplerYcbcrConversion
	CallCreateDescriptorUpdateTemplate
	CallDestroyDescriptorUpdateTemplate
	CallCreateDebugReportCallback
	CallDestroyDebugReportCallback
	CallCreateDebugUtilsMessenger
	CallDestroyDebugUtilsMessenger
	CallCreateValidationCache
	CallDestroyValidationCache
	CallCreateObjectTable
	CallDestroyObjectTable
	CallCreateIndirectCommandsLayout
	CallDestroyIndirectCommandsLayout
	CallCreateAccelerationStructure
	CallDestroyAccelerationStructure

	CallCreateSurface
	CallDestroySurface
	CallGetPhysicalDeviceSurfaceSupport
	CallGetPhysicalDeviceSurfaceCapabilities
	CallGetPhysicalDeviceSurfaceFormats
	CallGetPhysicalDeviceSurfacePresentModes
	CallCreateSwapchain
	CallDestroySwapchain
	CallGetSwapchainImages
	CallAcquireNextImage
	CallAcquireNextImage2
	CallQueuePresent

	CallQueueSubmit
	CallQueueBindSparse

	CallCmdPipelineBarrier
	CallCmdBeginRenderPass
	CallCmdEndRenderPass
	CallCmdBeginQuery
	CallCmdEndQuery
	CallCmdResetQueryPool
	CallCmdWriteTimestamp
	CallCmdExecuteCommands

	// CallMetaSetImageLayout restores the current layout of an image
	CallMetaSetImageLayout
	// CallMetaSignalSemaphore restores the pending signal state of a semaphore
	CallMetaSignalSemaphore
	// CallMetaRestoreQueries restores the pending query results of a query pool
	CallMetaRestoreQueries
	// CallMetaRestoreCommandBuffer restores the recorded command stream and pending state of a command buffer
	CallMetaRestoreCommandBuffer
)

var callIDMapping = make(map[CallID]string)

func (c CallID) String() string {
	str, ok := callIDMapping[c]
	if !ok {
		return fmt.Sprintf("CallID(%d)", uint32(c))
	}
	return str
}

func (c CallID) register(str string) {
	callIDMapping[c] = str
}

func init() {
	CallUnknown.register("Unknown")
	CallCreateInstance.register("vkCreateInstance")
	CallDestroyInstance.register("vkDestroyInstance")
	CallEnumeratePhysicalDevices.register("vkEnumeratePhysicalDevices")
	CallGetPhysicalDeviceMemoryProperties.register("vkGetPhysicalDeviceMemoryProperties")
	CallGetPhysicalDeviceQueueFamilyProperties.register("vkGetPhysicalDeviceQueueFamilyProperties")
	CallGetPhysicalDeviceQueueFamilyProperties2.register("vkGetPhysicalDeviceQueueFamilyProperties2")
	CallGetPhysicalDeviceDisplayProperties.register("vkGetPhysicalDeviceDisplayPropertiesKHR")
	CallGetDisplayModeProperties.register("vkGetDisplayModePropertiesKHR")
	CallCreateDisplayMode.register("vkCreateDisplayModeKHR")
	CallCreateDevice.register("vkCreateDevice")
	CallDestroyDevice.register("vkDestroyDevice")
	CallGetDeviceQueue.register("vkGetDeviceQueue")
	CallGetDeviceQueue2.register("vkGetDeviceQueue2")
	CallAllocateMemory.register("vkAllocateMemory")
	CallFreeMemory.register("vkFreeMemory")
	CallMapMemory.register("vkMapMemory")
	CallUnmapMemory.register("vkUnmapMemory")
	CallCreateBuffer.register("vkCreateBuffer")
	CallDestroyBuffer.register("vkDestroyBuffer")
	CallBindBufferMemory.register("vkBindBufferMemory")
	CallCreateImage.register("vkCreateImage")
	CallDestroyImage.register("vkDestroyImage")
	CallBindImageMemory.register("vkBindImageMemory")
	CallCreateImageView.register("vkCreateImageView")
	CallDestroyImageView.register("vkDestroyImageView")
	CallCreateBufferView.register("vkCreateBufferView")
	CallDestroyBufferView.register("vkDestroyBufferView")
	CallCreateShaderModule.register("vkCreateShaderModule")
	CallDestroyShaderModule.register("vkDestroyShaderModule")
	CallCreateRenderPass.register("vkCreateRenderPass")
	CallCreateRenderPass2.register("vkCreateRenderPass2")
	CallDestroyRenderPass.register("vkDestroyRenderPass")
	CallCreateFramebuffer.register("vkCreateFramebuffer")
	CallDestroyFramebuffer.register("vkDestroyFramebuffer")
	CallCreateDescriptorSetLayout.register("vkCreateDescriptorSetLayout")
	CallDestroyDescriptorSetLayout.register("vkDestroyDescriptorSetLayout")
	CallCreatePipelineLayout.register("vkCreatePipelineLayout")
	CallDestroyPipelineLayout.register("vkDestroyPipelineLayout")
	CallCreateGraphicsPipelines.register("vkCreateGraphicsPipelines")
	CallCreateComputePipelines.register("vkCreateComputePipelines")
	CallDestroyPipeline.register("vkDestroyPipeline")
	CallCreateDescriptorPool.register("vkCreateDescriptorPool")
	CallDestroyDescriptorPool.register("vkDestroyDescriptorPool")
	CallResetDescriptorPool.register("vkResetDescriptorPool")
	CallAllocateDescriptorSets.register("vkAllocateDescriptorSets")
	CallFreeDescriptorSets.register("vkFreeDescriptorSets")
	CallUpdateDescriptorSets.register("vkUpdateDescriptorSets")
	CallCreateCommandPool.register("vkCreateCommandPool")
	CallDestroyCommandPool.register("vkDestroyCommandPool")
	CallResetCommandPool.register("vkResetCommandPool")
	CallAllocateCommandBuffers.register("vkAllocateCommandBuffers")
	CallFreeCommandBuffers.register("vkFreeCommandBuffers")
	CallBeginCommandBuffer.register("vkBeginCommandBuffer")
	CallResetCommandBuffer.register("vkResetCommandBuffer")
	CallCreateQueryPool.register("vkCreateQueryPool")
	CallDestroyQueryPool.register("vkDestroyQueryPool")
	CallCreateSemaphore.register("vkCreateSemaphore")
	CallDestroySemaphore.register("vkDestroySemaphore")
	CallCreateFence.register("vkCreateFence")
	CallDestroyFence.register("vkDestroyFence")
	CallResetFences.register("vkResetFences")
	CallGetFenceStatus.register("vkGetFenceStatus")
	CallWaitForFences.register("vkWaitForFences")
	CallCreateEvent.register("vkCreateEvent")
	CallDestroyEvent.register("vkDestroyEvent")
	CallCreateSampler.register("vkCreateSampler")
	CallDestroySampler.register("vkDestroySampler")
	CallCreatePipelineCache.register("vkCreatePipelineCache")
	CallDestroyPipelineCache.register("vkDestroyPipelineCache")
	CallCreateSamplerYcbcrConversion.register("vkCreateSamplerYcbcrConversion")
	CallDestroySamplerYcbcrConversion.register("vkDestroySamplerYcbcrConversion")
	CallCreateDescriptorUpdateTemplate.register("vkCreateDescriptorUpdateTemplate")
	CallDestroyDescriptorUpdateTemplate.register("vkDestroyDescriptorUpdateTemplate")
	CallCreateDebugReportCallback.register("vkCreateDebugReportCallbackEXT")
	CallDestroyDebugReportCallback.register("vkDestroyDebugReportCallbackEXT")
	CallCreateDebugUtilsMessenger.register("vkCreateDebugUtilsMessengerEXT")
	CallDestroyDebugUtilsMessenger.register("vkDestroyDebugUtilsMessengerEXT")
	CallCreateValidationCache.register("vkCreateValidationCacheEXT")
	CallDestroyValidationCache.register("vkDestroyValidationCacheEXT")
	CallCreateObjectTable.register("vkCreateObjectTableNVX")
	CallDestroyObjectTable.register("vkDestroyObjectTableNVX")
	CallCreateIndirectCommandsLayout.register("vkCreateIndirectCommandsLayoutNVX")
	CallDestroyIndirectCommandsLayout.register("vkDestroyIndirectCommandsLayoutNVX")
	CallCreateAccelerationStructure.register("vkCreateAccelerationStructureNV")
	CallDestroyAccelerationStructure.register("vkDestroyAccelerationStructureNV")
	CallCreateSurface.register("vkCreateSurfaceKHR")
	CallDestroySurface.register("vkDestroySurfaceKHR")
	CallGetPhysicalDeviceSurfaceSupport.register("vkGetPhysicalDeviceSurfaceSupportKHR")
	CallGetPhysicalDeviceSurfaceCapabilities.register("vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	CallGetPhysicalDeviceSurfaceFormats.register("vkGetPhysicalDeviceSurfaceFormatsKHR")
	CallGetPhysicalDeviceSurfacePresentModes.register("vkGetPhysicalDeviceSurfacePresentModesKHR")
	CallCreateSwapchain.register("vkCreateSwapchainKHR")
	CallDestroySwapchain.register("vkDestroySwapchainKHR")
	CallGetSwapchainImages.register("vkGetSwapchainImagesKHR")
	CallAcquireNextImage.register("vkAcquireNextImageKHR")
	CallAcquireNextImage2.register("vkAcquireNextImage2KHR")
	CallQueuePresent.register("vkQueuePresentKHR")
	CallQueueSubmit.register("vkQueueSubmit")
	CallQueueBindSparse.register("vkQueueBindSparse")
	CallCmdPipelineBarrier.register("vkCmdPipelineBarrier")
	CallCmdBeginRenderPass.register("vkCmdBeginRenderPass")
	CallCmdEndRenderPass.register("vkCmdEndRenderPass")
	CallCmdBeginQuery.register("vkCmdBeginQuery")
	CallCmdEndQuery.register("vkCmdEndQuery")
	CallCmdResetQueryPool.register("vkCmdResetQueryPool")
	CallCmdWriteTimestamp.register("vkCmdWriteTimestamp")
	CallCmdExecuteCommands.register("vkCmdExecuteCommands")
	CallMetaSetImageLayout.register("MetaSetImageLayout")
	CallMetaSignalSemaphore.register("MetaSignalSemaphore")
	CallMetaRestoreQueries.register("MetaRestoreQueries")
	CallMetaRestoreCommandBuffer.register("MetaRestoreCommandBuffer")
}

// DestroyCall returns the call that destroys objects of the provided type, or CallUnknown if objects of
// that type cannot be destroyed individually
func DestroyCall(objectType ObjectType) CallID {
	return destroyCalls[objectType]
}

var destroyCalls = map[ObjectType]CallID{
	ObjectTypeInstance:                 CallDestroyInstance,
	ObjectTypeDevice:                   CallDestroyDevice,
	ObjectTypeDeviceMemory:             CallFreeMemory,
	ObjectTypeBuffer:                   CallDestroyBuffer,
	ObjectTypeImage:                    CallDestroyImage,
	ObjectTypeImageView:                CallDestroyImageView,
	ObjectTypeBufferView:               CallDestroyBufferView,
	ObjectTypeShaderModule:             CallDestroyShaderModule,
	ObjectTypeRenderPass:               CallDestroyRenderPass,
	ObjectTypeFramebuffer:              CallDestroyFramebuffer,
	ObjectTypeDescriptorSetLayout:      CallDestroyDescriptorSetLayout,
	ObjectTypePipelineLayout:           CallDestroyPipelineLayout,
	ObjectTypePipeline:                 CallDestroyPipeline,
	ObjectTypeDescriptorPool:           CallDestroyDescriptorPool,
	ObjectTypeDescriptorSet:            CallFreeDescriptorSets,
	ObjectTypeCommandPool:              CallDestroyCommandPool,
	ObjectTypeCommandBuffer:            CallFreeCommandBuffers,
	ObjectTypeQueryPool:                CallDestroyQueryPool,
	ObjectTypeSemaphore:                CallDestroySemaphore,
	ObjectTypeFence:                    CallDestroyFence,
	ObjectTypeEvent:                    CallDestroyEvent,
	ObjectTypeSampler:                  CallDestroySampler,
	ObjectTypePipelineCache:            CallDestroyPipelineCache,
	ObjectTypeSamplerYcbcrConversion:   CallDestroySamplerYcbcrConversion,
	ObjectTypeDescriptorUpdateTemplate: CallDestroyDescriptorUpdateTemplate,
	ObjectTypeDebugReportCallback:      CallDestroyDebugReportCallback,
	ObjectTypeDebugUtilsMessenger:      CallDestroyDebugUtilsMessenger,
	ObjectTypeValidationCache:          CallDestroyValidationCache,
	ObjectTypeObjectTable:              CallDestroyObjectTable,
	ObjectTypeIndirectCommandsLayout:   CallDestroyIndirectCommandsLayout,
	ObjectTypeAccelerationStructure:    CallDestroyAccelerationStructure,
	ObjectTypeSurface:                  CallDestroySurface,
	ObjectTypeSwapchain:                CallDestroySwapchain,
}

// CreateCall returns the call that creates objects of the provided generic type, for the object types
// that carry no state beyond their creation parameters
func CreateCall(objectType ObjectType) CallID {
	return createCalls[objectType]
}

var createCalls = map[ObjectType]CallID{
	ObjectTypeShaderModule:             CallCreateShaderModule,
	ObjectTypeSemaphore:                CallCreateSemaphore,
	ObjectTypeEvent:                    CallCreateEvent,
	ObjectTypeSampler:                  CallCreateSampler,
	ObjectTypePipelineCache:            CallCreatePipelineCache,
	ObjectTypeSamplerYcbcrConversion:   CallCreateSamplerYcbcrConversion,
	ObjectTypeDescriptorUpdateTemplate: CallCreateDescriptorUpdateTemplate,
	ObjectTypeDebugReportCallback:      CallCreateDebugReportCallback,
	ObjectTypeDebugUtilsMessenger:      CallCreateDebugUtilsMessenger,
	ObjectTypeValidationCache:          CallCreateValidationCache,
	ObjectTypeObjectTable:              CallCreateObjectTable,
	ObjectTypeIndirectCommandsLayout:   CallCreateIndirectCommandsLayout,
	ObjectTypeAccelerationStructure:    CallCreateAccelerationStructure,
	ObjectTypeSurface:                  CallCreateSurface,
}
