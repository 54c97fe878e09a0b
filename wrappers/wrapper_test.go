package wrappers

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func TestAsDependency_Nested(t *testing.T) {
	setLayout := &DescriptorSetLayout{
		Wrapper: Wrapper{Type: api.ObjectTypeDescriptorSetLayout, Handle: 0x1, ID: 1, CreateCall: api.CallCreateDescriptorSetLayout},
	}
	layout := &PipelineLayout{
		Wrapper:    Wrapper{Type: api.ObjectTypePipelineLayout, Handle: 0x2, ID: 2, CreateCall: api.CallCreatePipelineLayout},
		SetLayouts: []Dependency{AsDependency(setLayout)},
	}

	dep := AsDependency(layout)
	require.Equal(t, api.HandleID(2), dep.ID)
	require.Equal(t, api.CallCreatePipelineLayout, dep.CreateCall)
	require.Len(t, dep.Dependencies, 1)
	require.Equal(t, api.HandleID(1), dep.Dependencies[0].ID)

	require.True(t, AsDependency(nil).IsNull())

	pipeline := &Pipeline{
		Wrapper: Wrapper{Type: api.ObjectTypePipeline, Handle: 0x3, ID: 3},
		Layout:  dep,
	}
	require.Len(t, pipeline.Dependencies(), 1)
}

func TestMemoryBinding_BindOnce(t *testing.T) {
	var binding MemoryBinding
	require.False(t, binding.IsBound())

	require.NoError(t, binding.Bind(Ref{Handle: 0x5, ID: 7}, 64, 128))
	require.True(t, binding.IsBound())

	err := binding.Bind(Ref{Handle: 0x6, ID: 8}, 0, 128)
	require.True(t, errors.Is(err, api.ErrAlreadyBound))
	require.Equal(t, api.HandleID(7), binding.Memory.ID)
	require.Equal(t, 64, binding.Offset)
}

func TestSemaphore_Signal(t *testing.T) {
	semaphore := &Semaphore{Wrapper: Wrapper{Type: api.ObjectTypeSemaphore, Handle: 0x1, ID: 1}}
	require.Equal(t, api.SignalSourceNone, semaphore.Signaled)

	require.NoError(t, semaphore.Signal(api.SignalSourceQueue))
	require.Equal(t, api.SignalSourceQueue, semaphore.Signaled)

	err := semaphore.Signal(api.SignalSourceAcquireImage)
	require.True(t, errors.Is(err, api.ErrInconsistentSignal))
	require.Equal(t, api.SignalSourceQueue, semaphore.Signaled)

	semaphore.Wait()
	require.Equal(t, api.SignalSourceNone, semaphore.Signaled)
}

func TestPhysicalDevice_MemoryTypes(t *testing.T) {
	physicalDevice := &PhysicalDevice{}
	require.False(t, physicalDevice.IsMemoryTypeHostVisible(0))

	physicalDevice.MemoryProperties = &core1_0.PhysicalDeviceMemoryProperties{
		MemoryTypes: []core1_0.MemoryType{
			{PropertyFlags: core1_0.MemoryPropertyDeviceLocal},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCached},
		},
	}

	testCases := map[string]struct {
		Index       int
		Visible     bool
		NonCoherent bool
	}{
		"DeviceLocal":     {Index: 0},
		"Coherent":        {Index: 1, Visible: true},
		"NonCoherent":     {Index: 2, Visible: true, NonCoherent: true},
		"OutOfRangeIndex": {Index: 9},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.Visible, physicalDevice.IsMemoryTypeHostVisible(testCase.Index))
			require.Equal(t, testCase.NonCoherent, physicalDevice.IsMemoryTypeHostNonCoherent(testCase.Index))
		})
	}
}
