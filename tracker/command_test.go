package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
)

func lookupImage(t *testing.T, tracker *Tracker, handle api.Handle) *wrappers.Image {
	image, err := lookup[*wrappers.Image](tracker, api.ObjectTypeImage, handle)
	require.NoError(t, err)
	return image
}

func lookupCommandBuffer(t *testing.T, tracker *Tracker, handle api.Handle) *wrappers.CommandBuffer {
	commandBuffer, err := tracker.commandBuffer(handle)
	require.NoError(t, err)
	return commandBuffer
}

func TestTracker_LayoutChangesOnSubmit(t *testing.T) {
	tracker := newDeviceTracker(t)
	createImage(t, tracker, 0x10)
	createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelPrimary, 0x51)

	require.NoError(t, tracker.BeginCommandBuffer(api.BeginCommandBufferArgs{CommandBuffer: 0x51}))
	require.NoError(t, tracker.CmdPipelineBarrier(api.CmdPipelineBarrierArgs{
		CommandBuffer: 0x51,
		ImageBarriers: []api.ImageMemoryBarrier{
			{Image: 0x10, OldLayout: core1_0.ImageLayoutUndefined, NewLayout: core1_0.ImageLayoutTransferDstOptimal},
			{Image: 0x99, NewLayout: core1_0.ImageLayoutTransferDstOptimal},
		},
	}))

	image := lookupImage(t, tracker, 0x10)
	require.Equal(t, core1_0.ImageLayoutUndefined, image.CurrentLayout)

	require.NoError(t, tracker.CmdPipelineBarrier(api.CmdPipelineBarrierArgs{
		CommandBuffer: 0x51,
		ImageBarriers: []api.ImageMemoryBarrier{
			{Image: 0x10, OldLayout: core1_0.ImageLayoutTransferDstOptimal, NewLayout: core1_0.ImageLayoutShaderReadOnlyOptimal},
		},
	}))
	require.Equal(t, core1_0.ImageLayoutUndefined, image.CurrentLayout)

	submit(t, tracker, 0x51)
	require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, image.CurrentLayout)

	// Pending state is kept, so resubmitting the command buffer reapplies it
	require.NoError(t, tracker.SetImageLayout(api.SetImageLayoutArgs{Device: deviceHandle, Image: 0x10, Layout: core1_0.ImageLayoutUndefined}))
	submit(t, tracker, 0x51)
	require.Equal(t, core1_0.ImageLayoutShaderReadOnlyOptimal, image.CurrentLayout)
}

func TestTracker_SubmitSkipsDestroyedTargets(t *testing.T) {
	tracker := newDeviceTracker(t)
	createImage(t, tracker, 0x10)
	createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelPrimary, 0x51)

	require.NoError(t, tracker.CmdPipelineBarrier(api.CmdPipelineBarrierArgs{
		CommandBuffer: 0x51,
		ImageBarriers: []api.ImageMemoryBarrier{{Image: 0x10, NewLayout: core1_0.ImageLayoutTransferDstOptimal}},
	}))

	// The handle is reused by a new image before submission
	require.NoError(t, tracker.Destroy(api.ObjectTypeImage, 0x10))
	createImage(t, tracker, 0x10)

	submit(t, tracker, 0x51)
	require.Equal(t, core1_0.ImageLayoutUndefined, lookupImage(t, tracker, 0x10).CurrentLayout)
}

func TestTracker_SecondaryCommandBuffers(t *testing.T) {
	tracker := newDeviceTracker(t)
	createImage(t, tracker, 0x10)
	createImage(t, tracker, 0x11)
	createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelPrimary, 0x51)
	createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelSecondary, 0x52)

	_, err := tracker.CreateQueryPool(api.CreateQueryPoolArgs{Device: deviceHandle, Pool: 0x60, QueryType: core1_0.QueryTypeOcclusion, QueryCount: 4})
	require.NoError(t, err)

	require.NoError(t, tracker.CmdPipelineBarrier(api.CmdPipelineBarrierArgs{
		CommandBuffer: 0x52,
		ImageBarriers: []api.ImageMemoryBarrier{
			{Image: 0x10, NewLayout: core1_0.ImageLayoutTransferDstOptimal},
			{Image: 0x11, NewLayout: core1_0.ImageLayoutTransferSrcOptimal},
		},
	}))
	require.NoError(t, tracker.CmdBeginQuery(api.CmdBeginQueryArgs{CommandBuffer: 0x52, QueryPool: 0x60, Query: 2}))
	require.NoError(t, tracker.CmdPipelineBarrier(api.CmdPipelineBarrierArgs{
		CommandBuffer: 0x51,
		ImageBarriers: []api.ImageMemoryBarrier{{Image: 0x10, NewLayout: core1_0.ImageLayoutColorAttachmentOptimal}},
	}))

	require.NoError(t, tracker.CmdExecuteCommands(api.CmdExecuteCommandsArgs{CommandBuffer: 0x51, CommandBuffers: []api.Handle{0x52}}))

	primary := lookupCommandBuffer(t, tracker, 0x51)
	secondary := lookupCommandBuffer(t, tracker, 0x52)
	require.Contains(t, primary.ReferencedIDs(), secondary.ID)
	require.True(t, secondary.IsSecondary())

	submit(t, tracker, 0x51)

	// The secondary's transitions are recorded after the primary's own
	require.Equal(t, core1_0.ImageLayoutTransferDstOptimal, lookupImage(t, tracker, 0x10).CurrentLayout)
	require.Equal(t, core1_0.ImageLayoutTransferSrcOptimal, lookupImage(t, tracker, 0x11).CurrentLayout)

	queryPool, err := lookup[*wrappers.QueryPool](tracker, api.ObjectTypeQueryPool, 0x60)
	require.NoError(t, err)
	require.True(t, queryPool.PendingQueries[2].Active)
	require.False(t, queryPool.PendingQueries[1].Active)
}

func TestTracker_RenderPassFinalLayouts(t *testing.T) {
	testCases := map[string]struct {
		DestroyRenderPass  bool
		DestroyFramebuffer bool
		Expected           core1_0.ImageLayout
	}{
		"RenderPassLive": {
			Expected: core1_0.ImageLayoutShaderReadOnlyOptimal,
		},
		"RenderPassDestroyed": {
			DestroyRenderPass: true,
			Expected:          core1_0.ImageLayoutShaderReadOnlyOptimal,
		},
		"FramebufferDestroyed": {
			DestroyFramebuffer: true,
			Expected:           core1_0.ImageLayoutUndefined,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newDeviceTracker(t)
			createImage(t, tracker, 0x10)
			createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelPrimary, 0x51)

			_, err := tracker.CreateImageView(api.CreateImageViewArgs{Device: deviceHandle, ImageView: 0x20, Image: 0x10})
			require.NoError(t, err)
			_, err = tracker.CreateRenderPass(api.CallCreateRenderPass, api.CreateRenderPassArgs{
				Device:     deviceHandle,
				RenderPass: 0x21,
				Attachments: []core1_0.AttachmentDescription{
					{Format: core1_0.FormatR8G8B8A8SRGB, Samples: core1_0.Samples1, FinalLayout: core1_0.ImageLayoutShaderReadOnlyOptimal},
				},
			})
			require.NoError(t, err)
			framebuffer, err := tracker.CreateFramebuffer(api.CreateFramebufferArgs{
				Device:      deviceHandle,
				Framebuffer: 0x22,
				RenderPass:  0x21,
				Attachments: []api.Handle{0x20},
				Width:       64,
				Height:      64,
				Layers:      1,
			})
			require.NoError(t, err)
			require.Equal(t, lookupImage(t, tracker, 0x10).Ref(), framebuffer.Attachments[0])

			require.NoError(t, tracker.CmdBeginRenderPass(api.CmdBeginRenderPassArgs{CommandBuffer: 0x51, RenderPass: 0x21, Framebuffer: 0x22}))
			if testCase.DestroyRenderPass {
				require.NoError(t, tracker.Destroy(api.ObjectTypeRenderPass, 0x21))
			}
			if testCase.DestroyFramebuffer {
				require.NoError(t, tracker.Destroy(api.ObjectTypeFramebuffer, 0x22))
			}
			require.NoError(t, tracker.CmdEndRenderPass(api.CmdEndRenderPassArgs{CommandBuffer: 0x51}))

			commandBuffer := lookupCommandBuffer(t, tracker, 0x51)
			require.True(t, commandBuffer.ActiveRenderPass.IsNull())
			require.True(t, commandBuffer.ActiveFramebuffer.IsNull())

			submit(t, tracker, 0x51)
			require.Equal(t, testCase.Expected, lookupImage(t, tracker, 0x10).CurrentLayout)
		})
	}
}

func TestTracker_QueryState(t *testing.T) {
	tracker := newDeviceTracker(t)
	createCommandBuffers(t, tracker, 0x50, core1_0.CommandBufferLevelPrimary, 0x51, 0x52)

	_, err := tracker.CreateQueryPool(api.CreateQueryPoolArgs{Device: deviceHandle, Pool: 0x60, QueryType: core1_0.QueryTypeOcclusion, QueryCount: 4})
	require.NoError(t, err)

	require.NoError(t, tracker.CmdBeginQuery(api.CmdBeginQueryArgs{CommandBuffer: 0x51, QueryPool: 0x60, Query: 0}))
	require.NoError(t, tracker.CmdEndQuery(api.CmdEndQueryArgs{CommandBuffer: 0x51, QueryPool: 0x60, Query: 0}))
	require.NoError(t, tracker.CmdWriteTimestamp(api.CmdWriteTimestampArgs{CommandBuffer: 0x51, QueryPool: 0x60, Query: 3}))

	queryPool, err := lookup[*wrappers.QueryPool](tracker, api.ObjectTypeQueryPool, 0x60)
	require.NoError(t, err)
	require.False(t, queryPool.HasActiveQueries())

	submit(t, tracker, 0x51)
	require.True(t, queryPool.PendingQueries[0].Active)
	require.True(t, queryPool.PendingQueries[3].Active)

	require.NoError(t, tracker.CmdResetQueryPool(api.CmdResetQueryPoolArgs{CommandBuffer: 0x52, QueryPool: 0x60, FirstQuery: 0, QueryCount: 4}))
	submit(t, tracker, 0x52)
	require.False(t, queryPool.HasActiveQueries())

	err = tracker.CmdBeginQuery(api.CmdBeginQueryArgs{CommandBuffer: 0x51, QueryPool: 0x99})
	require.True(t, api.IsNotFound(err))
}

func TestTracker_RecordCommand(t *testing.T) {
	testCases := map[string]struct {
		Flags        CreateFlags
		ExpectedData []byte
	}{
		"KeepCommandData": {
			ExpectedData: []byte{1, 2, 3, 4},
		},
		"SkipCommandData": {
			Flags: TrackerCreateSkipCommandData,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			tracker := newTestTracker(t, testCase.Flags)
			_, err := tracker.CreateCommandPool(api.CreateCommandPoolArgs{Device: deviceHandle, Pool: 0x50})
			require.NoError(t, err)
			_, err = tracker.AllocateCommandBuffers(api.AllocateCommandBuffersArgs{Device: deviceHandle, Pool: 0x50, CommandBuffers: []api.Handle{0x51}})
			require.NoError(t, err)
			buffer, err := tracker.CreateBuffer(api.CreateBufferArgs{Device: deviceHandle, Buffer: 0x10})
			require.NoError(t, err)

			require.NoError(t, tracker.RecordCommand(api.RecordCommandArgs{
				CommandBuffer: 0x51,
				Call:          api.CallCmdPipelineBarrier,
				Data:          []byte{1, 2},
				References:    []api.ObjectRef{{Type: api.ObjectTypeBuffer, Handle: 0x10}},
			}))
			require.NoError(t, tracker.RecordCommand(api.RecordCommandArgs{
				CommandBuffer: 0x51,
				Call:          api.CallCmdPipelineBarrier,
				Data:          []byte{3, 4},
				References:    []api.ObjectRef{{Type: api.ObjectTypeBuffer, Handle: 0x99}},
			}))

			commandBuffer := lookupCommandBuffer(t, tracker, 0x51)
			require.Equal(t, testCase.ExpectedData, commandBuffer.CommandData)
			require.Equal(t, []api.HandleID{buffer.ID}, commandBuffer.ReferencedIDs())

			require.NoError(t, tracker.BeginCommandBuffer(api.BeginCommandBufferArgs{CommandBuffer: 0x51, Flags: core1_0.CommandBufferUsageOneTimeSubmit}))
			require.Empty(t, commandBuffer.CommandData)
			require.Empty(t, commandBuffer.ReferencedIDs())
			require.Equal(t, core1_0.CommandBufferUsageOneTimeSubmit, commandBuffer.BeginFlags)
		})
	}
}
