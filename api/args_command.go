package api

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
)

type CreateCommandPoolArgs struct {
	Device Handle
	Pool   Handle

	Flags            core1_0.CommandPoolCreateFlags
	QueueFamilyIndex int
}

func (a CreateCommandPoolArgs) Clone() Args {
	return a
}

type AllocateCommandBuffersArgs struct {
	Device Handle
	Pool   Handle

	Level          core1_0.CommandBufferLevel
	CommandBuffers []Handle
}

func (a AllocateCommandBuffersArgs) Clone() Args {
	a.CommandBuffers = cloneHandles(a.CommandBuffers)
	return a
}

type FreeCommandBuffersArgs struct {
	Device         Handle
	Pool           Handle
	CommandBuffers []Handle
}

func (a FreeCommandBuffersArgs) Clone() Args {
	a.CommandBuffers = cloneHandles(a.CommandBuffers)
	return a
}

type BeginCommandBufferArgs struct {
	CommandBuffer Handle
	Flags         core1_0.CommandBufferUsageFlags
}

type ResetCommandBufferArgs struct {
	CommandBuffer Handle
}

// RecordCommandArgs appends one encoded command to a command buffer's stream. References lists every
// object the command uses, so snapshots can tell whether the stream can still be replayed.
type RecordCommandArgs struct {
	CommandBuffer Handle
	Call          CallID
	Data          []byte
	References    []ObjectRef
}

type ImageMemoryBarrier struct {
	Image               Handle
	OldLayout           core1_0.ImageLayout
	NewLayout           core1_0.ImageLayout
	SrcQueueFamilyIndex int
	DstQueueFamilyIndex int
	SubresourceRange    core1_0.ImageSubresourceRange
}

type CmdPipelineBarrierArgs struct {
	CommandBuffer Handle
	SrcStageMask  core1_0.PipelineStageFlags
	DstStageMask  core1_0.PipelineStageFlags
	ImageBarriers []ImageMemoryBarrier
}

type CmdBeginRenderPassArgs struct {
	CommandBuffer Handle
	RenderPass    Handle
	Framebuffer   Handle
}

type CmdEndRenderPassArgs struct {
	CommandBuffer Handle
}

type CmdBeginQueryArgs struct {
	CommandBuffer Handle
	QueryPool     Handle
	Query         int
	Flags         core1_0.QueryControlFlags
}

type CmdEndQueryArgs struct {
	CommandBuffer Handle
	QueryPool     Handle
	Query         int
}

type CmdResetQueryPoolArgs struct {
	CommandBuffer Handle
	QueryPool     Handle
	FirstQuery    int
	QueryCount    int
}

type CmdWriteTimestampArgs struct {
	CommandBuffer Handle
	PipelineStage core1_0.PipelineStageFlags
	QueryPool     Handle
	Query         int
}

type CmdExecuteCommandsArgs struct {
	CommandBuffer  Handle
	CommandBuffers []Handle
}

type CreateQueryPoolArgs struct {
	Device Handle
	Pool   Handle

	QueryType          core1_0.QueryType
	QueryCount         int
	PipelineStatistics core1_0.QueryPipelineStatisticFlags
}

func (a CreateQueryPoolArgs) Clone() Args {
	return a
}

// QueryInfo is the state of a single query. Active queries have results that will become available.
type QueryInfo struct {
	Active           bool
	Flags            core1_0.QueryControlFlags
	QueueFamilyIndex int
}

// RestoreQueriesArgs restores the per-query pending results of a query pool in a snapshot. Queries
// is indexed by query.
type RestoreQueriesArgs struct {
	Device    Handle
	QueryPool Handle
	Queries   []QueryInfo
}

func (a RestoreQueriesArgs) Clone() Args {
	a.Queries = slices.Clone(a.Queries)
	return a
}

type PendingLayout struct {
	Image  Handle
	Layout core1_0.ImageLayout
}

type PendingQuery struct {
	QueryPool Handle
	Query     int
	Info      QueryInfo
}

// RestoreCommandBufferArgs restores the recorded command stream of a command buffer along with the
// state it will apply when it is submitted
type RestoreCommandBufferArgs struct {
	CommandBuffer Handle
	Flags         core1_0.CommandBufferUsageFlags

	Data           []byte
	References     []ObjectRef
	PendingLayouts []PendingLayout
	PendingQueries []PendingQuery
}

func (a RestoreCommandBufferArgs) Clone() Args {
	a.Data = slices.Clone(a.Data)
	a.References = slices.Clone(a.References)
	a.PendingLayouts = slices.Clone(a.PendingLayouts)
	a.PendingQueries = slices.Clone(a.PendingQueries)
	return a
}
