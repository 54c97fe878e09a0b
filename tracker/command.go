package tracker

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/registry"
	"github.com/vkngwrapper/capture/wrappers"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

func (t *Tracker) CreateCommandPool(args api.CreateCommandPoolArgs) (*wrappers.CommandPool, error) {
	t.logger.Debug("Tracker::CreateCommandPool")

	pool := &wrappers.CommandPool{
		Wrapper:          t.newWrapper(api.ObjectTypeCommandPool, args.Pool, args.Device, api.CallCreateCommandPool, args),
		Device:           args.Device,
		Flags:            args.Flags,
		QueueFamilyIndex: args.QueueFamilyIndex,
	}

	err := t.track(pool, nil)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// AllocateCommandBuffers tracks command buffers allocated from a pool. Each command buffer is owned by
// the pool and keeps the arguments that would have allocated it alone.
func (t *Tracker) AllocateCommandBuffers(args api.AllocateCommandBuffersArgs) ([]*wrappers.CommandBuffer, error) {
	t.logger.Debug("Tracker::AllocateCommandBuffers")

	pool, err := lookup[*wrappers.CommandPool](t, api.ObjectTypeCommandPool, args.Pool)
	if err != nil {
		return nil, err
	}

	commandBuffers := make([]*wrappers.CommandBuffer, 0, len(args.CommandBuffers))
	for _, handle := range args.CommandBuffers {
		params := api.AllocateCommandBuffersArgs{
			Device:         args.Device,
			Pool:           args.Pool,
			Level:          args.Level,
			CommandBuffers: []api.Handle{handle},
		}

		commandBuffer := wrappers.NewCommandBuffer(
			t.newWrapper(api.ObjectTypeCommandBuffer, handle, args.Device, api.CallAllocateCommandBuffers, params),
			pool, args.Level,
		)

		trackErr := t.track(commandBuffer, pool)
		if trackErr != nil {
			err = errors.CombineErrors(err, trackErr)
			continue
		}
		commandBuffers = append(commandBuffers, commandBuffer)
	}

	return commandBuffers, err
}

// FreeCommandBuffers stops tracking individual command buffers
func (t *Tracker) FreeCommandBuffers(args api.FreeCommandBuffersArgs) error {
	t.logger.Debug("Tracker::FreeCommandBuffers")

	var err error
	for _, handle := range args.CommandBuffers {
		if handle == api.NullHandle {
			continue
		}
		err = errors.CombineErrors(err, t.Destroy(api.ObjectTypeCommandBuffer, handle))
	}
	return err
}

func (t *Tracker) commandBuffer(handle api.Handle) (*wrappers.CommandBuffer, error) {
	return lookup[*wrappers.CommandBuffer](t, api.ObjectTypeCommandBuffer, handle)
}

// BeginCommandBuffer discards the previous contents of a command buffer and starts a new recording
func (t *Tracker) BeginCommandBuffer(args api.BeginCommandBufferArgs) error {
	t.logger.Debug("Tracker::BeginCommandBuffer")

	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	commandBuffer.Reset()
	commandBuffer.BeginFlags = args.Flags
	return nil
}

func (t *Tracker) ResetCommandBuffer(args api.ResetCommandBufferArgs) error {
	t.logger.Debug("Tracker::ResetCommandBuffer")

	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	commandBuffer.Reset()
	return nil
}

// RecordCommand appends the encoded bytes of a recorded command to a command buffer and records the
// objects it references. The dispatch layer calls it for every recorded command, including commands
// with a dedicated handler such as CmdPipelineBarrier. References to objects that are not live are
// ignored.
func (t *Tracker) RecordCommand(args api.RecordCommandArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	if t.createFlags&TrackerCreateSkipCommandData == 0 {
		commandBuffer.CommandData = append(commandBuffer.CommandData, args.Data...)
	}

	for _, ref := range args.References {
		commandBuffer.AddReference(ref.Type, t.ref(ref.Type, ref.Handle))
	}
	return nil
}

// CmdPipelineBarrier records the layout transitions of image memory barriers. The transitions take
// effect when the command buffer is submitted.
func (t *Tracker) CmdPipelineBarrier(args api.CmdPipelineBarrierArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	for _, barrier := range args.ImageBarriers {
		image := t.ref(api.ObjectTypeImage, barrier.Image)
		if image.IsNull() {
			continue
		}
		commandBuffer.SetPendingLayout(image, barrier.NewLayout)
	}
	return nil
}

func (t *Tracker) CmdBeginRenderPass(args api.CmdBeginRenderPassArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	commandBuffer.ActiveRenderPass = t.ref(api.ObjectTypeRenderPass, args.RenderPass)
	commandBuffer.ActiveFramebuffer = t.ref(api.ObjectTypeFramebuffer, args.Framebuffer)
	commandBuffer.AddReference(api.ObjectTypeRenderPass, commandBuffer.ActiveRenderPass)
	commandBuffer.AddReference(api.ObjectTypeFramebuffer, commandBuffer.ActiveFramebuffer)
	return nil
}

// CmdEndRenderPass records the transition of every framebuffer attachment to the final layout of the
// active render pass. If the render pass was destroyed while recording, the framebuffer's copy of it is
// used instead.
func (t *Tracker) CmdEndRenderPass(args api.CmdEndRenderPassArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	defer func() {
		commandBuffer.ActiveRenderPass = wrappers.Ref{}
		commandBuffer.ActiveFramebuffer = wrappers.Ref{}
	}()

	if commandBuffer.ActiveFramebuffer.IsNull() {
		return nil
	}

	framebuffer, err := registry.LookupIDAs[*wrappers.Framebuffer](t.registry, commandBuffer.ActiveFramebuffer.ID)
	if err != nil {
		t.logger.Debug("    Framebuffer destroyed before render pass end", slog.String("Framebuffer", commandBuffer.ActiveFramebuffer.Handle.String()))
		return nil
	}

	var finalLayouts []core1_0.ImageLayout
	renderPass, err := registry.LookupIDAs[*wrappers.RenderPass](t.registry, commandBuffer.ActiveRenderPass.ID)
	if err == nil {
		finalLayouts = renderPass.FinalLayouts
	} else if params, ok := framebuffer.RenderPass.CreateParams.(api.CreateRenderPassArgs); ok {
		finalLayouts = params.FinalLayouts()
	}

	for i, attachment := range framebuffer.Attachments {
		if i >= len(finalLayouts) {
			break
		}
		if attachment.IsNull() {
			continue
		}
		commandBuffer.SetPendingLayout(attachment, finalLayouts[i])
	}

	return nil
}

func (t *Tracker) CmdBeginQuery(args api.CmdBeginQueryArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	queryPool := t.ref(api.ObjectTypeQueryPool, args.QueryPool)
	if queryPool.IsNull() {
		return api.NotFound(api.ObjectTypeQueryPool, args.QueryPool)
	}

	commandBuffer.SetPendingQuery(queryPool, args.Query, api.QueryInfo{
		Active:           true,
		Flags:            args.Flags,
		QueueFamilyIndex: commandBuffer.QueueFamilyIndex,
	})
	return nil
}

// CmdEndQuery records the use of the query pool. Queries become active when they begin, so their
// pending state is left unchanged.
func (t *Tracker) CmdEndQuery(args api.CmdEndQueryArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	commandBuffer.AddReference(api.ObjectTypeQueryPool, t.ref(api.ObjectTypeQueryPool, args.QueryPool))
	return nil
}

func (t *Tracker) CmdResetQueryPool(args api.CmdResetQueryPoolArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	queryPool := t.ref(api.ObjectTypeQueryPool, args.QueryPool)
	if queryPool.IsNull() {
		return api.NotFound(api.ObjectTypeQueryPool, args.QueryPool)
	}

	for query := args.FirstQuery; query < args.FirstQuery+args.QueryCount; query++ {
		commandBuffer.SetPendingQuery(queryPool, query, api.QueryInfo{})
	}
	return nil
}

func (t *Tracker) CmdWriteTimestamp(args api.CmdWriteTimestampArgs) error {
	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	queryPool := t.ref(api.ObjectTypeQueryPool, args.QueryPool)
	if queryPool.IsNull() {
		return api.NotFound(api.ObjectTypeQueryPool, args.QueryPool)
	}

	commandBuffer.SetPendingQuery(queryPool, args.Query, api.QueryInfo{
		Active:           true,
		QueueFamilyIndex: commandBuffer.QueueFamilyIndex,
	})
	return nil
}

// CmdExecuteCommands merges the pending state of each executed secondary command buffer into the
// primary command buffer
func (t *Tracker) CmdExecuteCommands(args api.CmdExecuteCommandsArgs) error {
	primary, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	for _, handle := range args.CommandBuffers {
		secondary, lookupErr := t.commandBuffer(handle)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}
		primary.Merge(secondary)
	}
	return err
}

// RestoreCommandBuffer replaces the recorded contents and pending state of a command buffer. Snapshots
// use it to restore command buffers that were recorded before the trim point.
func (t *Tracker) RestoreCommandBuffer(args api.RestoreCommandBufferArgs) error {
	t.logger.Debug("Tracker::RestoreCommandBuffer")

	commandBuffer, err := t.commandBuffer(args.CommandBuffer)
	if err != nil {
		return err
	}

	commandBuffer.Reset()
	commandBuffer.BeginFlags = args.Flags
	if t.createFlags&TrackerCreateSkipCommandData == 0 {
		commandBuffer.CommandData = append([]byte(nil), args.Data...)
	}

	for _, ref := range args.References {
		commandBuffer.AddReference(ref.Type, t.ref(ref.Type, ref.Handle))
	}
	for _, pending := range args.PendingLayouts {
		image := t.ref(api.ObjectTypeImage, pending.Image)
		if !image.IsNull() {
			commandBuffer.SetPendingLayout(image, pending.Layout)
		}
	}
	for _, pending := range args.PendingQueries {
		queryPool := t.ref(api.ObjectTypeQueryPool, pending.QueryPool)
		if !queryPool.IsNull() {
			commandBuffer.SetPendingQuery(queryPool, pending.Query, pending.Info)
		}
	}

	return nil
}

func (t *Tracker) CreateQueryPool(args api.CreateQueryPoolArgs) (*wrappers.QueryPool, error) {
	t.logger.Debug("Tracker::CreateQueryPool")

	queryPool := &wrappers.QueryPool{
		Wrapper:        t.newWrapper(api.ObjectTypeQueryPool, args.Pool, args.Device, api.CallCreateQueryPool, args),
		Device:         args.Device,
		QueryType:      args.QueryType,
		QueryCount:     args.QueryCount,
		PendingQueries: make([]api.QueryInfo, args.QueryCount),
	}

	err := t.track(queryPool, nil)
	if err != nil {
		return nil, err
	}
	return queryPool, nil
}

// RestoreQueries replaces the pending query state of a query pool. Snapshots use it to restore queries
// with results pending at the trim point.
func (t *Tracker) RestoreQueries(args api.RestoreQueriesArgs) error {
	t.logger.Debug("Tracker::RestoreQueries")

	queryPool, err := lookup[*wrappers.QueryPool](t, api.ObjectTypeQueryPool, args.QueryPool)
	if err != nil {
		return err
	}

	for query, info := range args.Queries {
		queryPool.SetQuery(query, info)
	}
	return nil
}
