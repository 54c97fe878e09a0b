package wrappers

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type CommandPool struct {
	Wrapper
	Device api.Handle

	Flags            core1_0.CommandPoolCreateFlags
	QueueFamilyIndex int
}

// PendingQueries holds the query state a command buffer will apply to one query pool when submitted
type PendingQueries struct {
	QueryPool Ref
	Queries   map[int]api.QueryInfo
}

// CommandBuffer holds the recording state of a command buffer. All pending state is local to the
// command buffer until it is submitted, and is only ever touched by the thread recording it.
type CommandBuffer struct {
	Wrapper
	Device           api.Handle
	Pool             api.Handle
	QueueFamilyIndex int

	Level      core1_0.CommandBufferLevel
	BeginFlags core1_0.CommandBufferUsageFlags

	CommandData []byte
	// References holds the ids of every object used by recorded commands, by object type
	References map[api.ObjectType]map[api.HandleID]api.Handle

	PendingLayouts map[api.HandleID]api.PendingLayout
	PendingQueries map[api.HandleID]*PendingQueries

	ActiveRenderPass  Ref
	ActiveFramebuffer Ref
}

func NewCommandBuffer(base Wrapper, pool *CommandPool, level core1_0.CommandBufferLevel) *CommandBuffer {
	commandBuffer := &CommandBuffer{
		Wrapper: base,
		Level:   level,
	}
	if pool != nil {
		commandBuffer.Device = pool.Device
		commandBuffer.Pool = pool.Handle
		commandBuffer.QueueFamilyIndex = pool.QueueFamilyIndex
	}
	commandBuffer.Reset()

	return commandBuffer
}

func (c *CommandBuffer) IsSecondary() bool {
	return c.Level == core1_0.CommandBufferLevelSecondary
}

// Reset returns the command buffer to the initial state
func (c *CommandBuffer) Reset() {
	c.BeginFlags = 0
	c.CommandData = nil
	c.References = make(map[api.ObjectType]map[api.HandleID]api.Handle)
	c.PendingLayouts = make(map[api.HandleID]api.PendingLayout)
	c.PendingQueries = make(map[api.HandleID]*PendingQueries)
	c.ActiveRenderPass = Ref{}
	c.ActiveFramebuffer = Ref{}
}

func (c *CommandBuffer) AddReference(objectType api.ObjectType, ref Ref) {
	if ref.IsNull() {
		return
	}

	refs, ok := c.References[objectType]
	if !ok {
		refs = make(map[api.HandleID]api.Handle)
		c.References[objectType] = refs
	}
	refs[ref.ID] = ref.Handle
}

// ReferencedIDs returns every referenced id, in ascending order
func (c *CommandBuffer) ReferencedIDs() []api.HandleID {
	var ids []api.HandleID
	for _, refs := range c.References {
		ids = append(ids, maps.Keys(refs)...)
	}
	slices.Sort(ids)
	return ids
}

func (c *CommandBuffer) SetPendingLayout(image Ref, layout core1_0.ImageLayout) {
	c.PendingLayouts[image.ID] = api.PendingLayout{Image: image.Handle, Layout: layout}
	c.AddReference(api.ObjectTypeImage, image)
}

func (c *CommandBuffer) SetPendingQuery(queryPool Ref, query int, info api.QueryInfo) {
	pending, ok := c.PendingQueries[queryPool.ID]
	if !ok {
		pending = &PendingQueries{QueryPool: queryPool, Queries: make(map[int]api.QueryInfo)}
		c.PendingQueries[queryPool.ID] = pending
	}
	pending.Queries[query] = info
	c.AddReference(api.ObjectTypeQueryPool, queryPool)
}

// Merge folds the pending state and references of an executed secondary command buffer into the
// receiver, as if the receiver had recorded the secondary's commands itself
func (c *CommandBuffer) Merge(secondary *CommandBuffer) {
	for id, layout := range secondary.PendingLayouts {
		c.PendingLayouts[id] = layout
	}

	for _, pending := range secondary.PendingQueries {
		for query, info := range pending.Queries {
			c.SetPendingQuery(pending.QueryPool, query, info)
		}
	}

	for objectType, refs := range secondary.References {
		for id, handle := range refs {
			c.AddReference(objectType, Ref{Handle: handle, ID: id})
		}
	}
	c.AddReference(api.ObjectTypeCommandBuffer, secondary.Ref())
}

// PendingLayoutList returns the pending layouts ordered by image id
func (c *CommandBuffer) PendingLayoutList() []api.PendingLayout {
	ids := maps.Keys(c.PendingLayouts)
	slices.Sort(ids)

	layouts := make([]api.PendingLayout, 0, len(ids))
	for _, id := range ids {
		layouts = append(layouts, c.PendingLayouts[id])
	}
	return layouts
}

// PendingQueryList returns the pending queries ordered by query pool id and query
func (c *CommandBuffer) PendingQueryList() []api.PendingQuery {
	ids := maps.Keys(c.PendingQueries)
	slices.Sort(ids)

	var queries []api.PendingQuery
	for _, id := range ids {
		pending := c.PendingQueries[id]
		indices := maps.Keys(pending.Queries)
		slices.Sort(indices)

		for _, index := range indices {
			queries = append(queries, api.PendingQuery{
				QueryPool: pending.QueryPool.Handle,
				Query:     index,
				Info:      pending.Queries[index],
			})
		}
	}
	return queries
}
