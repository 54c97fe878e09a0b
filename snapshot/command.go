package snapshot

import (
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// createQueryPools creates every query pool and restores the queries that have results pending
func (sb *builder) createQueryPools() {
	for _, obj := range sb.tracker.Objects(api.ObjectTypeQueryPool) {
		sb.create(obj)

		queryPool, ok := obj.(*wrappers.QueryPool)
		if !ok || !queryPool.HasActiveQueries() {
			continue
		}

		sb.write(api.CallMetaRestoreQueries, queryPool.ID, api.RestoreQueriesArgs{
			Device:    queryPool.Device,
			QueryPool: queryPool.Handle,
			Queries:   slices.Clone(queryPool.PendingQueries),
		})
	}
}

// createCommandBuffers allocates every command buffer, secondaries first so primaries that executed
// them can be restored after them
func (sb *builder) createCommandBuffers() {
	commandBuffers := sb.tracker.Objects(api.ObjectTypeCommandBuffer)

	for _, secondaryPass := range []bool{true, false} {
		for _, obj := range commandBuffers {
			commandBuffer, ok := obj.(*wrappers.CommandBuffer)
			if !ok {
				sb.create(obj)
				continue
			}
			if commandBuffer.IsSecondary() != secondaryPass {
				continue
			}

			sb.create(commandBuffer)
			sb.restoreCommandBuffer(commandBuffer)
		}
	}
}

func (sb *builder) restoreCommandBuffer(commandBuffer *wrappers.CommandBuffer) {
	if len(commandBuffer.CommandData) == 0 && len(commandBuffer.References) == 0 && commandBuffer.BeginFlags == 0 {
		return
	}

	for _, id := range commandBuffer.ReferencedIDs() {
		if !sb.isEmitted(id) {
			sb.logger.LogAttrs(sb.ctx, slog.LevelWarn, "command buffer refers to an object that was not recreated, its recording will not be restored",
				slog.String("CommandBuffer", commandBuffer.Handle.String()),
				slog.Any("ObjectID", id),
			)
			return
		}
	}

	sb.write(api.CallMetaRestoreCommandBuffer, commandBuffer.ID, api.RestoreCommandBufferArgs{
		CommandBuffer:  commandBuffer.Handle,
		Flags:          commandBuffer.BeginFlags,
		Data:           slices.Clone(commandBuffer.CommandData),
		References:     objectRefs(commandBuffer.References),
		PendingLayouts: commandBuffer.PendingLayoutList(),
		PendingQueries: commandBuffer.PendingQueryList(),
	})
}

// objectRefs flattens command buffer references, ordered by type and then id
func objectRefs(references map[api.ObjectType]map[api.HandleID]api.Handle) []api.ObjectRef {
	types := maps.Keys(references)
	slices.Sort(types)

	var refs []api.ObjectRef
	for _, objectType := range types {
		ids := maps.Keys(references[objectType])
		slices.Sort(ids)

		for _, id := range ids {
			refs = append(refs, api.ObjectRef{Type: objectType, Handle: references[objectType][id]})
		}
	}
	return refs
}
