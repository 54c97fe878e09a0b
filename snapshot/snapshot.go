package snapshot

import (
	"context"

	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/tracker"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slog"
)

// Call is one synthesized call of a snapshot. Object is the id of the object the call creates or
// restores, or api.NullHandleID for calls that do not target a single object.
type Call struct {
	ID     api.CallID
	Object api.HandleID
	Args   api.Args
}

// Snapshot is an ordered sequence of calls that recreates every live object, and its derived state,
// as it was at TrimPoint
type Snapshot struct {
	TrimPoint uint64
	Calls     []Call
}

type orphanKey struct {
	Type   api.ObjectType
	Handle api.Handle
}

type orphan struct {
	dep       wrappers.Dependency
	destroyed bool
}

type builder struct {
	ctx     context.Context
	logger  *slog.Logger
	tracker *tracker.Tracker

	calls   []Call
	emitted map[api.HandleID]struct{}
	// orphans are dependencies recreated from their clones, in the order they were created
	orphans []*orphan
	// adopted holds the orphan currently occupying each handle
	adopted map[orphanKey]*orphan
	// acquireSemaphores holds the semaphores whose pending signal is restored by an image acquire
	acquireSemaphores map[api.HandleID]struct{}
}

// Build walks the live objects of t in dependency order and returns the calls that would recreate them.
// trimPoint identifies the position in the call stream the snapshot was taken at and is only recorded.
//
// Objects that other objects were created from, but which have since been destroyed, are recreated from
// the clones their dependents hold and destroyed again at the end of the snapshot.
//
// Build only reads tracker state: the caller must ensure no handlers run while it is building.
func Build(ctx context.Context, t *tracker.Tracker, trimPoint uint64) (*Snapshot, error) {
	sb := &builder{
		ctx:     ctx,
		logger:  t.Logger(),
		tracker: t,
		emitted: make(map[api.HandleID]struct{}),
		adopted: make(map[orphanKey]*orphan),

		acquireSemaphores: make(map[api.HandleID]struct{}),
	}

	phases := []func(){
		sb.createInstances,
		sb.createPhysicalDevices,
		sb.createSurfaces,
		sb.createDevices,
		sb.createQueues,
		sb.createSwapchains,
		sb.createDeviceMemories,
		sb.createBuffers,
		sb.createImages,
		sb.createGenericObjects,
		sb.createFences,
		sb.createSemaphores,
		sb.createEvents,
		sb.createCommandPools,
		sb.createDescriptorSetLayouts,
		sb.createPipelineLayouts,
		sb.createRenderPasses,
		sb.createShaderModules,
		sb.createPipelines,
		sb.createViews,
		sb.createDescriptorPools,
		sb.createFramebuffers,
		sb.createDescriptorSets,
		sb.createQueryPools,
		sb.createCommandBuffers,
		sb.restoreSemaphoreSignals,
		sb.restoreAcquiredImages,
		sb.destroyOrphans,
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phase()
	}

	sb.logger.LogAttrs(ctx, slog.LevelDebug, "Built snapshot",
		slog.Int("Calls", len(sb.calls)),
		slog.Int("Orphans", len(sb.orphans)),
	)

	return &Snapshot{
		TrimPoint: trimPoint,
		Calls:     sb.calls,
	}, nil
}

func (sb *builder) write(call api.CallID, object api.HandleID, args api.Args) {
	sb.calls = append(sb.calls, Call{ID: call, Object: object, Args: args})
}

// create writes the creation call of a live object
func (sb *builder) create(obj wrappers.Object) {
	base := obj.Base()
	if _, done := sb.emitted[base.ID]; done {
		return
	}

	for _, dep := range obj.Dependencies() {
		sb.adopt(dep)
	}

	sb.write(base.CreateCall, base.ID, cloneArgs(base.CreateParams))
	sb.emitted[base.ID] = struct{}{}
}

func (sb *builder) isEmitted(id api.HandleID) bool {
	_, ok := sb.emitted[id]
	return ok
}

// adopt recreates a dependency that is no longer live from its clone. Live dependencies are created by
// their own phase.
//
// Destroyed objects may share a handle. When an orphan's handle is held by an earlier orphan, the earlier
// one is destroyed first: everything created from it has already been written.
func (sb *builder) adopt(dep wrappers.Dependency) {
	if dep.IsNull() || sb.tracker.IsLive(dep.ID) {
		return
	}

	key := orphanKey{Type: dep.Type, Handle: dep.Handle}
	current, occupied := sb.adopted[key]
	if occupied && current.dep.ID == dep.ID {
		return
	}

	if reused, err := sb.tracker.Lookup(dep.Type, dep.Handle); err == nil {
		sb.logger.LogAttrs(sb.ctx, slog.LevelWarn, "destroyed dependency cannot be recreated, its handle was reused",
			slog.String("Type", dep.Type.String()),
			slog.String("Handle", dep.Handle.String()),
			slog.Any("LiveID", reused.Base().ID),
		)
		return
	}

	for _, nested := range dep.Dependencies {
		sb.adopt(nested)
	}

	if occupied {
		sb.destroyOrphan(current)
	}

	sb.logger.LogAttrs(sb.ctx, slog.LevelDebug, "    Adopting orphaned dependency",
		slog.String("Type", dep.Type.String()),
		slog.String("Handle", dep.Handle.String()),
	)

	sb.write(dep.CreateCall, dep.ID, cloneArgs(dep.CreateParams))
	sb.emitted[dep.ID] = struct{}{}

	adopted := &orphan{dep: dep}
	sb.orphans = append(sb.orphans, adopted)
	sb.adopted[key] = adopted
}

func (sb *builder) destroyOrphan(o *orphan) {
	o.destroyed = true
	delete(sb.adopted, orphanKey{Type: o.dep.Type, Handle: o.dep.Handle})

	sb.write(api.DestroyCall(o.dep.Type), o.dep.ID, api.DestroyObjectArgs{
		Type:   o.dep.Type,
		Parent: o.dep.Parent,
		Object: o.dep.Handle,
	})
}

func (sb *builder) destroyOrphans() {
	for i := len(sb.orphans) - 1; i >= 0; i-- {
		if !sb.orphans[i].destroyed {
			sb.destroyOrphan(sb.orphans[i])
		}
	}
}

func (sb *builder) createAll(objectType api.ObjectType) {
	for _, obj := range sb.tracker.Objects(objectType) {
		sb.create(obj)
	}
}

func cloneArgs(args api.Args) api.Args {
	if args == nil {
		return nil
	}
	return args.Clone()
}
