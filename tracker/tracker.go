package tracker

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/internal/utils"
	"github.com/vkngwrapper/capture/registry"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slog"
)

// Tracker maintains the shadow state of every live object created through an observed call stream.
// The dispatch layer calls one handler per intercepted call, after the real call has succeeded.
//
// Handlers for unrelated objects may be called concurrently. Handlers that mutate the same object, or
// record into the same command buffer, must be externally synchronized, which the graphics API already
// requires of its own callers.
type Tracker struct {
	logger      *slog.Logger
	createFlags CreateFlags

	ids       registry.IDAllocator
	registry  *registry.Registry
	ownership *ownershipGraph
}

// New creates a new Tracker
//
// logger - Receives entry traces at debug level and stream inconsistencies at warn level
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) *Tracker {
	useMutex := options.Flags&TrackerCreateExternallySynchronized == 0

	return &Tracker{
		logger:      logger,
		createFlags: options.Flags,
		registry:    registry.New(useMutex),
		ownership:   newOwnershipGraph(useMutex),
	}
}

func (t *Tracker) newWrapper(objectType api.ObjectType, handle api.Handle, parent api.Handle, call api.CallID, params api.Args) wrappers.Wrapper {
	var cloned api.Args
	if params != nil {
		cloned = params.Clone()
	}

	return wrappers.Wrapper{
		Type:         objectType,
		Handle:       handle,
		ID:           t.ids.Allocate(),
		Parent:       parent,
		CreateCall:   call,
		CreateParams: cloned,
	}
}

// track registers obj and links it under owner, if owner is not nil
func (t *Tracker) track(obj wrappers.Object, owner wrappers.Object) error {
	base := obj.Base()

	err := t.registry.Register(obj)
	if err != nil {
		return err
	}

	ownerID := api.NullHandleID
	if owner != nil {
		ownerID = owner.Base().ID
	}

	err = t.ownership.Add(base.ID, ownerID)
	if err != nil {
		_, _ = t.registry.Unregister(base.Type, base.Handle)
		return err
	}

	return nil
}

// Create tracks an object whose only state is its creation parameters, or whose derived state starts
// out empty: samplers, pipeline caches, shader modules, semaphores, events, surfaces and the other
// categories listed by api.CreateCall. parent is the dispatchable object the creation call was issued
// on.
func (t *Tracker) Create(objectType api.ObjectType, handle api.Handle, call api.CallID, params api.Args, parent api.Handle) (wrappers.Object, error) {
	t.logger.Debug("Tracker::Create", slog.String("Type", objectType.String()))

	base := t.newWrapper(objectType, handle, parent, call, params)

	var obj wrappers.Object
	switch objectType {
	case api.ObjectTypeSemaphore:
		obj = &wrappers.Semaphore{Wrapper: base, Device: parent}
	case api.ObjectTypeEvent:
		obj = &wrappers.Event{Wrapper: base, Device: parent}
	case api.ObjectTypeSurface:
		obj = wrappers.NewSurface(base)
	default:
		obj = &base
	}

	err := t.track(obj, nil)
	if err != nil {
		return nil, err
	}

	return obj, nil
}

// CreateObject tracks an object created by one of the calls listed by api.CreateCall
func (t *Tracker) CreateObject(call api.CallID, args api.CreateObjectArgs) (wrappers.Object, error) {
	return t.Create(args.Type, args.Object, call, args, args.Parent)
}

// Destroy stops tracking an object and every object it owns. It fails with api.ErrNotFound if the
// object is not live, which indicates a double destroy.
func (t *Tracker) Destroy(objectType api.ObjectType, handle api.Handle) error {
	t.logger.Debug("Tracker::Destroy", slog.String("Type", objectType.String()))

	obj, err := t.registry.Lookup(objectType, handle)
	if err != nil {
		return err
	}

	removed := t.ownership.Remove(obj.Base().ID)
	err = t.unregister(removed)

	if len(removed) > 1 {
		t.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Destroyed owned objects",
			slog.String("Type", objectType.String()),
			slog.Int("Count", len(removed)-1),
		)
	}

	utils.DebugValidate(t)
	return err
}

// ResetPool releases every object allocated from a descriptor pool or command pool, leaving the pool
// itself live
func (t *Tracker) ResetPool(objectType api.ObjectType, handle api.Handle) error {
	t.logger.Debug("Tracker::ResetPool", slog.String("Type", objectType.String()))

	if objectType != api.ObjectTypeDescriptorPool && objectType != api.ObjectTypeCommandPool {
		return errors.Wrapf(api.ErrWrongObjectType, "%s is not a pool", objectType)
	}

	obj, err := t.registry.Lookup(objectType, handle)
	if err != nil {
		return err
	}

	removed := t.ownership.RemoveChildren(obj.Base().ID)
	err = t.unregister(removed)

	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Released pool objects",
		slog.String("Type", objectType.String()),
		slog.Int("Count", len(removed)),
	)

	utils.DebugValidate(t)
	return err
}

func (t *Tracker) unregister(ids []api.HandleID) error {
	var err error
	for _, id := range ids {
		obj, lookupErr := t.registry.LookupID(id)
		if lookupErr != nil {
			err = errors.CombineErrors(err, lookupErr)
			continue
		}

		base := obj.Base()
		_, unregisterErr := t.registry.Unregister(base.Type, base.Handle)
		err = errors.CombineErrors(err, unregisterErr)
	}
	return err
}

func (t *Tracker) Logger() *slog.Logger {
	return t.logger
}

// Lookup returns the live wrapper for a handle. It fails with api.ErrNotFound if the handle is not live.
func (t *Tracker) Lookup(objectType api.ObjectType, handle api.Handle) (wrappers.Object, error) {
	return t.registry.Lookup(objectType, handle)
}

// LookupID returns the live wrapper with the provided id. It fails with api.ErrNotFound if the object
// has been destroyed.
func (t *Tracker) LookupID(id api.HandleID) (wrappers.Object, error) {
	return t.registry.LookupID(id)
}

// IsLive returns true if the object with the provided id has not been destroyed
func (t *Tracker) IsLive(id api.HandleID) bool {
	return t.registry.IsLive(id)
}

// Objects returns every live object of the provided type in creation order
func (t *Tracker) Objects(objectType api.ObjectType) []wrappers.Object {
	return t.registry.Objects(objectType)
}

// Owner returns the id of the object that owns the object with the provided id, or api.NullHandleID
func (t *Tracker) Owner(id api.HandleID) api.HandleID {
	return t.ownership.Parent(id)
}

// Owned returns the ids of the objects owned by the object with the provided id, in creation order
func (t *Tracker) Owned(id api.HandleID) []api.HandleID {
	return t.ownership.Children(id)
}

// Validate verifies that the registry and the ownership graph agree with each other
func (t *Tracker) Validate() error {
	err := t.registry.Validate()
	if err != nil {
		return err
	}

	err = t.ownership.Validate(t.registry.IsLive)
	if err != nil {
		return err
	}

	live := 0
	for objectType := api.ObjectTypeUnknown + 1; objectType < api.ObjectTypeCount; objectType++ {
		live += t.registry.Count(objectType)
	}
	if live != t.ownership.Count() {
		return errors.Newf("%d objects are live but the ownership graph holds %d", live, t.ownership.Count())
	}

	return nil
}

func (t *Tracker) warn(msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.Any("error", err))
	t.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

func lookup[T wrappers.Object](t *Tracker, objectType api.ObjectType, handle api.Handle) (T, error) {
	return registry.LookupAs[T](t.registry, objectType, handle)
}

// ref returns a reference to a live object, or a null reference if handle is not live. It is used to
// probe optional dependencies.
func (t *Tracker) ref(objectType api.ObjectType, handle api.Handle) wrappers.Ref {
	if handle == api.NullHandle {
		return wrappers.Ref{}
	}

	obj, err := t.registry.Lookup(objectType, handle)
	if err != nil {
		return wrappers.Ref{}
	}
	return obj.Base().Ref()
}

// dependency clones a live object, or returns a null Dependency if handle is not live
func (t *Tracker) dependency(objectType api.ObjectType, handle api.Handle) wrappers.Dependency {
	if handle == api.NullHandle {
		return wrappers.Dependency{}
	}

	obj, err := t.registry.Lookup(objectType, handle)
	if err != nil {
		return wrappers.Dependency{}
	}
	return wrappers.AsDependency(obj)
}
