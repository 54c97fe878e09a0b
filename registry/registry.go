package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/capture/internal/utils"
	"github.com/vkngwrapper/capture/wrappers"
	"golang.org/x/exp/slices"
)

// Registry maps the native handles of live objects to their wrappers. Handles are scoped by object
// type, so two objects of different types may share a handle value. Every live wrapper can also be
// found by its HandleID.
type Registry struct {
	mutex utils.OptionalRWMutex

	handles [api.ObjectTypeCount]*swiss.Map[api.Handle, wrappers.Object]
	ids     *swiss.Map[api.HandleID, wrappers.Object]
}

// New creates an empty Registry. If useMutex is false, the caller is responsible for synchronizing
// access.
func New(useMutex bool) *Registry {
	r := &Registry{
		mutex: utils.OptionalRWMutex{UseMutex: useMutex},
		ids:   swiss.NewMap[api.HandleID, wrappers.Object](42),
	}

	for i := range r.handles {
		r.handles[i] = swiss.NewMap[api.Handle, wrappers.Object](8)
	}

	return r
}

func (r *Registry) handleMap(objectType api.ObjectType) (*swiss.Map[api.Handle, wrappers.Object], error) {
	if !objectType.IsValid() {
		return nil, errors.Newf("invalid object type %s", objectType)
	}
	return r.handles[objectType], nil
}

// Register adds a wrapper to the registry. It fails with api.ErrDuplicateCreation if the wrapper's handle
// is already live for its object type, in which case the live wrapper is left in place.
func (r *Registry) Register(obj wrappers.Object) error {
	base := obj.Base()

	handles, err := r.handleMap(base.Type)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing, ok := handles.Get(base.Handle); ok {
		return errors.Wrapf(api.ErrDuplicateCreation, "%s %s is live with id %d", base.Type, base.Handle, existing.Base().ID)
	}
	if r.ids.Has(base.ID) {
		return errors.Wrapf(api.ErrDuplicateCreation, "id %d is already registered", base.ID)
	}

	handles.Put(base.Handle, obj)
	r.ids.Put(base.ID, obj)
	return nil
}

// Unregister removes the live wrapper for a handle and returns it. It fails with api.ErrNotFound if
// the handle is not live.
func (r *Registry) Unregister(objectType api.ObjectType, handle api.Handle) (wrappers.Object, error) {
	handles, err := r.handleMap(objectType)
	if err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	obj, ok := handles.Get(handle)
	if !ok {
		return nil, api.NotFound(objectType, handle)
	}

	handles.Delete(handle)
	r.ids.Delete(obj.Base().ID)
	return obj, nil
}

// Lookup returns the live wrapper for a handle. It fails with api.ErrNotFound if the handle is not live.
func (r *Registry) Lookup(objectType api.ObjectType, handle api.Handle) (wrappers.Object, error) {
	handles, err := r.handleMap(objectType)
	if err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	obj, ok := handles.Get(handle)
	if !ok {
		return nil, api.NotFound(objectType, handle)
	}
	return obj, nil
}

// LookupID returns the live wrapper with the provided id. It fails with api.ErrNotFound if the object
// has been destroyed.
func (r *Registry) LookupID(id api.HandleID) (wrappers.Object, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	obj, ok := r.ids.Get(id)
	if !ok {
		return nil, errors.Wrapf(api.ErrNotFound, "id %d", id)
	}
	return obj, nil
}

// IsLive returns true if the object with the provided id has not been destroyed
func (r *Registry) IsLive(id api.HandleID) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.ids.Has(id)
}

// Count returns the number of live objects of the provided type
func (r *Registry) Count(objectType api.ObjectType) int {
	handles, err := r.handleMap(objectType)
	if err != nil {
		return 0
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return handles.Count()
}

// Objects returns every live object of the provided type in creation order
func (r *Registry) Objects(objectType api.ObjectType) []wrappers.Object {
	handles, err := r.handleMap(objectType)
	if err != nil {
		return nil
	}

	r.mutex.RLock()
	objs := make([]wrappers.Object, 0, handles.Count())
	handles.Iter(func(_ api.Handle, obj wrappers.Object) bool {
		objs = append(objs, obj)
		return false
	})
	r.mutex.RUnlock()

	slices.SortFunc(objs, func(a, b wrappers.Object) int {
		switch aID, bID := a.Base().ID, b.Base().ID; {
		case aID < bID:
			return -1
		case aID > bID:
			return 1
		default:
			return 0
		}
	})
	return objs
}

// Validate verifies that the handle maps and the id index hold the same set of wrappers
func (r *Registry) Validate() error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := 0
	var err error
	for objectType, handles := range r.handles {
		total += handles.Count()
		handles.Iter(func(handle api.Handle, obj wrappers.Object) bool {
			base := obj.Base()
			if base.Type != api.ObjectType(objectType) || base.Handle != handle {
				err = errors.Newf("%s %s is registered as %s %s", base.Type, base.Handle, api.ObjectType(objectType), handle)
				return true
			}
			indexed, ok := r.ids.Get(base.ID)
			if !ok || indexed != obj {
				err = errors.Newf("%s %s is missing from the id index under id %d", base.Type, base.Handle, base.ID)
				return true
			}
			return false
		})
		if err != nil {
			return err
		}
	}

	if total != r.ids.Count() {
		return errors.Newf("the id index holds %d objects but the handle maps hold %d", r.ids.Count(), total)
	}
	return nil
}

// LookupAs returns the live wrapper for a handle as a specific wrapper type. It fails with
// api.ErrNotFound if the handle is not live and api.ErrWrongObjectType if the wrapper has another type.
func LookupAs[T wrappers.Object](r *Registry, objectType api.ObjectType, handle api.Handle) (T, error) {
	var zero T

	obj, err := r.Lookup(objectType, handle)
	if err != nil {
		return zero, err
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, errors.Wrapf(api.ErrWrongObjectType, "%s %s has wrapper type %T", objectType, handle, obj)
	}
	return typed, nil
}

// LookupIDAs returns the live wrapper with the provided id as a specific wrapper type
func LookupIDAs[T wrappers.Object](r *Registry, id api.HandleID) (T, error) {
	var zero T

	obj, err := r.LookupID(id)
	if err != nil {
		return zero, err
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, errors.Wrapf(api.ErrWrongObjectType, "id %d has wrapper type %T", id, obj)
	}
	return typed, nil
}
