package api

import "golang.org/x/exp/slices"

// Args is the argument set of a tracked call. Wrappers keep a Clone of the arguments of the call that
// created them, so Clone must produce a copy that shares no mutable memory with the receiver.
type Args interface {
	Clone() Args
}

// ObjectRef names an object by category and native handle
type ObjectRef struct {
	Type   ObjectType
	Handle Handle
}

// CreateObjectArgs creates an object whose only tracked state is its creation parameters, such as
// samplers, pipeline caches, shader modules, semaphores, events and surfaces. Info holds the encoded
// create info and is opaque to the tracker.
type CreateObjectArgs struct {
	Type   ObjectType
	Parent Handle
	Object Handle
	Info   []byte
}

func (a CreateObjectArgs) Clone() Args {
	a.Info = slices.Clone(a.Info)
	return a
}

// DestroyObjectArgs destroys a single object. It is also emitted by snapshots to remove temporary
// objects recreated for orphan adoption.
type DestroyObjectArgs struct {
	Type   ObjectType
	Parent Handle
	Object Handle
}

func (a DestroyObjectArgs) Clone() Args {
	return a
}

// ResetPoolArgs resets a descriptor pool or command pool, releasing every object allocated from it
type ResetPoolArgs struct {
	Type   ObjectType
	Device Handle
	Pool   Handle
}

func (a ResetPoolArgs) Clone() Args {
	return a
}

func cloneHandles(handles []Handle) []Handle {
	return slices.Clone(handles)
}
