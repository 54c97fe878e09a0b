package wrappers

import "github.com/vkngwrapper/capture/api"

// Object is implemented by every wrapper. Base returns the state shared by all wrappers, and Dependencies
// returns clones of the objects that must exist for the object's creation call to be replayed.
type Object interface {
	Base() *Wrapper
	Dependencies() []Dependency
}

// Wrapper is the shadow state record of one live object. Objects whose only tracked state is their
// creation parameters, such as samplers and shader modules, are tracked with a bare *Wrapper.
type Wrapper struct {
	Type   api.ObjectType
	Handle api.Handle
	ID     api.HandleID
	// Parent is the dispatchable object the creation call was issued on. Ownership is tracked separately.
	Parent api.Handle

	CreateCall   api.CallID
	CreateParams api.Args
}

func (w *Wrapper) Base() *Wrapper {
	return w
}

func (w *Wrapper) Dependencies() []Dependency {
	return nil
}

// Ref returns a non-owning reference to the wrapper
func (w *Wrapper) Ref() Ref {
	return Ref{Handle: w.Handle, ID: w.ID}
}

// Ref is a non-owning reference to another object. The ID identifies the specific object even after
// its handle value has been reused.
type Ref struct {
	Handle api.Handle
	ID     api.HandleID
}

func (r Ref) IsNull() bool {
	return r.ID == api.NullHandleID
}

// Dependency is a copy of the identity and creation parameters of an object that another object was
// created from. It is taken when the dependent object is created so that the dependency can be recreated
// after it has been destroyed.
type Dependency struct {
	Type   api.ObjectType
	Handle api.Handle
	ID     api.HandleID
	Parent api.Handle

	CreateCall   api.CallID
	CreateParams api.Args

	Dependencies []Dependency
}

func (d Dependency) IsNull() bool {
	return d.ID == api.NullHandleID
}

func (d Dependency) Ref() Ref {
	return Ref{Handle: d.Handle, ID: d.ID}
}

// AsDependency clones obj, along with its own dependencies. A nil obj produces a null Dependency.
func AsDependency(obj Object) Dependency {
	if obj == nil {
		return Dependency{}
	}

	base := obj.Base()
	return Dependency{
		Type:         base.Type,
		Handle:       base.Handle,
		ID:           base.ID,
		Parent:       base.Parent,
		CreateCall:   base.CreateCall,
		CreateParams: base.CreateParams,
		Dependencies: obj.Dependencies(),
	}
}
