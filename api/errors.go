package api

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound is returned when a handle or identifier does not map to a live tracked object.
	// Callers probing an optional dependency may ignore it; callers handling a handle the application
	// passed to a call that requires a live object should treat it as a broken call stream.
	ErrNotFound error = errors.New("object not found")
	// ErrDuplicateCreation is returned when an object is created with a handle that is already live in
	// its category. The live object is left untouched.
	ErrDuplicateCreation error = errors.New("object handle is already live")
	// ErrInconsistentSignal is returned when a semaphore is signaled while a previous signal has not been
	// consumed. The existing signal state is kept and tracking continues.
	ErrInconsistentSignal error = errors.New("semaphore signaled while a signal is already pending")
	// ErrAlreadyBound is returned when a buffer or image is bound to memory more than once
	ErrAlreadyBound error = errors.New("resource is already bound to memory")
	// ErrWrongObjectType is returned when a tracked object is found but is not of the expected wrapper type
	ErrWrongObjectType error = errors.New("object has an unexpected type")
)

// IsNotFound returns true if err is, or wraps, ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NotFound builds an ErrNotFound for the provided object
func NotFound(objectType ObjectType, handle Handle) error {
	return errors.Wrapf(ErrNotFound, "%s %s", objectType, handle)
}
