package registry

import (
	"sync/atomic"

	"github.com/vkngwrapper/capture/api"
)

// IDAllocator hands out process-unique HandleIDs. Ids start at 1 and are never reused.
type IDAllocator struct {
	last atomic.Uint64
}

// Allocate returns an id strictly greater than every id previously returned
func (a *IDAllocator) Allocate() api.HandleID {
	return api.HandleID(a.last.Add(1))
}

// Last returns the most recently allocated id, or api.NullHandleID if none has been allocated
func (a *IDAllocator) Last() api.HandleID {
	return api.HandleID(a.last.Load())
}
