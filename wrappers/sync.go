package wrappers

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/capture/api"
	"github.com/vkngwrapper/core/v2/core1_0"
)

type Semaphore struct {
	Wrapper
	Device api.Handle

	Signaled api.SignalSource
}

// Signal marks the semaphore as pending a signal from source. A semaphore that is already pending a
// signal keeps its existing state and an ErrInconsistentSignal is returned.
func (s *Semaphore) Signal(source api.SignalSource) error {
	if s.Signaled != api.SignalSourceNone {
		return errors.Wrapf(api.ErrInconsistentSignal, "semaphore %s already pending signal from %s", s.Handle, s.Signaled)
	}

	s.Signaled = source
	return nil
}

// Wait consumes the pending signal of the semaphore
func (s *Semaphore) Wait() {
	s.Signaled = api.SignalSourceNone
}

type Fence struct {
	Wrapper
	Device api.Handle

	CreatedSignaled bool
	Signaled        bool
}

type Event struct {
	Wrapper
	Device api.Handle
}

type QueryPool struct {
	Wrapper
	Device api.Handle

	QueryType  core1_0.QueryType
	QueryCount int
	// PendingQueries is indexed by query and holds the state of every query applied by submitted
	// command buffers
	PendingQueries []api.QueryInfo
}

// SetQuery applies the state of a single query. Queries outside the pool are ignored.
func (p *QueryPool) SetQuery(query int, info api.QueryInfo) {
	if query < 0 || query >= len(p.PendingQueries) {
		return
	}
	p.PendingQueries[query] = info
}

// HasActiveQueries returns true if any query has pending results
func (p *QueryPool) HasActiveQueries() bool {
	for _, info := range p.PendingQueries {
		if info.Active {
			return true
		}
	}
	return false
}
