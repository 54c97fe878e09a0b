package api

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SignalSource describes which kind of operation will signal a semaphore. The API has no way to query
// this, so it is derived from the submissions that use the semaphore.
type SignalSource int32

const (
	// SignalSourceNone indicates the semaphore has no pending signal
	SignalSourceNone SignalSource = iota
	// SignalSourceQueue indicates the semaphore will be signaled by a queue operation
	SignalSourceQueue
	// SignalSourceAcquireImage indicates the semaphore will be signaled by a swapchain image acquire
	SignalSourceAcquireImage
)

var signalSourceMapping = map[SignalSource]string{
	SignalSourceNone:         "SignalSourceNone",
	SignalSourceQueue:        "SignalSourceQueue",
	SignalSourceAcquireImage: "SignalSourceAcquireImage",
}

func (s SignalSource) String() string {
	str, ok := signalSourceMapping[s]
	if !ok {
		return fmt.Sprintf("SignalSource(%d)", int32(s))
	}
	return str
}

type CreateFenceArgs struct {
	Device   Handle
	Fence    Handle
	Signaled bool
}

func (a CreateFenceArgs) Clone() Args {
	return a
}

// FencesArgs carries vkResetFences, or a vkWaitForFences/vkGetFenceStatus call that observed the
// fences as signaled
type FencesArgs struct {
	Device Handle
	Fences []Handle
}

func (a FencesArgs) Clone() Args {
	a.Fences = cloneHandles(a.Fences)
	return a
}

type SubmitInfo struct {
	WaitSemaphores   []Handle
	CommandBuffers   []Handle
	SignalSemaphores []Handle
}

type QueueSubmitArgs struct {
	Queue   Handle
	Submits []SubmitInfo
	Fence   Handle
}

type BindSparseInfo struct {
	WaitSemaphores   []Handle
	SignalSemaphores []Handle
}

type QueueBindSparseArgs struct {
	Queue Handle
	Binds []BindSparseInfo
	Fence Handle
}

// SignalSemaphoreArgs restores the pending signal state of a semaphore in a snapshot
type SignalSemaphoreArgs struct {
	Device    Handle
	Semaphore Handle
	Source    SignalSource
}

func (a SignalSemaphoreArgs) Clone() Args {
	return a
}

func cloneSubmits(submits []SubmitInfo) []SubmitInfo {
	if submits == nil {
		return nil
	}
	cloned := make([]SubmitInfo, len(submits))
	for i, submit := range submits {
		cloned[i] = SubmitInfo{
			WaitSemaphores:   slices.Clone(submit.WaitSemaphores),
			CommandBuffers:   slices.Clone(submit.CommandBuffers),
			SignalSemaphores: slices.Clone(submit.SignalSemaphores),
		}
	}
	return cloned
}

// Clone is provided so submissions can be retained by consumers that log them
func (a QueueSubmitArgs) Clone() QueueSubmitArgs {
	a.Submits = cloneSubmits(a.Submits)
	return a
}
