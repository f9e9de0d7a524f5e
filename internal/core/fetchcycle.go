package core

// FetchStatus is the lifecycle state of one data source's current fetch.
type FetchStatus string

const (
	FetchIdle    FetchStatus = "idle"
	FetchLoading FetchStatus = "loading"
	FetchSuccess FetchStatus = "success"
	FetchError   FetchStatus = "error"
)

// FetchCycle tracks the request lifecycle for one data source. Generation
// increments on every issued request and is the sole staleness check: a
// result is applied only when its originating generation still matches.
//
// All transitions happen on the single Update thread of the consuming
// program, so no locking is needed.
type FetchCycle[T any] struct {
	Status     FetchStatus
	Data       []T
	ErrMessage string
	Generation int
}

func NewFetchCycle[T any]() FetchCycle[T] {
	return FetchCycle[T]{Status: FetchIdle}
}

// Begin starts a new fetch cycle: it bumps the generation, invalidating any
// in-flight request, and moves to loading before the network call is
// issued. Previously fetched data is kept visible until the new cycle
// resolves. Returns the new generation for the caller to stamp onto its
// result.
func (c *FetchCycle[T]) Begin() int {
	c.Generation++
	c.Status = FetchLoading
	c.ErrMessage = ""
	return c.Generation
}

// Resolve applies a successful result for the given generation. A stale
// generation is silently discarded: no state changes and Resolve reports
// false.
func (c *FetchCycle[T]) Resolve(gen int, data []T) bool {
	if gen != c.Generation {
		return false
	}
	c.Status = FetchSuccess
	c.Data = data
	c.ErrMessage = ""
	return true
}

// Fail records a failed result for the given generation, subject to the
// same staleness check as Resolve. Existing data is left in place so the
// consumer can keep showing the last good collection alongside the error.
func (c *FetchCycle[T]) Fail(gen int, msg string) bool {
	if gen != c.Generation {
		return false
	}
	c.Status = FetchError
	c.ErrMessage = msg
	return true
}

func (c *FetchCycle[T]) Loading() bool {
	return c.Status == FetchLoading
}
