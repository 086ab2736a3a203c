// Package view implements the lifecycle every data-bearing page follows:
// Loading then Ready or LoadError for fetched data, and Idle, Submitting,
// then Idle or SubmitError for forms. The machines also enforce the two
// ordering rules the platform depends on: responses for abandoned loads are
// discarded rather than applied, and a form never issues two overlapping
// submissions.
package view

import (
	"sync"

	"github.com/google/uuid"
)

// Phase is the rendering state of a fetched resource.
type Phase int

const (
	// PhaseLoading renders before any fetch resolves. A fresh Begin always
	// returns here so stale data from a previous entity id never shows.
	PhaseLoading Phase = iota
	// PhaseReady holds resolved data.
	PhaseReady
	// PhaseEmpty is a successful fetch with no items, rendered distinctly
	// from an error. Only List resources enter it.
	PhaseEmpty
	// PhaseLoadError is terminal for the view instance; recovery is
	// navigating away and back, never an automatic retry.
	PhaseLoadError
)

// Resource is the fetch lifecycle for one value of type T. Begin issues a
// load token; Resolve and Fail only apply when presented with the current
// token, so a response that arrives after the view moved on is ignored.
type Resource[T any] struct {
	mu     sync.Mutex
	phase  Phase
	value  T
	err    error
	loadID string
}

// NewResource returns a resource in the loading phase with no active load.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{}
}

// Begin starts a new load, returning its token. Any in-flight load is
// abandoned: its eventual Resolve or Fail will be discarded. The previous
// value is dropped so it cannot render under the new load.
func (r *Resource[T]) Begin() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.phase = PhaseLoading
	r.value = zero
	r.err = nil
	r.loadID = uuid.NewString()
	return r.loadID
}

// Resolve applies a fetched value for the load identified by loadID. It
// reports whether the value was applied; false means the load was stale or
// the resource already failed.
func (r *Resource[T]) Resolve(loadID string, value T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loadID != r.loadID || r.phase != PhaseLoading {
		return false
	}
	r.phase = PhaseReady
	r.value = value
	return true
}

// Fail records a load failure for the load identified by loadID.
func (r *Resource[T]) Fail(loadID string, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loadID != r.loadID || r.phase != PhaseLoading {
		return false
	}
	r.phase = PhaseLoadError
	r.err = err
	return true
}

// Phase returns the current rendering phase.
func (r *Resource[T]) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Value returns the resolved value; ok is false outside PhaseReady.
func (r *Resource[T]) Value() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseReady {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the load failure, or nil outside PhaseLoadError.
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseLoadError {
		return nil
	}
	return r.err
}

// List is the fetch lifecycle for a slice of E. It behaves like Resource
// except that an empty successful result lands in PhaseEmpty, which is a
// rendered state of its own, not an error.
type List[E any] struct {
	res Resource[[]E]
}

// NewList returns a list resource in the loading phase.
func NewList[E any]() *List[E] {
	return &List[E]{}
}

// Begin starts a new load, abandoning any in-flight one.
func (l *List[E]) Begin() string { return l.res.Begin() }

// Resolve applies fetched items for the current load, entering PhaseEmpty
// when there are none.
func (l *List[E]) Resolve(loadID string, items []E) bool {
	l.res.mu.Lock()
	defer l.res.mu.Unlock()
	if loadID != l.res.loadID || l.res.phase != PhaseLoading {
		return false
	}
	if len(items) == 0 {
		l.res.phase = PhaseEmpty
		l.res.value = nil
		return true
	}
	l.res.phase = PhaseReady
	l.res.value = items
	return true
}

// Fail records a load failure for the current load.
func (l *List[E]) Fail(loadID string, err error) bool { return l.res.Fail(loadID, err) }

// Phase returns the current rendering phase.
func (l *List[E]) Phase() Phase { return l.res.Phase() }

// Items returns the resolved items; it is nil outside PhaseReady.
func (l *List[E]) Items() []E {
	items, _ := l.res.Value()
	return items
}

// Err returns the load failure, or nil outside PhaseLoadError.
func (l *List[E]) Err() error { return l.res.Err() }
