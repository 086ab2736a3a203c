package view_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliostudio/studio.go/view"
)

func TestResourceLifecycle(t *testing.T) {
	r := view.NewResource[string]()
	assert.Equal(t, view.PhaseLoading, r.Phase())

	loadID := r.Begin()
	require.True(t, r.Resolve(loadID, "hello"))

	assert.Equal(t, view.PhaseReady, r.Phase())
	value, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "hello", value)
	assert.NoError(t, r.Err())
}

func TestResourceDiscardsStaleResponse(t *testing.T) {
	r := view.NewResource[string]()

	first := r.Begin()
	second := r.Begin()

	// The first load's response arrives after a newer load began; it must
	// not render.
	assert.False(t, r.Resolve(first, "stale"))
	assert.Equal(t, view.PhaseLoading, r.Phase())

	require.True(t, r.Resolve(second, "fresh"))
	value, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "fresh", value)
}

func TestResourceDiscardsStaleFailure(t *testing.T) {
	r := view.NewResource[int]()

	first := r.Begin()
	second := r.Begin()

	assert.False(t, r.Fail(first, errors.New("timeout")))
	require.True(t, r.Resolve(second, 7))
	assert.Equal(t, view.PhaseReady, r.Phase())
}

func TestResourceBeginDropsPreviousValue(t *testing.T) {
	r := view.NewResource[string]()
	loadID := r.Begin()
	require.True(t, r.Resolve(loadID, "old entity"))

	r.Begin()

	assert.Equal(t, view.PhaseLoading, r.Phase())
	_, ok := r.Value()
	assert.False(t, ok)
}

func TestResourceLoadErrorIsTerminal(t *testing.T) {
	r := view.NewResource[string]()
	loadID := r.Begin()

	boom := errors.New("backend down")
	require.True(t, r.Fail(loadID, boom))
	assert.Equal(t, view.PhaseLoadError, r.Phase())
	assert.ErrorIs(t, r.Err(), boom)

	// A late success for the same load changes nothing.
	assert.False(t, r.Resolve(loadID, "too late"))
	assert.Equal(t, view.PhaseLoadError, r.Phase())
}

func TestResourceDoubleResolveIgnored(t *testing.T) {
	r := view.NewResource[int]()
	loadID := r.Begin()
	require.True(t, r.Resolve(loadID, 1))
	assert.False(t, r.Resolve(loadID, 2))

	value, _ := r.Value()
	assert.Equal(t, 1, value)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	l := view.NewList[string]()
	loadID := l.Begin()

	require.True(t, l.Resolve(loadID, nil))
	assert.Equal(t, view.PhaseEmpty, l.Phase())
	assert.Nil(t, l.Items())
	assert.NoError(t, l.Err())
}

func TestListResolveAndStaleDiscard(t *testing.T) {
	l := view.NewList[int]()

	first := l.Begin()
	second := l.Begin()

	assert.False(t, l.Resolve(first, []int{1, 2}))
	require.True(t, l.Resolve(second, []int{3}))
	assert.Equal(t, []int{3}, l.Items())
}

func TestFormSerializesSubmissions(t *testing.T) {
	f := view.NewForm()
	assert.Equal(t, view.FormIdle, f.State())

	require.True(t, f.Begin())
	assert.False(t, f.Begin(), "second submit while in flight must be refused")

	f.Succeed()
	assert.Equal(t, view.FormIdle, f.State())
	require.True(t, f.Begin(), "a resolved form accepts a new submission")
}

func TestFormFailureHoldsMessageUntilResubmit(t *testing.T) {
	f := view.NewForm()
	require.True(t, f.Begin())
	f.Fail("Invalid credentials")

	assert.Equal(t, view.FormSubmitError, f.State())
	assert.Equal(t, "Invalid credentials", f.Error())

	// Retry is a manual re-submit; Begin clears the error.
	require.True(t, f.Begin())
	assert.Empty(t, f.Error())
}

func TestFormIgnoresResolutionWhenIdle(t *testing.T) {
	f := view.NewForm()
	f.Succeed()
	f.Fail("nope")
	assert.Equal(t, view.FormIdle, f.State())
	assert.Empty(t, f.Error())
}
