// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrefUnderflowIsReported(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	f, err := m.Apply(v["x"], v["y"], OPand)
	require.NoError(t, err)
	_, err = m.Decref(f)
	assert.ErrorIs(t, err, ErrDecrefUnderflow)
}

func TestIncrefDecrefRoundTrip(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]
	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)

	_, err = m.Incref(f)
	require.NoError(t, err)
	_, err = m.Decref(f)
	require.NoError(t, err)

	// A second Decref below zero must fail again.
	_, err = m.Decref(f)
	assert.ErrorIs(t, err, ErrDecrefUnderflow)
}

func TestCollectGarbageReclaimsUnreferencedNodes(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	_, err = m.Incref(f)
	require.NoError(t, err)

	before := m.store.liveCount()

	// Build a second function with no surviving reference, then drop it by
	// going out of scope: nothing retains it, so a sweep should not need it.
	g, err := m.Apply(x, y, OPxor)
	require.NoError(t, err)
	_ = g

	m.CollectGarbage()

	after := m.store.liveCount()
	assert.LessOrEqual(t, after, before+1)

	// f must still decode to the same function after the sweep: a
	// positively-referenced root always survives mark-and-sweep.
	count, err := m.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Int64())
}

func TestCollectGarbageTriggersSiftingWhenReorderingEnabled(t *testing.T) {
	m, err := New(0, Reordering(true))
	require.NoError(t, err)
	xs := make([]Edge, 4)
	ys := make([]Edge, 4)
	for i := 0; i < 4; i++ {
		xs[i], err = m.Declare(varName("x", i))
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		ys[i], err = m.Declare(varName("y", i))
		require.NoError(t, err)
	}
	f := buildInterleavedEquivalence(t, m, xs, ys)
	_, err = m.Incref(f)
	require.NoError(t, err)

	before := m.store.liveCount()
	m.CollectGarbage()
	after := m.store.liveCount()

	assert.LessOrEqual(t, after, before)
	count, err := m.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, "16", count.String())
	assert.False(t, m.Errored())
}
