// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAndMatchesApply(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	hx, err := m.Hold(x)
	require.NoError(t, err)
	defer hx.Release()
	hy, err := m.Hold(y)
	require.NoError(t, err)
	defer hy.Release()

	hand, err := hx.And(hy)
	require.NoError(t, err)
	defer hand.Release()

	want, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	assert.Equal(t, want, hand.Edge())
}

func TestHandleNotFlipsComplementBit(t *testing.T) {
	m, v := newTestManager(t, "x")
	x := v["x"]
	hx, err := m.Hold(x)
	require.NoError(t, err)
	defer hx.Release()

	hn, err := hx.Not()
	require.NoError(t, err)
	defer hn.Release()

	want, err := m.Not(x)
	require.NoError(t, err)
	assert.True(t, hn.Equal(Handle{m: m, e: want}))
}

func TestHandleReleaseDropsReference(t *testing.T) {
	// Declared variable nodes are pinned at _MAXREFCOUNT (manager.go declare)
	// so Incref/Decref on them never actually move the counter; use a derived
	// edge instead, whose refcount starts at zero like any computed result.
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]
	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)

	h, err := m.Hold(f)
	require.NoError(t, err)

	require.NoError(t, h.Release())
	// A second release would underflow: Handle's contract is exactly-once
	// Release, matching Incref/Decref's own underflow reporting.
	err = h.Release()
	assert.ErrorIs(t, err, ErrDecrefUnderflow)
}

func TestAndAllFoldsOverEmptyIsTrue(t *testing.T) {
	m, _ := newTestManager(t, "x")
	h, err := AndAll(m)
	require.NoError(t, err)
	defer h.Release()
	assert.True(t, h.Edge().IsTrue())
}

func TestOrAllFoldsOverEmptyIsFalse(t *testing.T) {
	m, _ := newTestManager(t, "x")
	h, err := OrAll(m)
	require.NoError(t, err)
	defer h.Release()
	assert.True(t, h.Edge().IsFalse())
}

func TestAndAllMatchesSequentialApply(t *testing.T) {
	m, v := newTestManager(t, "x", "y", "z")
	x, y, z := v["x"], v["y"], v["z"]

	hx, err := m.Hold(x)
	require.NoError(t, err)
	defer hx.Release()
	hy, err := m.Hold(y)
	require.NoError(t, err)
	defer hy.Release()
	hz, err := m.Hold(z)
	require.NoError(t, err)
	defer hz.Release()

	folded, err := AndAll(m, hx, hy, hz)
	require.NoError(t, err)
	defer folded.Release()

	expected, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	expected, err = m.Apply(expected, z, OPand)
	require.NoError(t, err)

	assert.Equal(t, expected, folded.Edge())
}
