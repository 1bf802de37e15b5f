// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameSwapsVariableIdentity(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)

	renamed, err := m.Rename(f, map[string]string{"x": "y", "y": "x"})
	require.NoError(t, err)

	// x & y is symmetric under swapping x and y, so the renamed function
	// must be identical to the original.
	assert.Equal(t, f, renamed)
}

func TestRenameProducesDistinctFunctionForAsymmetricFormula(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	f, err := m.Apply(x, y, OPdiff) // x & !y, not symmetric
	require.NoError(t, err)

	renamed, err := m.Rename(f, map[string]string{"x": "y", "y": "x"})
	require.NoError(t, err)

	expected, err := m.Apply(y, x, OPdiff)
	require.NoError(t, err)
	assert.Equal(t, expected, renamed)
	assert.NotEqual(t, f, renamed)
}

func TestRenameAcrossNonAdjacentLevelsViaCorrectify(t *testing.T) {
	m, v := newTestManager(t, "a", "b", "c", "d")
	a, d := v["a"], v["d"]

	f, err := m.Apply(a, d, OPand)
	require.NoError(t, err)

	renamed, err := m.Rename(f, map[string]string{"a": "d", "d": "a"})
	require.NoError(t, err)

	expected, err := m.Apply(d, a, OPand)
	require.NoError(t, err)
	assert.Equal(t, expected, renamed)
}
