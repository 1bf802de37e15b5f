// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportReportsOnlyVariablesActuallyTested(t *testing.T) {
	m, v := newTestManager(t, "x", "y", "z")
	x, y := v["x"], v["y"]

	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	support, err := m.Support(f)
	require.NoError(t, err)

	assert.True(t, support["x"])
	assert.True(t, support["y"])
	assert.False(t, support["z"])
	assert.Len(t, support, 2)
}

func TestSatcountOverFullVariableSpace(t *testing.T) {
	m, v := newTestManager(t, "x", "y", "z")
	x, y := v["x"], v["y"]

	// x & y depends on 2 of the 3 declared variables: z is free, doubling
	// the count relative to a 2-variable universe.
	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	count, err := m.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), count)

	trueCount, err := m.Satcount(m.True())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(8), trueCount)

	falseCount, err := m.Satcount(m.False())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), falseCount)
}

func TestAllsatSumsBackToOriginal(t *testing.T) {
	m, v := newTestManager(t, "x", "y", "z")
	x, y, z := v["x"], v["y"], v["z"]

	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	f, err = m.Apply(f, z, OPor)
	require.NoError(t, err)

	sum := m.False()
	err = m.Allsat(f, func(assignment map[string]bool) error {
		cube, err := m.Cube(assignment)
		if err != nil {
			return err
		}
		sum, err = m.Apply(sum, cube, OPor)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, f, sum)
}

func TestEnumerateSatForcesTotalAssignmentsOverCare(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	f, err := m.Apply(x, y, OPor)
	require.NoError(t, err)

	var n int
	err = m.EnumerateSat(f, []string{"x", "y"}, func(assignment map[string]bool) error {
		n++
		assert.Len(t, assignment, 2)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n) // x|y has 3 satisfying total assignments over {x,y}
}
