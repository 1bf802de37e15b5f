// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, names ...string) (*Manager, map[string]Edge) {
	t.Helper()
	m, err := New(0)
	require.NoError(t, err)
	vars := make(map[string]Edge, len(names))
	for _, n := range names {
		e, err := m.Declare(n)
		require.NoError(t, err)
		vars[n] = e
	}
	return m, vars
}

func TestNotIsItsOwnInverse(t *testing.T) {
	m, v := newTestManager(t, "x")
	x := v["x"]
	nx, err := m.Not(x)
	require.NoError(t, err)
	nnx, err := m.Not(nx)
	require.NoError(t, err)
	assert.Equal(t, x, nnx)
}

func TestNotDoesNotTouchHighEdge(t *testing.T) {
	// The complement bit is only ever allowed on a low edge (edge.go); Not
	// must still behave correctly for a variable literal, whose own low edge
	// carries the bit after negation.
	m, v := newTestManager(t, "x")
	x := v["x"]
	nx, err := m.Not(x)
	require.NoError(t, err)
	assert.True(t, nx.neg != x.neg)
	assert.Equal(t, x.id, nx.id)
}

func TestApplyTruthTableAnd(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]
	and, err := m.Apply(x, y, OPand)
	require.NoError(t, err)

	for _, tc := range []struct {
		xv, yv, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	} {
		restricted, err := m.Cofactor(and, "x", tc.xv)
		require.NoError(t, err)
		restricted, err = m.Cofactor(restricted, "y", tc.yv)
		require.NoError(t, err)
		if tc.want {
			assert.True(t, restricted.IsTrue(), "and(%v,%v)", tc.xv, tc.yv)
		} else {
			assert.True(t, restricted.IsFalse(), "and(%v,%v)", tc.xv, tc.yv)
		}
	}
}

func TestDeMorgan(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	nx, err := m.Not(x)
	require.NoError(t, err)
	ny, err := m.Not(y)
	require.NoError(t, err)

	// !(x & y) == !x | !y
	and, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	lhs, err := m.Not(and)
	require.NoError(t, err)
	rhs, err := m.Apply(nx, ny, OPor)
	require.NoError(t, err)
	assert.Equal(t, lhs, rhs)

	// !(x | y) == !x & !y
	or, err := m.Apply(x, y, OPor)
	require.NoError(t, err)
	lhs2, err := m.Not(or)
	require.NoError(t, err)
	rhs2, err := m.Apply(nx, ny, OPand)
	require.NoError(t, err)
	assert.Equal(t, lhs2, rhs2)
}

func TestApplyIdempotent(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]
	f, err := m.Apply(x, y, OPxor)
	require.NoError(t, err)

	same, err := m.Apply(f, f, OPand)
	require.NoError(t, err)
	assert.Equal(t, f, same)

	same2, err := m.Apply(f, f, OPor)
	require.NoError(t, err)
	assert.Equal(t, f, same2)
}

func TestCanonicityStructurallyEqualFormulasShareAnEdge(t *testing.T) {
	m, v := newTestManager(t, "x", "y")
	x, y := v["x"], v["y"]

	a, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	b, err := m.Apply(y, x, OPand)
	require.NoError(t, err)
	// commutative operator, same variable order: both builds must land on
	// the identical (id,neg) pair, not merely an equivalent function.
	assert.Equal(t, a, b)
}

func TestIteMatchesOrAndDefinition(t *testing.T) {
	m, v := newTestManager(t, "f", "g", "h")
	f, g, h := v["f"], v["g"], v["h"]

	ite, err := m.Ite(f, g, h)
	require.NoError(t, err)

	nf, err := m.Not(f)
	require.NoError(t, err)
	left, err := m.Apply(f, g, OPand)
	require.NoError(t, err)
	right, err := m.Apply(nf, h, OPand)
	require.NoError(t, err)
	expected, err := m.Apply(left, right, OPor)
	require.NoError(t, err)

	assert.Equal(t, expected, ite)
}
