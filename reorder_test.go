// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildInterleavedEquivalence returns (xs[0]<->ys[0]) & (xs[1]<->ys[1]) & ...,
// the usual "interleaved pairs" BDD-ordering example whose reduced size is
// sensitive to variable order: small when each xs[i] sits next to ys[i],
// large under the grouped order x0,x1,...,y0,y1,.... The order is whatever
// the caller declared.
func buildInterleavedEquivalence(t *testing.T, m *Manager, xs, ys []Edge) Edge {
	t.Helper()
	f := m.True()
	for i := range xs {
		biimp, err := m.Apply(xs[i], ys[i], OPbiimp)
		require.NoError(t, err)
		f, err = m.Apply(f, biimp, OPand)
		require.NoError(t, err)
	}
	return f
}

func TestSwapPreservesFunctionOfUntouchedRoot(t *testing.T) {
	m, v := newTestManager(t, "x", "y", "z")
	x, y, z := v["x"], v["y"], v["z"]

	f, err := m.Apply(x, y, OPand)
	require.NoError(t, err)
	f, err = m.Apply(f, z, OPor)
	require.NoError(t, err)

	before, err := m.Satcount(f)
	require.NoError(t, err)

	require.NoError(t, m.Swap(0))

	after, err := m.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, before.String(), after.String(), "swap must not change the function any existing Edge represents")
}

func TestSwapExchangesVariableOrder(t *testing.T) {
	m, _ := newTestManager(t, "x", "y", "z")
	before0, err := m.VarAt(0)
	require.NoError(t, err)
	before1, err := m.VarAt(1)
	require.NoError(t, err)

	require.NoError(t, m.Swap(0))

	after0, err := m.VarAt(0)
	require.NoError(t, err)
	after1, err := m.VarAt(1)
	require.NoError(t, err)

	assert.Equal(t, before0, after1)
	assert.Equal(t, before1, after0)
}

// TestSwapCrossPairsAsymmetricCofactors builds n = ite(p, b, a) with
// a = ite(q,r,False) and b = ite(q,True,s), where r and s are distinct
// deeper variables. The two crossed cofactors (a's q=1 branch and b's q=0
// branch) differ here, which is exactly the shape under which pairing each
// child with its own two cofactors (instead of crossing a's and b's
// same-polarity cofactors together) silently reconstructs the node
// unchanged and produces the wrong function once the swapped level meaning
// is applied. Exhaustively checks every one of the 16 assignments over
// p,q,r,s against a direct truth-table evaluation, both before and after
// Swap(0).
func TestSwapCrossPairsAsymmetricCofactors(t *testing.T) {
	m, v := newTestManager(t, "p", "q", "r", "s")
	p, q, r, s := v["p"], v["q"], v["r"], v["s"]

	a, err := m.Apply(q, r, OPand) // a = ite(q, r, False) = q & r
	require.NoError(t, err)
	b, err := m.Apply(q, s, OPor) // b = ite(q, True, s) = q | s
	require.NoError(t, err)
	n, err := m.Ite(p, b, a)
	require.NoError(t, err)

	eval := func(pp, qq, rr, ss bool) bool {
		if pp {
			return qq || ss
		}
		return qq && rr
	}

	check := func(label string) {
		for mask := 0; mask < 16; mask++ {
			assignment := map[string]bool{
				"p": mask&1 != 0,
				"q": mask&2 != 0,
				"r": mask&4 != 0,
				"s": mask&8 != 0,
			}
			restricted, err := m.Cube(assignment)
			require.NoError(t, err)
			combined, err := m.Apply(n, restricted, OPand)
			require.NoError(t, err)
			want := eval(assignment["p"], assignment["q"], assignment["r"], assignment["s"])
			assert.Equal(t, want, !combined.IsFalse(), "%s: assignment %v", label, assignment)
		}
	}

	check("before swap")
	require.NoError(t, m.Swap(0))
	check("after swap")
}

// TestVarEdgeStaysCorrectAfterSwap re-fetches both swapped variables via Var
// after a Swap and checks each freshly fetched edge agrees with every
// assignment exactly on its own variable, guarding against the literal-node
// aliasing a swap's recombination can otherwise introduce into the
// manager's cached variable edges (two variables' own projection nodes
// always collide in shape at the swapped levels, since both reduce to the
// same (level,False,True) pattern).
func TestVarEdgeStaysCorrectAfterSwap(t *testing.T) {
	m, _ := newTestManager(t, "p", "q")
	require.NoError(t, m.Swap(0))

	gotP, err := m.Var("p")
	require.NoError(t, err)
	gotQ, err := m.Var("q")
	require.NoError(t, err)

	for mask := 0; mask < 4; mask++ {
		assignment := map[string]bool{"p": mask&1 != 0, "q": mask&2 != 0}
		restricted, err := m.Cube(assignment)
		require.NoError(t, err)

		pRestricted, err := m.Apply(gotP, restricted, OPand)
		require.NoError(t, err)
		assert.Equal(t, assignment["p"], !pRestricted.IsFalse(), "Var(p) after swap, assignment %v", assignment)

		qRestricted, err := m.Apply(gotQ, restricted, OPand)
		require.NoError(t, err)
		assert.Equal(t, assignment["q"], !qRestricted.IsFalse(), "Var(q) after swap, assignment %v", assignment)
	}
}

func TestSiftingDoesNotIncreaseLiveNodeCount(t *testing.T) {
	m, err := New(0)
	require.NoError(t, err)
	const pairs = 6
	xs := make([]Edge, pairs)
	ys := make([]Edge, pairs)
	for i := 0; i < pairs; i++ {
		xs[i], err = m.Declare(varName("x", i))
		require.NoError(t, err)
	}
	for i := 0; i < pairs; i++ {
		ys[i], err = m.Declare(varName("y", i))
		require.NoError(t, err)
	}

	f := buildInterleavedEquivalence(t, m, xs, ys)
	before := m.store.liveCount()

	require.NoError(t, m.ReorderBySifting())

	after := m.store.liveCount()
	assert.LessOrEqual(t, after, before)

	count, err := m.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, "64", count.String()) // 2^6 assignments satisfy x_i<->y_i pairwise... one per pair choice
}

func varName(prefix string, i int) string {
	return prefix + string(rune('0'+i))
}

func TestReorderAppliesExplicitTargetOrder(t *testing.T) {
	m, _ := newTestManager(t, "x", "y", "z")
	target := map[string]int32{"z": 0, "y": 1, "x": 2}
	require.NoError(t, m.Reorder(target))

	for name, lvl := range target {
		got, err := m.LevelOf(name)
		require.NoError(t, err)
		assert.Equal(t, lvl, got)
	}
}

func TestReorderRejectsNonBijectiveTarget(t *testing.T) {
	m, _ := newTestManager(t, "x", "y", "z")
	err := m.Reorder(map[string]int32{"x": 0, "y": 0, "z": 2})
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestReorderPairsAdjacentBringsPairsTogether(t *testing.T) {
	m, _ := newTestManager(t, "a", "x", "b", "y")
	require.NoError(t, m.ReorderPairsAdjacent([][2]string{{"a", "y"}, {"x", "b"}}))

	la, err := m.LevelOf("a")
	require.NoError(t, err)
	ly, err := m.LevelOf("y")
	require.NoError(t, err)
	assert.Equal(t, int32(1), abs32(la-ly))

	lx, err := m.LevelOf("x")
	require.NoError(t, err)
	lb, err := m.LevelOf("b")
	require.NoError(t, err)
	assert.Equal(t, int32(1), abs32(lx-lb))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
