// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// milnerCyclers builds the transition system for Milner's N-cycler example
// (each process cycles through critical/trying/home), the same system the
// teacher's milner_test.go uses to stress its state-space search. We rebuild
// it here over named current/next variable pairs to exercise Reachable.
func milnerCyclers(t *testing.T, n int) (m *Manager, initial, transition Edge, current []string, nextToCurrent map[string]string) {
	t.Helper()
	var err error
	m, err = New(0)
	require.NoError(t, err)

	c := make([]Edge, n)
	cp := make([]Edge, n)
	tt := make([]Edge, n)
	ttp := make([]Edge, n)
	h := make([]Edge, n)
	hp := make([]Edge, n)
	current = make([]string, 0, 3*n)
	nextToCurrent = make(map[string]string, 3*n)

	declare := func(name string) Edge {
		e, err := m.Declare(name)
		require.NoError(t, err)
		return e
	}
	for i := 0; i < n; i++ {
		cn, ccur := fmt.Sprintf("c%d'", i), fmt.Sprintf("c%d", i)
		tn, tcur := fmt.Sprintf("t%d'", i), fmt.Sprintf("t%d", i)
		hn, hcur := fmt.Sprintf("h%d'", i), fmt.Sprintf("h%d", i)
		c[i] = declare(ccur)
		tt[i] = declare(tcur)
		h[i] = declare(hcur)
		cp[i] = declare(cn)
		ttp[i] = declare(tn)
		hp[i] = declare(hn)
		current = append(current, ccur, tcur, hcur)
		nextToCurrent[cn] = ccur
		nextToCurrent[tn] = tcur
		nextToCurrent[hn] = hcur
	}

	and := func(es ...Edge) Edge {
		res := m.True()
		for _, e := range es {
			var err error
			res, err = m.Apply(res, e, OPand)
			require.NoError(t, err)
		}
		return res
	}
	not := func(e Edge) Edge {
		r, err := m.Not(e)
		require.NoError(t, err)
		return r
	}
	or := func(a, b Edge) Edge {
		r, err := m.Apply(a, b, OPor)
		require.NoError(t, err)
		return r
	}
	equiv := func(a, b Edge) Edge {
		r, err := m.Apply(a, b, OPbiimp)
		require.NoError(t, err)
		return r
	}

	// equivExcept builds the conjunction of x[k]<->y[k] for every k other than
	// skip (skip < 0 compares every index, i.e. full equivalence).
	equivExcept := func(x, y []Edge, skip int) Edge {
		res := m.True()
		for i := 0; i < n; i++ {
			if i == skip {
				continue
			}
			res = and(res, equiv(x[i], y[i]))
		}
		return res
	}

	initial = and(c[0], not(h[0]), not(tt[0]))
	for i := 1; i < n; i++ {
		initial = and(initial, not(c[i]), not(h[i]), not(tt[i]))
	}

	transition = m.False()
	for i := 0; i < n; i++ {
		p1 := and(c[i], not(cp[i]), ttp[i], not(tt[i]), hp[i],
			equivExcept(c, cp, i), equivExcept(tt, ttp, i), equivExcept(h, hp, i))
		p2 := and(h[i], not(hp[i]), cp[(i+1)%n],
			equivExcept(c, cp, (i+1)%n), equivExcept(h, hp, i), equivExcept(tt, ttp, -1))
		e := and(tt[i], not(ttp[i]),
			equivExcept(tt, ttp, i), equivExcept(h, hp, -1), equivExcept(c, cp, -1))
		transition = or(transition, or(p1, or(p2, e)))
	}
	return m, initial, transition, current, nextToCurrent
}

func TestReachableMatchesMilnerClosedForm(t *testing.T) {
	for _, n := range []int{3, 4, 5} {
		m, initial, transition, current, nextToCurrent := milnerCyclers(t, n)
		r, err := m.Reachable(initial, transition, current, nextToCurrent)
		require.NoError(t, err)

		count, err := m.Satcount(r)
		require.NoError(t, err)

		expected := big.NewInt(int64(n))
		pow := new(big.Int)
		pow.SetBit(pow, 4*n+1, 1)
		expected.Mul(expected, pow)

		assert.Equal(t, expected.String(), count.String(), "Reachable(%d)", n)
	}
}
