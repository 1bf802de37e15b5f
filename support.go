// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"math/big"
)

// Makeset returns the cube (conjunction) of the positive literals for the
// variables named in vars, built with Cube. It is the building block for
// Exist/Forall/AppEx variable sets; it is such that
// Scanset(Makeset(vars)) reorders back to vars. Returns True (the empty
// cube) if vars is empty.
func (m *Manager) Makeset(vars []string) (Edge, error) {
	assignment := make(map[string]bool, len(vars))
	for _, v := range vars {
		assignment[v] = true
	}
	return m.Cube(assignment)
}

// Scanset returns the names of the variables appearing in a cube built by
// Makeset, in level order. It is the dual of Makeset.
func (m *Manager) Scanset(cube Edge) ([]string, error) {
	if !m.store.valid(cube) {
		return nil, m.seterror(ErrInvalidEdge)
	}
	res := []string{}
	for n := cube; !n.IsTerminal(); n = m.store.high(n) {
		lvl := m.store.level(n)
		if int(lvl) >= len(m.level2var) {
			return nil, m.seterrorf("corrupted cube: level %d has no variable", lvl)
		}
		res = append(res, m.varnames[m.level2var[lvl]])
	}
	return res, nil
}

// Support returns the set of variable names that e actually depends on,
// i.e. appear on some node of the sub-DAG rooted at e.
func (m *Manager) Support(e Edge) (map[string]bool, error) {
	if !m.store.valid(e) {
		return nil, m.seterror(ErrInvalidEdge)
	}
	seen := make(map[uint32]bool)
	levels := make(map[int32]bool)
	m.support(e, seen, levels)
	res := make(map[string]bool, len(levels))
	for lvl := range levels {
		res[m.varnames[m.level2var[lvl]]] = true
	}
	return res, nil
}

func (m *Manager) support(e Edge, seen map[uint32]bool, levels map[int32]bool) {
	if e.IsTerminal() || seen[e.id] {
		return
	}
	seen[e.id] = true
	levels[m.store.level(e)] = true
	m.support(m.store.low(e), seen, levels)
	m.support(m.store.high(e), seen, levels)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by e, over all declared variables (not just the ones e
// depends on), using arbitrary-precision arithmetic to avoid overflow.
func (m *Manager) Satcount(e Edge) (*big.Int, error) {
	if !m.store.valid(e) {
		return big.NewInt(0), m.seterror(ErrInvalidEdge)
	}
	memo := make(map[Edge]*big.Int)
	res := new(big.Int).Set(m.satcount(e, memo))
	scale := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOrVarnum(e)))
	return res.Mul(res, scale), nil
}

func (m *Manager) satcount(e Edge, memo map[Edge]*big.Int) *big.Int {
	if e.IsFalse() {
		return big.NewInt(0)
	}
	if e.IsTrue() {
		return big.NewInt(1)
	}
	if res, ok := memo[e]; ok {
		return res
	}
	lvl := m.store.level(e)
	low := m.store.low(e)
	high := m.store.high(e)
	res := big.NewInt(0)
	scaleLow := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOrVarnum(low)-lvl-1))
	res.Add(res, scaleLow.Mul(scaleLow, m.satcount(low, memo)))
	scaleHigh := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOrVarnum(high)-lvl-1))
	res.Add(res, scaleHigh.Mul(scaleHigh, m.satcount(high, memo)))
	memo[e] = res
	return res
}

// levelOrVarnum returns e's level, or the total number of variables when e
// is a terminal edge (its sentinel level would otherwise overflow the scale
// computation in satcount).
func (m *Manager) levelOrVarnum(e Edge) int32 {
	if e.IsTerminal() {
		return int32(len(m.varnames))
	}
	return m.store.level(e)
}

// Allsat iterates through every satisfying assignment of e, calling f with a
// map from variable name to truth value. Variables that do not constrain the
// result along a given branch (don't-cares) are omitted from the map; this
// mirrors the teacher's Allsat in operations.go, generalized to name-keyed
// partial assignments instead of a position-indexed []int profile.
func (m *Manager) Allsat(e Edge, f func(map[string]bool) error) error {
	if !m.store.valid(e) {
		return m.seterror(ErrInvalidEdge)
	}
	prof := make([]int32, len(m.level2var))
	for k := range prof {
		prof[k] = -1
	}
	return m.allsat(e, prof, f)
}

func (m *Manager) allsat(n Edge, prof []int32, f func(map[string]bool) error) error {
	if n.IsTrue() {
		return f(m.profileToAssignment(prof))
	}
	if n.IsFalse() {
		return nil
	}
	lvl := m.store.level(n)
	if low := m.store.low(n); !low.IsFalse() {
		prof[lvl] = 0
		for v := m.levelOrVarnum(low) - 1; v > lvl; v-- {
			prof[v] = -1
		}
		if err := m.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := m.store.high(n); !high.IsFalse() {
		prof[lvl] = 1
		for v := m.levelOrVarnum(high) - 1; v > lvl; v-- {
			prof[v] = -1
		}
		if err := m.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) profileToAssignment(prof []int32) map[string]bool {
	res := make(map[string]bool)
	for lvl, v := range prof {
		if v < 0 {
			continue
		}
		res[m.varnames[m.level2var[lvl]]] = v == 1
	}
	return res
}

// EnumerateSat is the care-set driven counterpart to Allsat: instead of
// leaving variables outside e's support as don't-cares, it forces an
// explicit branch over every variable named in care, so the caller always
// receives a total assignment over care. This has no teacher counterpart —
// Allsat's partial-assignment style is the only enumeration mode in the
// teacher — and is grounded directly on the enumeration semantics described
// for sat-enumeration.
func (m *Manager) EnumerateSat(e Edge, care []string, f func(map[string]bool) error) error {
	if !m.store.valid(e) {
		return m.seterror(ErrInvalidEdge)
	}
	assignment := make(map[string]bool, len(care))
	return m.enumerateSat(e, care, assignment, f)
}

func (m *Manager) enumerateSat(e Edge, remaining []string, assignment map[string]bool, f func(map[string]bool) error) error {
	if len(remaining) == 0 {
		if e.IsFalse() {
			return nil
		}
		out := make(map[string]bool, len(assignment))
		for k, v := range assignment {
			out[k] = v
		}
		return f(out)
	}
	name := remaining[0]
	rest := remaining[1:]
	for _, val := range []bool{false, true} {
		restricted, err := m.Cofactor(e, name, val)
		if err != nil {
			return fmt.Errorf("enumerate sat: %w", err)
		}
		assignment[name] = val
		if err := m.enumerateSat(restricted, rest, assignment, f); err != nil {
			delete(assignment, name)
			return err
		}
	}
	delete(assignment, name)
	return nil
}
