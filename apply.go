// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import "log"

// Not returns the negation of e. Because every edge carries a complement
// bit, negation never touches the node store: it is the O(1) bit flip
// described in the component design for the operator kernel, unlike the
// teacher's recursive not() in operations.go which has to rebuild the whole
// sub-DAG since its Node representation has no complement bit.
func (m *Manager) Not(e Edge) (Edge, error) {
	if !m.store.valid(e) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	return e.Not(), nil
}

// Apply performs one of the basic binary BDD operations (see Operator) on
// n1 and n2.
func (m *Manager) Apply(n1, n2 Edge, op Operator) (Edge, error) {
	if op > OPinvimp {
		return Edge{}, m.seterrorf("unauthorized operation (%s) in apply", op)
	}
	if !m.store.valid(n1) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	if !m.store.valid(n2) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	m.applycache.op = op
	m.initref()
	m.pushref(n1)
	m.pushref(n2)
	res, err := m.apply(n1, n2)
	m.popref(2)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) apply(left, right Edge) (Edge, error) {
	op := m.applycache.op
	switch op {
	case OPand:
		if left == right {
			return left, nil
		}
		if left.IsFalse() || right.IsFalse() {
			return bddfalse, nil
		}
		if left.IsTrue() {
			return right, nil
		}
		if right.IsTrue() {
			return left, nil
		}
	case OPor:
		if left == right {
			return left, nil
		}
		if left.IsTrue() || right.IsTrue() {
			return bddtrue, nil
		}
		if left.IsFalse() {
			return right, nil
		}
		if right.IsFalse() {
			return left, nil
		}
	case OPxor:
		if left == right {
			return bddfalse, nil
		}
		if left.IsFalse() {
			return right, nil
		}
		if right.IsFalse() {
			return left, nil
		}
	case OPnand:
		if left.IsFalse() || right.IsFalse() {
			return bddtrue, nil
		}
	case OPnor:
		if left.IsTrue() || right.IsTrue() {
			return bddfalse, nil
		}
	case OPimp:
		if left.IsFalse() {
			return bddtrue, nil
		}
		if left.IsTrue() {
			return right, nil
		}
		if right.IsTrue() || left == right {
			return bddtrue, nil
		}
	case OPbiimp:
		if left == right {
			return bddtrue, nil
		}
		if left.IsTrue() {
			return right, nil
		}
		if right.IsTrue() {
			return left, nil
		}
	case OPdiff:
		if left == right {
			return bddfalse, nil
		}
		if right.IsTrue() {
			return bddfalse, nil
		}
		if left.IsFalse() {
			return bddfalse, nil
		}
	case OPless:
		if left == right || left.IsTrue() {
			return bddfalse, nil
		}
		if left.IsFalse() {
			return right, nil
		}
	case OPinvimp:
		if right.IsFalse() {
			return bddtrue, nil
		}
		if right.IsTrue() {
			return left, nil
		}
		if left.IsTrue() || left == right {
			return bddtrue, nil
		}
	default:
		return Edge{}, m.seterrorf("unauthorized operation (%s) in apply", op)
	}

	if left.IsTerminal() && right.IsTerminal() {
		return opresEdge(op, left, right), nil
	}
	if res, ok := m.applycache.matchapply(left, right); ok {
		return res, nil
	}
	leftlvl := m.store.level(left)
	rightlvl := m.store.level(right)
	var lvl int32
	var lowleft, lowright, highleft, highright Edge
	switch {
	case leftlvl == rightlvl:
		lvl, lowleft, lowright = leftlvl, m.store.low(left), m.store.low(right)
		highleft, highright = m.store.high(left), m.store.high(right)
	case leftlvl < rightlvl:
		lvl, lowleft, lowright = leftlvl, m.store.low(left), right
		highleft, highright = m.store.high(left), right
	default:
		lvl, lowleft, lowright = rightlvl, left, m.store.low(right)
		highleft, highright = left, m.store.high(right)
	}
	low, err := m.apply(lowleft, lowright)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.apply(highleft, highright)
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	res, err := m.makenode(lvl, low, high)
	m.popref(2)
	if err != nil {
		if _LOGLEVEL > 0 {
			log.Printf("apply: makenode failed at level %d: %v\n", lvl, err)
		}
		return Edge{}, err
	}
	return m.applycache.setapply(left, right, res), nil
}

// opresEdge looks up the truth table for op applied to two terminal edges.
func opresEdge(op Operator, left, right Edge) Edge {
	a, b := 0, 0
	if left.IsTrue() {
		a = 1
	}
	if right.IsTrue() {
		b = 1
	}
	if opres[op][a][b] == 1 {
		return bddtrue
	}
	return bddfalse
}

// Ite (if-then-else) computes (f & g) | (!f & h) more efficiently than
// three separate Apply calls, following the classic recursive algorithm
// (here generalized to operate directly on complemented edges).
func (m *Manager) Ite(f, g, h Edge) (Edge, error) {
	if !m.store.valid(f) || !m.store.valid(g) || !m.store.valid(h) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	m.initref()
	m.pushref(f)
	m.pushref(g)
	m.pushref(h)
	res, err := m.ite(f, g, h)
	m.popref(3)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) ite(f, g, h Edge) (Edge, error) {
	switch {
	case f.IsTrue():
		return g, nil
	case f.IsFalse():
		return h, nil
	case g == h:
		return g, nil
	case g.IsTrue() && h.IsFalse():
		return f, nil
	case g.IsFalse() && h.IsTrue():
		return f.Not(), nil
	}
	if res, ok := m.itecache.matchite(f, g, h); ok {
		return res, nil
	}
	p, q, r := m.store.level(f), m.store.level(g), m.store.level(h)
	low, err := m.ite(m.iteLow(p, q, r, f), m.iteLow(q, p, r, g), m.iteLow(r, p, q, h))
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.ite(m.iteHigh(p, q, r, f), m.iteHigh(q, p, r, g), m.iteHigh(r, p, q, h))
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	res, err := m.makenode(min3(p, q, r), low, high)
	m.popref(2)
	if err != nil {
		return Edge{}, err
	}
	return m.itecache.setite(f, g, h, res), nil
}

// iteLow returns n.low unless n's level is not the minimum of p,q,r, in
// which case n itself is returned unchanged (n does not depend on the
// top variable being decomposed).
func (m *Manager) iteLow(p, q, r int32, n Edge) Edge {
	if p > q || p > r {
		return n
	}
	return m.store.low(n)
}

func (m *Manager) iteHigh(p, q, r int32, n Edge) Edge {
	if p > q || p > r {
		return n
	}
	return m.store.high(n)
}

func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}
