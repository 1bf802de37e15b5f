// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import "math"

// quantset2cache records the levels appearing in a care-set cube (as built
// by Makeset) into the quantification cache's level-indexed marker array, so
// that quant/appquant can test "is this level quantified" in O(1) during the
// recursive descent. varset must be an uncomplemented conjunction of
// positive literals (the shape Makeset always produces).
func (m *Manager) quantset2cache(varset Edge) error {
	if len(m.quantcache.quantset) < len(m.level2var) {
		grown := make([]int32, len(m.level2var))
		copy(grown, m.quantcache.quantset)
		m.quantcache.quantset = grown
	}
	m.quantcache.quantsetID++
	if m.quantcache.quantsetID == math.MaxInt32 {
		m.quantcache.quantset = make([]int32, len(m.level2var))
		m.quantcache.quantsetID = 1
	}
	m.quantcache.quantlast = -1
	for n := varset; !n.IsTerminal(); n = m.store.high(n) {
		lvl := m.store.level(n)
		m.quantcache.quantset[lvl] = m.quantcache.quantsetID
		m.quantcache.quantlast = lvl
	}
	return nil
}

// Exist computes the existential quantification of e over every variable
// named in vars.
func (m *Manager) Exist(e Edge, vars ...string) (Edge, error) {
	return m.quantify(e, OPor, vars)
}

// Forall computes the universal quantification of e over every variable
// named in vars.
func (m *Manager) Forall(e Edge, vars ...string) (Edge, error) {
	return m.quantify(e, OPand, vars)
}

func (m *Manager) quantify(e Edge, combine Operator, vars []string) (Edge, error) {
	if !m.store.valid(e) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	varset, err := m.Makeset(vars)
	if err != nil {
		return Edge{}, err
	}
	if varset.IsTerminal() {
		return e, nil
	}
	if err := m.quantset2cache(varset); err != nil {
		return Edge{}, m.seterror(err)
	}
	m.quantcache.id = int(m.quantcache.quantsetID)
	m.applycache.op = combine
	m.initref()
	m.pushref(e)
	m.pushref(varset)
	res, err := m.quant(e, combine)
	m.popref(2)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) quant(n Edge, combine Operator) (Edge, error) {
	if n.IsTerminal() || m.store.level(n) > m.quantcache.quantlast {
		return n, nil
	}
	if res, ok := m.quantcache.matchquant(n); ok {
		return res, nil
	}
	low, err := m.quant(m.store.low(n), combine)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.quant(m.store.high(n), combine)
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	var res Edge
	lvl := m.store.level(n)
	if m.quantcache.quantset[lvl] == m.quantcache.quantsetID {
		oldop := m.applycache.op
		m.applycache.op = combine
		res, err = m.apply(low, high)
		m.applycache.op = oldop
	} else {
		res, err = m.makenode(lvl, low, high)
	}
	m.popref(2)
	if err != nil {
		return Edge{}, err
	}
	return m.quantcache.setquant(n, res), nil
}

// AppEx applies the binary operator op to n1 and n2, then existentially
// quantifies the result over vars, computing ∃vars. (n1 op n2) in a single
// bottom-up traversal. When op is OPand this is exactly the relational
// product used by image computations (spec §4.3 Relational Product). This is
// considerably more efficient than Apply followed by Exist, since the
// quantified variables are eliminated on the way up instead of after the
// whole conjunction has been built.
func (m *Manager) AppEx(n1, n2 Edge, op Operator, vars ...string) (Edge, error) {
	return m.relationalProduct(n1, n2, op, OPor, vars)
}

// AppAll is the universal dual of AppEx: it applies op to n1 and n2, then
// universally quantifies the result over vars, computing ∀vars. (n1 op n2).
// This is the relational_product(a, b, vars, universal=true) form used for
// pre-image computations under a must-transition reading, as opposed to
// AppEx's existential (may-transition) image.
func (m *Manager) AppAll(n1, n2 Edge, op Operator, vars ...string) (Edge, error) {
	return m.relationalProduct(n1, n2, op, OPand, vars)
}

// relationalProduct is the shared engine behind AppEx and AppAll: combine
// selects which operator recombines the two quantified branches (OPor for
// the existential dual, OPand for the universal one).
func (m *Manager) relationalProduct(n1, n2 Edge, op, combine Operator, vars []string) (Edge, error) {
	if op > OPnand {
		return Edge{}, m.seterrorf("operator %s not supported in call to AppEx/AppAll", op)
	}
	varset, err := m.Makeset(vars)
	if err != nil {
		return Edge{}, err
	}
	if varset.IsTerminal() {
		return m.Apply(n1, n2, op)
	}
	if !m.store.valid(n1) || !m.store.valid(n2) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	if err := m.quantset2cache(varset); err != nil {
		return Edge{}, m.seterror(err)
	}
	m.appexcache.op = op
	m.appexcache.combine = combine
	combineFlag := 0
	if combine == OPand {
		combineFlag = 1
	}
	m.appexcache.id = (int(m.quantcache.quantsetID) << 5) | (combineFlag << 4) | int(op)
	m.quantcache.id = m.appexcache.id
	m.applycache.op = combine
	m.initref()
	m.pushref(n1)
	m.pushref(n2)
	m.pushref(varset)
	res, err := m.appquant(n1, n2)
	m.popref(3)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) appquant(left, right Edge) (Edge, error) {
	op := m.appexcache.op
	combine := m.appexcache.combine
	switch op {
	case OPand:
		if left.IsFalse() || right.IsFalse() {
			return bddfalse, nil
		}
		if left == right {
			return m.quant(left, combine)
		}
		if left.IsTrue() {
			return m.quant(right, combine)
		}
		if right.IsTrue() {
			return m.quant(left, combine)
		}
	case OPor:
		if left.IsTrue() || right.IsTrue() {
			return bddtrue, nil
		}
		if left == right {
			return m.quant(left, combine)
		}
		if left.IsFalse() {
			return m.quant(right, combine)
		}
		if right.IsFalse() {
			return m.quant(left, combine)
		}
	case OPxor:
		if left == right {
			return bddfalse, nil
		}
		if left.IsFalse() {
			return m.quant(right, combine)
		}
		if right.IsFalse() {
			return m.quant(left, combine)
		}
	case OPnand:
		if left.IsFalse() || right.IsFalse() {
			return bddtrue, nil
		}
	case OPnor:
		if left.IsTrue() || right.IsTrue() {
			return bddfalse, nil
		}
	default:
		return Edge{}, m.seterrorf("unauthorized operation (%s) in AppEx/AppAll", op)
	}

	if left.IsTerminal() && right.IsTerminal() {
		return opresEdge(op, left, right), nil
	}
	if m.store.level(left) > m.quantcache.quantlast && m.store.level(right) > m.quantcache.quantlast {
		oldop := m.applycache.op
		m.applycache.op = op
		res, err := m.apply(left, right)
		m.applycache.op = oldop
		return res, err
	}
	if res, ok := m.appexcache.matchappex(left, right); ok {
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
	low, err := m.appquant(lowleft, lowright)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.appquant(highleft, highright)
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	var res Edge
	if m.quantcache.quantset[lvl] == m.quantcache.quantsetID {
		oldop := m.applycache.op
		m.applycache.op = combine
		res, err = m.apply(low, high)
		m.applycache.op = oldop
	} else {
		res, err = m.makenode(lvl, low, high)
	}
	m.popref(2)
	if err != nil {
		return Edge{}, err
	}
	return m.appexcache.setappex(left, right, res), nil
}
