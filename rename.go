// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// Rename is the fast path for variable-to-variable substitution: it
// directly reassembles the DAG at the new levels (correctify, adapted from
// the teacher's replace.go/correctify), without going through the general
// Ite-based Compose below. pairs maps each source variable name to its
// replacement; renaming must stay injective (no two sources may map to the
// same target, and the target set must be disjoint from the untouched
// variables) or the result is unspecified, mirroring the restriction the
// teacher's Replacer documents.
func (m *Manager) Rename(e Edge, pairs map[string]string) (Edge, error) {
	if !m.store.valid(e) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	image := make(map[int32]int32, len(pairs))
	for from, to := range pairs {
		fl, err := m.LevelOf(from)
		if err != nil {
			return Edge{}, err
		}
		tl, err := m.LevelOf(to)
		if err != nil {
			return Edge{}, err
		}
		image[fl] = tl
	}
	m.renameSeq++
	m.renamecache.id = m.renameSeq
	m.initref()
	m.pushref(e)
	res, err := m.rename(e, image)
	m.popref(1)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) rename(e Edge, image map[int32]int32) (Edge, error) {
	if e.IsTerminal() {
		return e, nil
	}
	lvl := m.store.level(e)
	newlvl, renamed := image[lvl]
	if !renamed {
		newlvl = lvl
	}
	if res, ok := m.renamecache.matchrename(e); ok {
		return res, nil
	}
	low, err := m.rename(m.store.low(e), image)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.rename(m.store.high(e), image)
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	res, err := m.correctify(newlvl, low, high)
	m.popref(2)
	if err != nil {
		return Edge{}, err
	}
	return m.renamecache.setrename(e, res), nil
}

// correctify rebuilds a node at level, given that low/high may themselves
// sit at a level that now collides with level after renaming; it interleaves
// low and high node-by-node until both sit strictly below level again.
func (m *Manager) correctify(level int32, low, high Edge) (Edge, error) {
	ll := m.levelOrVarnum(low)
	hl := m.levelOrVarnum(high)
	if level < ll && level < hl {
		return m.makenode(level, low, high)
	}
	if level == ll || level == hl {
		return Edge{}, m.seterrorf("rename produced a level collision at %d", level)
	}
	if ll == hl {
		left, err := m.correctify(level, m.store.low(low), m.store.low(high))
		if err != nil {
			return Edge{}, err
		}
		m.pushref(left)
		right, err := m.correctify(level, m.store.high(low), m.store.high(high))
		m.popref(1)
		if err != nil {
			return Edge{}, err
		}
		m.pushref(left)
		m.pushref(right)
		res, err := m.makenode(ll, left, right)
		m.popref(2)
		return res, err
	}
	if ll < hl {
		left, err := m.correctify(level, m.store.low(low), high)
		if err != nil {
			return Edge{}, err
		}
		m.pushref(left)
		right, err := m.correctify(level, m.store.high(low), high)
		m.popref(1)
		if err != nil {
			return Edge{}, err
		}
		m.pushref(left)
		m.pushref(right)
		res, err := m.makenode(ll, left, right)
		m.popref(2)
		return res, err
	}
	left, err := m.correctify(level, low, m.store.low(high))
	if err != nil {
		return Edge{}, err
	}
	m.pushref(left)
	right, err := m.correctify(level, low, m.store.high(high))
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(left)
	m.pushref(right)
	res, err := m.makenode(hl, left, right)
	m.popref(2)
	return res, err
}

// Compose substitutes an arbitrary edge r for the variable named name in e
// (general substitution, e[name := r]), as opposed to Rename above which
// only ever substitutes one variable for another. Grounded directly on the
// component design for the operator kernel (§4.2 Compose/Cofactor), since
// the teacher's replace.go has no equivalent: it only supports
// variable-for-variable renaming.
func (m *Manager) Compose(e Edge, name string, r Edge) (Edge, error) {
	if !m.store.valid(e) || !m.store.valid(r) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	level, err := m.LevelOf(name)
	if err != nil {
		return Edge{}, err
	}
	m.composecache.level = level
	m.composecache.image = r
	m.initref()
	m.pushref(e)
	m.pushref(r)
	res, err := m.compose(e, level, r)
	m.popref(2)
	if err != nil {
		return Edge{}, m.seterror(err)
	}
	return res, nil
}

func (m *Manager) compose(e Edge, varlevel int32, g Edge) (Edge, error) {
	if e.IsTerminal() {
		return e, nil
	}
	lvl := m.store.level(e)
	if lvl > varlevel {
		return e, nil
	}
	if lvl == varlevel {
		return m.ite(g, m.store.high(e), m.store.low(e))
	}
	if res, ok := m.composecache.matchcompose(e); ok {
		return res, nil
	}
	low, err := m.compose(m.store.low(e), varlevel, g)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	high, err := m.compose(m.store.high(e), varlevel, g)
	m.popref(1)
	if err != nil {
		return Edge{}, err
	}
	m.pushref(low)
	m.pushref(high)
	res, err := m.makenode(lvl, low, high)
	m.popref(2)
	if err != nil {
		return Edge{}, err
	}
	return m.composecache.setcompose(e, res), nil
}
