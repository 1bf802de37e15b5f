// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation, just
// like the teacher's gc.go.
type gcstat struct {
	history []gcpoint // snapshot of GC stats at each occurrence
}

type gcpoint struct {
	nodes     int // total number of allocated nodes in the nodetable
	freenodes int // number of free nodes in the nodetable
}

// *************************************************************************

// Incref increases the reference count on the node that e refers to and
// returns e unchanged, so that calls can be chained. The complement bit of e
// plays no role in reference counting (spec §4.4: "complement bits are
// ignored for counting").
func (m *Manager) Incref(e Edge) (Edge, error) {
	if !m.store.valid(e) {
		return e, m.seterror(ErrInvalidEdge)
	}
	n := &m.store.nodes[e.id]
	if n.refcount() < _MAXREFCOUNT {
		n.refcou++
	}
	return e, nil
}

// Decref decreases the reference count on the node that e refers to. Per
// spec §4.4, decrementing a node whose count is already zero is a
// programming error, not a silent no-op (this is a deliberate departure from
// the teacher's DelRef in gc.go, which swallows the case; spec.md is explicit
// that it must be surfaced so that callers can find the bug).
func (m *Manager) Decref(e Edge) (Edge, error) {
	if !m.store.valid(e) {
		return e, m.seterror(ErrInvalidEdge)
	}
	n := &m.store.nodes[e.id]
	if n.refcount() == 0 {
		return e, m.seterror(ErrDecrefUnderflow)
	}
	if n.refcount() < _MAXREFCOUNT {
		n.refcou--
	}
	return e, nil
}

// CollectGarbage performs mark-and-sweep collection (spec §4.4): mark the
// terminal and every node reachable from a positively-referenced node, sweep
// everything else, then invalidate the apply cache (cache contents are an
// optimization only, never a source of truth, so dropping them after a sweep
// is always safe). If at most Minfreenodes percent of the table is free
// after the sweep, the node table is also grown (when it can grow). This is
// the only place a collection runs: node allocation never sweeps on its own.
// If the Reordering option is enabled, a sweep is also the
// implementation-defined trigger point (spec §4.7) at which sifting runs
// automatically, since it is precisely the moment the live node count is
// known precisely and cheaply.
func (m *Manager) CollectGarbage() {
	m.store.gbc(m.refstack)
	m.store.takeCacheDirty()
	if (m.store.freenum*100)/m.store.size() <= m.store.minfreenodes && m.store.resize() == nil {
		m.cacheResize(m.store.size())
	} else {
		m.cacheReset()
	}
	if m.store.configs.reordering {
		if err := m.ReorderBySifting(); err != nil {
			m.seterror(err)
		}
	}
}

// makenode is the Manager-level entry point onto the node store: every
// operator kernel function goes through this, never store.findOrAdd
// directly. When findOrAdd had to grow the node table, the caches are
// resized along with it (see Cacheratio).
func (m *Manager) makenode(level int32, low, high Edge) (Edge, error) {
	oldsize := m.store.size()
	e, err := m.store.findOrAdd(level, low, high, m.refstack)
	if m.store.size() != oldsize {
		m.cacheResize(m.store.size())
	}
	if m.store.takeCacheDirty() {
		m.cacheReset()
	}
	return e, err
}

// *************************************************************************
// refstack bookkeeping: records nodes that are mid-construction (e.g.
// transient results inside a recursive apply); gbc marks every node on it
// as live.

func (m *Manager) initref() {
	m.refstack = m.refstack[:0]
}

func (m *Manager) pushref(e Edge) Edge {
	m.refstack = append(m.refstack, e.id)
	return e
}

func (m *Manager) popref(n int) {
	m.refstack = m.refstack[:len(m.refstack)-n]
}
