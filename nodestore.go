// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"log"
	"math"
	"unsafe"
)

// nodestore is the canonical DAG: it owns every node and the unique table
// that guarantees find_or_add returns the same node id for the same
// (level, low, high) triple. This plays the role of the teacher's tables
// type in hudd.go, generalized from bare node integers to complemented
// Edges, and collapsed onto a single (map-based) representation — the
// teacher also ships a second, BuDDy-flavoured implementation selected by a
// `buddy` build tag, but that variant exists purely to cross-check the
// default implementation against a from-scratch port of an external C
// library; nothing in this spec calls for two interchangeable internal
// representations, so we keep only the map-based one (see DESIGN.md).
type nodestore struct {
	nodes    []node             // node 0 is always the terminal
	unique   map[nodeKey]uint32 // unicity table
	freenum  int                // number of free slots
	freepos  uint32             // first free slot, 0 if none
	produced int                // total nodes ever produced

	uniqueAccess int
	uniqueHit    int
	uniqueMiss   int

	cacheDirty bool // set whenever gbc runs; the caller must reset the apply-layer caches

	gcstat
	configs
}

// takeCacheDirty reports whether a garbage collection happened since the
// last call and clears the flag. This lets Manager notice a sweep and
// invalidate its caches, instead of silently serving stale entries that point
// at node ids gbc has since reused for a different (level,low,high) triple.
func (s *nodestore) takeCacheDirty() bool {
	dirty := s.cacheDirty
	s.cacheDirty = false
	return dirty
}

// freeLevel marks a free slot in b.nodes; the next free slot is stashed in
// low.id, mirroring the teacher's use of -1/next-index pairs in hudd.go.
const freeLevel int32 = -1

func newNodestore(c *configs) *nodestore {
	s := &nodestore{configs: *c}
	s.minfreenodes = c.minfreenodes
	s.maxnodeincrease = c.maxnodeincrease
	size := c.nodesize
	if size < 1 {
		size = 1
	}
	s.nodes = make([]node, size)
	for k := range s.nodes {
		s.nodes[k] = node{level: freeLevel, low: Edge{id: uint32(k + 1)}}
	}
	s.nodes[size-1].low = Edge{id: 0}
	s.unique = make(map[nodeKey]uint32, size)
	// The terminal occupies slot 0 and is never inserted in the unique
	// table, exactly like bddzero/bddone in the teacher's hudd.go.
	s.nodes[0] = node{level: math.MaxInt32, low: bddtrue, high: bddtrue, refcou: _MAXREFCOUNT}
	s.freepos = 1
	if size == 1 {
		s.freepos = 0
	}
	s.freenum = size - 1
	s.gcstat.history = []gcpoint{}
	return s
}

// findOrAdd is the node-store primitive described in COMPONENT DESIGN §4.1.
// It normalizes the complement bit so that only low edges are ever
// complemented, then consults (and possibly populates) the unique table.
// findOrAdd never runs a garbage collection: when no slot is free it grows
// the table with resize, and fails with ErrOutOfMemory if the table cannot
// grow. The refstack argument is not used by the allocation itself.
func (s *nodestore) findOrAdd(level int32, low, high Edge, refstack []uint32) (Edge, error) {
	s.uniqueAccess++
	if low == high {
		return low, nil
	}
	negate := false
	if high.neg {
		low, high = low.Not(), high.Not()
		negate = true
	}
	key := nodeKey{level: level, low: low, high: high}
	if id, ok := s.unique[key]; ok {
		s.uniqueHit++
		return s.resultEdge(id, negate), nil
	}
	s.uniqueMiss++
	if s.freepos == 0 {
		if err := s.resize(); err != nil {
			return Edge{}, err
		}
	}
	id := s.freepos
	s.freepos = s.nodes[id].low.id
	s.freenum--
	s.produced++
	s.nodes[id] = node{level: level, low: low, high: high}
	s.unique[key] = id
	return s.resultEdge(id, negate), nil
}

func (s *nodestore) resultEdge(id uint32, negate bool) Edge {
	e := Edge{id: id}
	if negate {
		e = e.Not()
	}
	return e
}

func (s *nodestore) level(e Edge) int32 { return s.nodes[e.id].level }
func (s *nodestore) low(e Edge) Edge {
	lo := s.nodes[e.id].low
	if e.neg {
		lo = lo.Not()
	}
	return lo
}
func (s *nodestore) high(e Edge) Edge {
	hi := s.nodes[e.id].high
	if e.neg {
		hi = hi.Not()
	}
	return hi
}

func (s *nodestore) valid(e Edge) bool {
	return int(e.id) < len(s.nodes) && s.nodes[e.id].level != freeLevel
}

func (s *nodestore) size() int { return len(s.nodes) }

// resize grows the node table, following the teacher's noderesize in
// hkernel.go: double the size (capped by maxnodeincrease/maxnodesize), keep
// existing nodes, relink the free list over the new slots.
func (s *nodestore) resize() error {
	oldsize := len(s.nodes)
	if s.maxnodesize > 0 && oldsize >= s.maxnodesize {
		return ErrOutOfMemory
	}
	newsize := oldsize
	if oldsize > math.MaxInt32>>1 {
		newsize = math.MaxInt32 - 1
	} else {
		newsize = oldsize << 1
	}
	if s.maxnodeincrease > 0 && newsize > oldsize+s.maxnodeincrease {
		newsize = oldsize + s.maxnodeincrease
	}
	if s.maxnodesize > 0 && newsize > s.maxnodesize {
		newsize = s.maxnodesize
	}
	if newsize <= oldsize {
		return ErrOutOfMemory
	}
	tmp := s.nodes
	s.nodes = make([]node, newsize)
	copy(s.nodes, tmp)
	for n := oldsize; n < newsize; n++ {
		s.nodes[n] = node{level: freeLevel, low: Edge{id: uint32(n + 1)}}
	}
	s.nodes[newsize-1].low = Edge{id: s.freepos}
	s.freepos = uint32(oldsize)
	s.freenum += newsize - oldsize
	return nil
}

// markrec marks node n and recursively marks its successors, ignoring
// complement bits (reference counting and mark/sweep both operate on node
// identity, per spec §4.4).
func (s *nodestore) markrec(id uint32) {
	if id == terminalID {
		return
	}
	n := &s.nodes[id]
	if n.level == freeLevel || n.marked() {
		return
	}
	n.mark()
	s.markrec(n.low.id)
	s.markrec(n.high.id)
}

func (s *nodestore) unmarkAll() {
	for k := range s.nodes {
		if s.nodes[k].level != freeLevel && s.nodes[k].marked() {
			s.nodes[k].unmark()
		}
	}
}

// gbc performs mark-and-sweep collection, as specified in §4.4:
//  1. the terminal is always considered marked (refcou == _MAXREFCOUNT).
//  2. every node with a positive external refcount is marked, recursively.
//  3. unmarked nodes are deleted from the node list and the unique table.
//  4. cacheDirty is set so the caller knows to invalidate the apply cache.
func (s *nodestore) gbc(refstack []uint32) {
	s.cacheDirty = true
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	s.gcstat.history = append(s.gcstat.history, gcpoint{
		nodes:     len(s.nodes),
		freenodes: s.freenum,
	})
	for _, r := range refstack {
		s.markrec(r)
	}
	for k := range s.nodes {
		if s.nodes[k].level != freeLevel && s.nodes[k].refcount() > 0 {
			s.markrec(uint32(k))
		}
	}
	s.freepos = 0
	s.freenum = 0
	for n := len(s.nodes) - 1; n > 0; n-- {
		nd := &s.nodes[n]
		if nd.level == freeLevel {
			nd.low = Edge{id: s.freepos}
			s.freepos = uint32(n)
			s.freenum++
			continue
		}
		if nd.marked() {
			nd.unmark()
			continue
		}
		delete(s.unique, nodeKey{level: nd.level, low: nd.low, high: nd.high})
		*nd = node{level: freeLevel, low: Edge{id: s.freepos}}
		s.freepos = uint32(n)
		s.freenum++
	}
	if _LOGLEVEL > 0 {
		log.Printf("end GC; freenum: %d\n", s.freenum)
	}
}

// liveCount returns the number of allocated, non-free nodes (including the
// terminal), used by sifting to track the size of the DAG at each level.
func (s *nodestore) liveCount() int {
	return len(s.nodes) - s.freenum
}

// idsAtLevel returns a snapshot of the live node ids currently at level.
// Used by the reordering engine to find every node that tests a given
// variable before mutating any of them.
func (s *nodestore) idsAtLevel(level int32) []uint32 {
	ids := []uint32{}
	for id := 1; id < len(s.nodes); id++ {
		if s.nodes[id].level == level {
			ids = append(ids, uint32(id))
		}
	}
	return ids
}

// relink rewrites the content of an existing node id in place, preserving
// its identity (and therefore every edge already referencing it, internal
// or external) while changing what (level, low, high) it represents. This
// is the core primitive of adjacent-level swap (§4.5): unlike find_or_add,
// it never allocates a new id, and it does not reduce (collapse low==high)
// — a swap occasionally leaves a redundant node whose two branches happen
// to coincide; this costs a little sharing but never changes the Boolean
// function computed, and the node still counts normally against the live
// node budget the sifting cutoff tracks (see DESIGN.md).
func (s *nodestore) relink(id uint32, level int32, low, high Edge) {
	old := s.nodes[id]
	delete(s.unique, nodeKey{level: old.level, low: old.low, high: old.high})
	s.nodes[id] = node{level: level, low: low, high: high, refcou: old.refcou}
	s.unique[nodeKey{level: level, low: low, high: high}] = id
}

// relabel moves a node to a different level without touching its low/high
// children, updating the unique-table key to match.
func (s *nodestore) relabel(id uint32, newlevel int32) {
	old := s.nodes[id]
	if old.level == newlevel {
		return
	}
	delete(s.unique, nodeKey{level: old.level, low: old.low, high: old.high})
	s.nodes[id].level = newlevel
	s.unique[nodeKey{level: newlevel, low: old.low, high: old.high}] = id
}

// statsString reports node table occupancy and garbage-collection history,
// following the teacher's stats method in hudd.go.
func (s *nodestore) statsString() string {
	res := fmt.Sprintf("Allocated:  %d (%s)\n", len(s.nodes), humanSize(len(s.nodes), unsafe.Sizeof(node{})))
	res += fmt.Sprintf("Produced:   %d\n", s.produced)
	r := (float64(s.freenum) / float64(len(s.nodes))) * 100
	res += fmt.Sprintf("Free:       %d (%.3g %%)\n", s.freenum, r)
	res += fmt.Sprintf("Used:       %d (%.3g %%)\n", len(s.nodes)-s.freenum, 100.0-r)
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(s.gcstat.history))
	res += fmt.Sprintf("Unique Access:  %d\n", s.uniqueAccess)
	if s.uniqueAccess > 0 {
		res += fmt.Sprintf("Unique Hit:     %d (%.1f%%)\n", s.uniqueHit, (float64(s.uniqueHit)*100)/float64(s.uniqueAccess))
	}
	res += fmt.Sprintf("Unique Miss:    %d\n", s.uniqueMiss)
	return res
}
