// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"unsafe"
)

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR(c, _PAIR(a, b, len), len))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integers (a,
// b) into a unique integer then casts it into a value in the interval
// [0..len) using a modulo operation.
func _PAIR(a, b, len int) int {
	ua := uint64(a)
	ub := uint64(b)
	return int(((((ua + ub) * (ua + ub + 1)) / 2) + (ua)) % uint64(len))
}

// edgeKey packs an Edge into a single non-negative int suitable for _PAIR and
// _TRIPLE. This plays the role the teacher's bare node ints played directly:
// the cache layer here keys on Edges (node id plus complement bit) instead of
// on uncomplemented node indices.
func edgeKey(e Edge) int {
	k := int(e.id) << 1
	if e.neg {
		k |= 1
	}
	return k
}

type data4n struct {
	res  Edge
	a, b Edge
	c    int
	used bool
}

type data4ncache struct {
	ratio  int
	opHit  int // entries found in the caches
	opMiss int // entries not found in the caches
	table  []data4n
}

func (bc *data4ncache) init(size, ratio int) {
	size = primeGte(size)
	bc.table = make([]data4n, size)
	bc.ratio = ratio
	bc.reset()
}

func (bc *data4ncache) resize(size int) {
	if bc.ratio > 0 {
		size = primeGte((size * bc.ratio) / 100)
		bc.table = make([]data4n, size)
	}
	bc.reset()
}

func (bc *data4ncache) reset() {
	for k := range bc.table {
		bc.table[k].used = false
	}
}

// Setup and shutdown

func (m *Manager) cacheinit(c *configs) {
	size := 10000
	if c.cachesize != 0 {
		size = c.cachesize
	}
	size = primeGte(size)
	m.applycache = &applycache{}
	m.applycache.init(size, c.cacheratio)
	m.itecache = &itecache{}
	m.itecache.init(size, c.cacheratio)
	m.quantcache = &quantcache{}
	m.quantcache.init(size, c.cacheratio)
	m.appexcache = &appexcache{}
	m.appexcache.init(size, c.cacheratio)
	m.composecache = &composecache{}
	m.composecache.init(size, c.cacheratio)
	m.renamecache = &renamecache{}
	m.renamecache.init(size, c.cacheratio)
}

// cacheReset invalidates every cache, required after a garbage collection or
// a reordering swap since node identifiers may be reused for a different
// triple afterwards.
func (m *Manager) cacheReset() {
	m.applycache.reset()
	m.itecache.reset()
	m.quantcache.reset()
	m.appexcache.reset()
	m.composecache.reset()
	m.renamecache.reset()
}

func (m *Manager) cacheResize(nodesize int) {
	m.applycache.resize(nodesize)
	m.itecache.resize(nodesize)
	m.quantcache.resize(nodesize)
	m.appexcache.resize(nodesize)
	m.composecache.resize(nodesize)
	m.renamecache.resize(nodesize)
}

func (m *Manager) cacheStats() string {
	res := m.applycache.String()
	res += m.itecache.String()
	res += m.quantcache.String()
	res += m.appexcache.String()
	res += m.composecache.String()
	res += m.renamecache.String()
	return res
}

//
// Apply cache. The hash function for Apply is #(left, right, applycache.op).
//

type applycache struct {
	data4ncache
	op Operator // current operation during an apply
}

func (bc *applycache) matchapply(left, right Edge) (Edge, bool) {
	entry := &bc.table[_TRIPLE(edgeKey(left), edgeKey(right), int(bc.op), len(bc.table))]
	if entry.used && entry.a == left && entry.b == right && entry.c == int(bc.op) {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *applycache) setapply(left, right, res Edge) Edge {
	bc.table[_TRIPLE(edgeKey(left), edgeKey(right), int(bc.op), len(bc.table))] = data4n{
		used: true, a: left, b: right, c: int(bc.op), res: res,
	}
	return res
}

func (bc applycache) String() string {
	res := fmt.Sprintf("== Apply cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

//
// ITE cache. The hash function for ITE is #(f,g,h).
//

type itecache struct {
	data4ncache
}

func (bc *itecache) matchite(f, g, h Edge) (Edge, bool) {
	entry := &bc.table[_TRIPLE(edgeKey(f), edgeKey(g), edgeKey(h), len(bc.table))]
	if entry.used && entry.a == f && entry.b == g && entry.c == edgeKey(h) {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *itecache) setite(f, g, h, res Edge) Edge {
	bc.table[_TRIPLE(edgeKey(f), edgeKey(g), edgeKey(h), len(bc.table))] = data4n{
		used: true, a: f, b: g, c: edgeKey(h), res: res,
	}
	return res
}

func (bc itecache) String() string {
	res := fmt.Sprintf("== ITE cache    %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

//
// Quantification cache. The hash is #(n, id), where id is regenerated each
// time Exist/Forall is called with a new care set, exactly like the
// teacher's quantsetID bookkeeping.
//

type quantcache struct {
	data4ncache
	quantset   []int32 // quantset[level] == quantsetID iff level is in the current care set
	quantsetID int32
	quantlast  int32 // deepest level appearing in the current care set
	id         int   // current cache id for quantifications
}

func (bc *quantcache) matchquant(n Edge) (Edge, bool) {
	entry := &bc.table[_PAIR(edgeKey(n), bc.id, len(bc.table))]
	if entry.used && entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *quantcache) setquant(n, res Edge) Edge {
	bc.table[_PAIR(edgeKey(n), bc.id, len(bc.table))] = data4n{used: true, a: n, c: bc.id, res: res}
	return res
}

func (bc quantcache) String() string {
	res := fmt.Sprintf("== Quant cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

//
// AppEx cache, a mix of quant and apply caches: #(left, right, id) where id
// folds in both the variable set and the underlying operator.
//

type appexcache struct {
	data4ncache
	op      Operator // the Apply operator combining n1 and n2
	combine Operator // OPor for the existential recombination, OPand for the universal one
	id      int
}

func (bc *appexcache) matchappex(left, right Edge) (Edge, bool) {
	entry := &bc.table[_TRIPLE(edgeKey(left), edgeKey(right), bc.id, len(bc.table))]
	if entry.used && entry.a == left && entry.b == right && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *appexcache) setappex(left, right, res Edge) Edge {
	bc.table[_TRIPLE(edgeKey(left), edgeKey(right), bc.id, len(bc.table))] = data4n{
		used: true, a: left, b: right, c: bc.id, res: res,
	}
	return res
}

func (bc appexcache) String() string {
	res := fmt.Sprintf("== AppEx cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

//
// Compose cache: #(n, level, image). General substitution e[v:=r] where r
// ranges over an arbitrary edge, not merely another variable. Unlike rename
// below, this has no counterpart in the teacher, whose replace.go only ever
// substitutes variables for variables.
//

type composecache struct {
	data4ncache
	level int32
	image Edge
}

func (bc *composecache) matchcompose(n Edge) (Edge, bool) {
	h := _TRIPLE(edgeKey(n), int(bc.level), edgeKey(bc.image), len(bc.table))
	entry := &bc.table[h]
	if entry.used && entry.a == n && entry.b == bc.image && entry.c == int(bc.level) {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *composecache) setcompose(n, res Edge) Edge {
	h := _TRIPLE(edgeKey(n), int(bc.level), edgeKey(bc.image), len(bc.table))
	bc.table[h] = data4n{used: true, a: n, b: bc.image, c: int(bc.level), res: res}
	return res
}

func (bc composecache) String() string {
	res := fmt.Sprintf("== Compose      %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

//
// Rename cache. The hash function for Rename(n) is simply n, exactly like
// the teacher's replace cache.
//

type renamecache struct {
	data4ncache
	id int // current cache id for rename
}

func (bc *renamecache) matchrename(n Edge) (Edge, bool) {
	entry := &bc.table[edgeKey(n)%len(bc.table)]
	if entry.used && entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return Edge{}, false
}

func (bc *renamecache) setrename(n, res Edge) Edge {
	bc.table[edgeKey(n)%len(bc.table)] = data4n{used: true, a: n, c: bc.id, res: res}
	return res
}

func (bc renamecache) String() string {
	res := fmt.Sprintf("== Rename       %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, hitRatio(bc.opHit, bc.opMiss))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

func hitRatio(hit, miss int) float64 {
	if hit+miss == 0 {
		return 0
	}
	return (float64(hit) * 100) / (float64(hit) + float64(miss))
}

// humanSize formats a table of n elements of the given element size as a
// human-readable byte count, used by every cache's String method.
func humanSize(n int, elemSize uintptr) string {
	bytes := float64(n) * float64(elemSize)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for bytes >= 1024 && i < len(units)-1 {
		bytes /= 1024
		i++
	}
	return fmt.Sprintf("%.1f%s", bytes, units[i])
}
