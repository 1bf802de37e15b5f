// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"log"
	"sort"
)

// Manager owns a node store, its caches, and the variable-to-level mapping
// for one family of BDDs. Nothing is shared between Managers: this plays the
// role the teacher's BDD struct plays in bdd.go, generalized with a
// name-indexed variable table (for Declare/Var/LevelOf) and a var/level
// indirection so that reordering can permute levels without changing what a
// variable "means" to the caller.
type Manager struct {
	store *nodestore

	varnum    int32
	names     map[string]int32 // variable name -> variable index
	varnames  []string         // variable index -> name
	var2level []int32          // variable index -> current level
	level2var []int32          // current level -> variable index
	varedge   []Edge           // variable index -> positive literal edge (Var(i)), i.e. ITE(x_i,1,0)

	refstack []uint32
	err      error
	renameSeq int

	applycache   *applycache
	itecache     *itecache
	quantcache   *quantcache
	appexcache   *appexcache
	composecache *composecache
	renamecache  *renamecache
}

// New creates a Manager with varnum variables, numbered [0..varnum), each
// initially at the level matching its index. It is possible to set optional
// parameters, such as the size of the initial node table (Nodesize) or the
// cache size (Cachesize), using configuration options (see config.go). We
// return a nil Manager and a non-nil error if varnum is out of range or if
// there is not enough room to build the initial variable nodes.
func New(varnum int, options ...func(*configs)) (*Manager, error) {
	if varnum < 0 || varnum > int(_MAXVAR) {
		return nil, fmt.Errorf("bad number of variables (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	m := &Manager{varnum: int32(varnum)}
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", varnum)
	}
	m.names = make(map[string]int32, varnum)
	m.varnames = make([]string, 0, varnum)
	m.var2level = make([]int32, 0, varnum)
	m.level2var = make([]int32, 0, varnum)
	m.varedge = make([]Edge, 0, varnum)
	m.refstack = make([]uint32, 0, 2*varnum+4)
	m.store = newNodestore(config)
	m.cacheinit(config)
	for k := 0; k < varnum; k++ {
		name := defaultVarName(k)
		if _, err := m.declare(name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func defaultVarName(k int) string {
	return fmt.Sprintf("x%d", k)
}

// Declare adds a new Boolean variable named name to the manager, placed at
// the bottom of the current order (the largest level), and returns the
// literal edge for it. It fails with ErrAlreadyDeclared if name is already
// in use.
func (m *Manager) Declare(name string) (Edge, error) {
	return m.declare(name)
}

func (m *Manager) declare(name string) (Edge, error) {
	if _, ok := m.names[name]; ok {
		m.seterror(ErrAlreadyDeclared)
		return Edge{}, ErrAlreadyDeclared
	}
	level := int32(len(m.level2var))
	varidx := int32(len(m.varnames))
	m.names[name] = varidx
	m.varnames = append(m.varnames, name)
	m.var2level = append(m.var2level, level)
	m.level2var = append(m.level2var, varidx)
	v1, err := m.makenode(level, bddfalse, bddtrue)
	if err != nil {
		m.seterror(err)
		return Edge{}, err
	}
	m.pushref(v1)
	m.store.nodes[v1.id].refcou = _MAXREFCOUNT
	m.popref(1)
	m.varedge = append(m.varedge, v1)
	if int32(len(m.varnames)) > m.varnum {
		m.varnum = int32(len(m.varnames))
	}
	return v1, nil
}

// Var returns the positive literal edge for the variable registered under
// name, or ErrUnknownVariable if no such variable was declared.
func (m *Manager) Var(name string) (Edge, error) {
	idx, ok := m.names[name]
	if !ok {
		m.seterror(ErrUnknownVariable)
		return Edge{}, ErrUnknownVariable
	}
	return m.varedge[idx], nil
}

// LevelOf returns the current level of the variable registered under name.
// Levels change under reordering; use this rather than caching a level
// across a call to Sift or Reorder.
func (m *Manager) LevelOf(name string) (int32, error) {
	idx, ok := m.names[name]
	if !ok {
		m.seterror(ErrUnknownVariable)
		return 0, ErrUnknownVariable
	}
	return m.var2level[idx], nil
}

// VarAt returns the name of the variable currently sitting at level.
func (m *Manager) VarAt(level int32) (string, error) {
	if level < 0 || int(level) >= len(m.level2var) {
		m.seterror(ErrUnknownVariable)
		return "", ErrUnknownVariable
	}
	return m.varnames[m.level2var[level]], nil
}

// Varnum returns the number of declared variables.
func (m *Manager) Varnum() int { return len(m.varnames) }

// True and False return the two constant edges. They never need Incref:
// the terminal node is created with the maximal reference count and is
// never collected.
func (m *Manager) True() Edge  { return bddtrue }
func (m *Manager) False() Edge { return bddfalse }

// Cube builds the minterm edge corresponding to assignment, a map from
// variable name to truth value; variables absent from assignment are left
// unconstrained (not part of the resulting cube). Makeset builds its
// variable sets with it, and it can seed fixpoint computations.
func (m *Manager) Cube(assignment map[string]bool) (Edge, error) {
	type lit struct {
		level int32
		neg   bool
	}
	lits := make([]lit, 0, len(assignment))
	for name, val := range assignment {
		idx, ok := m.names[name]
		if !ok {
			m.seterror(ErrUnknownVariable)
			return Edge{}, ErrUnknownVariable
		}
		lits = append(lits, lit{level: m.var2level[idx], neg: !val})
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i].level > lits[j].level })
	res := bddtrue
	m.initref()
	for _, l := range lits {
		m.pushref(res)
		var low, high Edge
		if l.neg {
			low, high = res, bddfalse
		} else {
			low, high = bddfalse, res
		}
		next, err := m.makenode(l.level, low, high)
		m.popref(1)
		if err != nil {
			m.seterror(err)
			return Edge{}, err
		}
		res = next
	}
	return res, nil
}

// Statistics returns a human-readable report on node table occupancy, GC
// history, and cache hit ratios, in the spirit of the teacher's stats/String
// methods in hudd.go/stdio.go.
func (m *Manager) Statistics() string {
	s := m.store.statsString()
	s += m.cacheStats()
	return s
}

// Configure applies configuration options to a live manager (e.g. to
// change Reordering or MaxGrowth after New). Options affecting the initial
// node/cache allocation (Nodesize, Cachesize, MemoryEstimate) have no effect
// once the manager is running.
func (m *Manager) Configure(options ...func(*configs)) {
	for _, f := range options {
		f(&m.store.configs)
	}
}
