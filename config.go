// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// configs stores the values of the different parameters of the manager. This
// is the closed set of recognized options from spec §4.7 Configure, laid out
// as the teacher's config.go does: a plain struct plus functional options.
type configs struct {
	varnum          int     // number of BDD variables
	nodesize        int     // initial number of nodes in the table
	cachesize       int     // initial cache size (general)
	cacheratio      int     // initial ratio (%) between cache size and node table, 0 if constant
	maxnodesize     int     // maximum total number of nodes (0 if no limit)
	maxnodeincrease int     // maximum number of nodes added to the table at each resize (0 if no limit)
	minfreenodes    int     // minimum % of free nodes that must remain after GC before resizing
	memoryEstimate  int     // advisory initial allocation size, in bytes
	reordering      bool    // enables automatic sifting at size thresholds
	maxgrowth       float64 // sifting cutoff: abandon a direction past best-so-far * maxgrowth
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.maxgrowth = 2.0
	// we build enough nodes to include the terminal and the variables
	// declared up front
	c.nodesize = 2*varnum + 1
	return c
}

// Nodesize is a configuration option. Used as a parameter in New it sets a
// preferred initial size for the node table. The size of the BDD can
// increase during computation; this only affects the initial allocation.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+1 {
			c.nodesize = size
		}
	}
}

// Maxnodesize sets a limit to the number of nodes in the manager. An
// operation trying to raise the number of nodes above this limit fails with
// ErrOutOfMemory. The default (0) means no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease sets a limit on the increase in size of the node table at
// each resize. The default is about a million nodes; zero removes the limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the ratio (%) of free nodes that must remain after a
// garbage collection before we resize instead. The default is 20%.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries in the operation caches.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio sets a cache ratio (%) so caches grow proportionally to the node
// table on each resize. The default (0) means the cache size never grows.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// MemoryEstimate is an advisory hint for the initial allocation size, in
// bytes; it is translated into a Nodesize (one node per 32 bytes, at least
// 2*varnum+1) at New time, leaves the cache size unchanged, and otherwise
// has no behavioral effect (spec §4.7 lists it as advisory only).
func MemoryEstimate(bytes int) func(*configs) {
	return func(c *configs) {
		c.memoryEstimate = bytes
		if bytes > 0 {
			c.nodesize = bytes / 32
			if c.nodesize < 2*c.varnum+1 {
				c.nodesize = 2*c.varnum + 1
			}
		}
	}
}

// Reordering enables automatic invocation of sifting at implementation-
// defined size thresholds (spec §4.7); the trigger itself is a tunable, not a
// behavioral contract (spec §9 Open Questions).
func Reordering(enabled bool) func(*configs) {
	return func(c *configs) {
		c.reordering = enabled
	}
}

// MaxGrowth sets the sifting cutoff: a sift direction is abandoned once the
// live node count exceeds best-so-far * factor.
func MaxGrowth(factor float64) func(*configs) {
	return func(c *configs) {
		c.maxgrowth = factor
	}
}
