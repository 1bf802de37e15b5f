// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"errors"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We keep refcou's mark
// bit out of the level field (see markBit in edge.go) so the only limit on
// the number of variables is the width of a level, which we keep well under
// int32 range.
const _MAXVAR int32 = 0xFFFFFF

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// stick nodes (like constants and variables) in the node list.
const _MAXREFCOUNT int32 = 0x1FFFFFFF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// Sentinel errors for the "programming error" kind of the error taxonomy
// (spec ERROR HANDLING DESIGN): reported synchronously, never silently
// swallowed. These play the same role as the teacher's errMemory / errResize
// / errReset triplet in kernel.go, extended to the full taxonomy the manager
// surface needs.
var (
	// ErrInvalidEdge is returned when an edge does not refer to a live node.
	ErrInvalidEdge = errors.New("invalid-edge")
	// ErrDecrefUnderflow is returned by Decref on a node with a zero count.
	ErrDecrefUnderflow = errors.New("decref-underflow")
	// ErrAlreadyDeclared is returned by Declare for a name already in use.
	ErrAlreadyDeclared = errors.New("already-declared")
	// ErrUnknownVariable is returned when a name does not resolve to a variable.
	ErrUnknownVariable = errors.New("unknown-variable")
	// ErrInvalidOrder is returned by Reorder for a malformed target order.
	ErrInvalidOrder = errors.New("invalid-order")
	// ErrOutOfMemory is returned when node allocation cannot proceed even
	// after garbage collection and resizing.
	ErrOutOfMemory = errors.New("out-of-memory")
)
