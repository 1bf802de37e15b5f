// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package obdd defines a concrete type for Reduced Ordered Binary Decision
Diagrams (BDD) with complemented edges, a data structure used to efficiently
represent Boolean functions over a fixed set of variables or, equivalently,
sets of Boolean vectors with a fixed size.

Basics

Each Manager has a fixed number of variables, declared when it is initialized
(using New) and grown on demand with Declare; each variable is represented by
an (integer) index in the interval [0..Varnum), called a level. Levels change
under reordering; variable identities never do. Our library supports the
creation of multiple independent Managers with possibly different numbers of
variables.

Most operations over a Manager return an Edge: a reference to a node in the
BDD, annotated with a complement bit that negates the Boolean function
computed at the target. Complementing an edge is an O(1) operation that never
touches the node table; only low (false-branch) edges may ever carry the
complement bit, which keeps the representation canonical.

Use of build tags

For the most part, data structures and algorithms implemented in this
library are adaptations of the classic algorithms for ROBDDs (Bryant,
Rudell), including Rudell's sifting algorithm for dynamic variable
reordering. The default implementation uses a standard Go runtime hashmap to
encode a unicity table.

To unlock logging of internal operations (recorded errors and garbage
collections), compile your executable with the build tag `debug`. The
statistics reported by Statistics are the same with or without the tag.

Automatic memory management

The library is written in pure Go, without the need for CGo or any other
dependencies. We take care of node table resizing and memory management
directly in the library, but "external" references held by user code must be
registered explicitly with Incref and released with Decref; this deliberate
tracking (rather than finalizer-based tracking) lets the manager run a
precise mark-and-sweep collection on demand, and lets Decref catch a
double-release instead of silently ignoring it.
*/
package obdd
