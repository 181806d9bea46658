// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package qmdd implements a Multi-valued Decision Diagram (MDD) for quantum
state vectors and operator matrices. An MDD is a generalization of a Binary
Decision Diagram where each node fans out according to the radix of the
register it represents (a qubit has radix 2, a qutrit radix 3, and so on up
to radix 7) instead of always branching in two.

Basics

A Package is constructed with New, given the sizes (radices) of the quantum
registers it will manipulate. Vector nodes represent state amplitudes (one
child per basis state of a register); matrix nodes represent linear
operators (one child per pair of basis states, stored row-major). Each kind
of node has its own hash-consed unique table, with one bucket map per
variable level, so structurally identical sub-diagrams are always
represented by the same pointer.

Edge weights are complex numbers, themselves hash-consed in a scalar store:
the real and imaginary parts of a weight are looked up (within a
configurable tolerance) in a shared table of float64 values, so that equal
weights compare equal by pointer rather than by value. This is the same
technique rudd, the BDD library this package is adapted from, uses for
nodes; here it is applied one level down, to the numbers labelling edges.

Use of build tags

Like rudd, this package gates its diagnostics (compute-table hit/miss
counters, reported by Stats, and logging of each recorded error) behind the
"debug" build tag. Without the tag the package is silent and the counters
are not maintained.

Memory management

Nodes and scalar table entries are reference counted. Every child an Edge
holds is counted automatically at construction time, so a diagram's internal
structure is always correctly refcounted without any action from the
caller. A caller that wants to keep a top-level result alive across a
GarbageCollect call must protect it explicitly with IncRef, and release it
with DecRef once it is no longer needed; GarbageCollect then reclaims every
node and scalar entry whose count has fallen to zero, cascading through
released children in the same pass. rudd instead wraps externally returned
nodes with runtime.SetFinalizer so the Go garbage collector drives DelRef
automatically; this package does not, since a finalizer fires at an
unspecified and possibly much later point, which would make GarbageCollect's
reclaimed-count return value unreliable for callers trying to reason about
memory pressure. See DESIGN.md for the full rationale.
*/
package qmdd
