// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package decido defines concrete types for Binary and Multi-valued Decision
Diagrams (BDD and MDD), data structures used to efficiently represent Boolean
functions over a fixed set of variables or, equivalently, sets of Boolean
vectors with a fixed size.

Basics

Each diagram has a fixed number of variables, Varnum, declared when it is
initialized (using the method New) and each variable is represented by an
(integer) index in the interval [0..Varnum), called a level. A BDD variable
always has domain size two; an MDD variable can have any domain size greater
than one, fixed per variable at creation time. Both kinds are built on the same
node-table and operation-cache implementation, each engine owning its own
table, and support the creation of multiple independent diagrams with possibly
different numbers of variables.

Most operations return a Node; that is, a reference to a vertex in the
diagram. We use a plain integer to represent the address of a Node, with the
convention that 1 (respectively 0) is the address of the constant function
True (respectively False).

Automatic memory management

The library is written in pure Go, without the need for CGo or any other
native dependency. We piggyback on the garbage collection mechanism offered
by the host language: table resizing and internal memory management are
handled directly by the library, but "external" references to nodes made by
user code are reclaimed automatically through the Go runtime's finalizers,
via the GcReferenceManager described in gcmanager.go. Manual reference
counting (AddRef/DelRef, or the scoped ReferenceGuard) remains available and
is required whenever a node must survive across several independent
top-level calls.

Build tags

Compiling with the `debug` build tag unlocks extra counters about cache and
unicity-table usage, exposed through Statistics, and turns on internal
consistency checks. It does not change the log level.
*/
package decido
