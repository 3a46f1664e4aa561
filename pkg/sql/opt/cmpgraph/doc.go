// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

/*
Package cmpgraph derives the provable ordering between scalar expressions from
a fixed set of atomic comparison facts (=, <, <=, >, >=). The optimizer uses it
to discharge filter predicates that are implied by other filters, and to detect
filters that contradict each other.

Construction happens in three steps:

 1. Every fact is normalized so that only =, < and <= remain, with > and >=
    rewritten by swapping their operands.
 2. Each distinct expression becomes a vertex, and each fact adds a directed
    edge from the greater side to the lesser side. An equality adds edges in
    both directions.
 3. Strongly connected components of that graph are collapsed into
    equivalence classes. Expressions in one class are provably equal.

Queries then search the collapsed graph. A path from the class of x to the
class of y proves x >= y, and the proof is strict if the cheapest path
(where < edges weigh -1 and <= edges weigh 0) has a negative weight.

A Graph is immutable once built and is safe for concurrent use.

Expressions are opaque to this package. They only need a structural hash and
an exact equality check, see Expr.
*/
package cmpgraph
