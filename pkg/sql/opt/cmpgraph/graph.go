// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import (
	"fmt"
	"strings"
)

// Config controls how a Graph is built.
type Config struct {
	// Observer receives diagnostic events during construction. It may be nil.
	Observer Observer

	TestingKnobs TestingKnobs
}

// TestingKnobs contains test-only hooks.
type TestingKnobs struct {
	// DisableEarlyRelaxationExit makes the path search run the maximum number
	// of rounds even after the distances have stopped changing.
	DisableEarlyRelaxationExit bool
}

// classID identifies an equivalence class of a Graph.
type classID int32

// class is a maximal set of expressions proven equal to each other.
type class struct {
	// members holds the expressions of the class in the order in which they
	// were first seen.
	members []Expr
	// contradictory is set if the class was formed by a cycle that contains a
	// strict comparison.
	contradictory bool
}

// classEdge states that the source class is >= the destination class,
// strictly so if typ is lessEdge. Parallel edges are allowed.
type classEdge struct {
	typ edgeType
	to  classID
}

type lookupEntry struct {
	// expr is the expression that was stored under the hash. A query
	// expression only belongs to the class if it is exactly equal to expr.
	expr  Expr
	class classID
}

// Graph answers comparison queries between expressions, based on the facts it
// was built from. It is immutable and safe for concurrent use.
type Graph struct {
	classes []class
	// edges is the adjacency list of each class. Edges always go from a lower
	// class id to a higher one.
	edges [][]classEdge
	index map[uint64]lookupEntry

	numVertices int
	numEdges    int
	knobs       TestingKnobs
}

// New builds a Graph from the given facts. Facts whose operands cannot be
// told apart from a different expression with the same hash are skipped and
// reported to the observer.
//
// An error is returned if a fact has an invalid operator, or if the Expr
// implementation panics with an error; in that case the error is returned
// unchanged.
func New(facts []Fact, cfg Config) (_ *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = catchGraphError(r)
		}
	}()

	observer := cfg.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	fg := newFactGraph(len(facts), observer)
	for _, f := range facts {
		fg.addFact(f)
	}
	g := fg.collapse()
	g.knobs = cfg.TestingKnobs
	return g, nil
}

// classOf returns the class of the given expression, if the expression was
// part of any accepted fact.
func (g *Graph) classOf(e Expr) (classID, bool) {
	entry, ok := g.index[e.Hash()]
	if !ok || !entry.expr.Equals(e) {
		return -1, false
	}
	return entry.class, true
}

// NumVertices returns the number of distinct expressions in the graph.
func (g *Graph) NumVertices() int {
	return g.numVertices
}

// NumClasses returns the number of equivalence classes in the graph.
func (g *Graph) NumClasses() int {
	return len(g.classes)
}

// NumEdges returns the number of edges between distinct classes, including
// parallel ones.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Contradictory returns true if the facts the graph was built from contain a
// cycle with a strict comparison, such as a < b and b <= a. The expressions
// of such a cycle are still treated as equal by all queries.
func (g *Graph) Contradictory() bool {
	for i := range g.classes {
		if g.classes[i].contradictory {
			return true
		}
	}
	return false
}

// IsContradictory returns true if the expression belongs to a class that was
// formed by a contradictory cycle.
func (g *Graph) IsContradictory(e Expr) bool {
	c, ok := g.classOf(e)
	return ok && g.classes[c].contradictory
}

// String returns a description of the classes and edges of the graph, in the
// form:
//
//	classes:
//	  (0) c
//	  (1) a, b
//	edges:
//	  (0) > (1)
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("classes:\n")
	for i := range g.classes {
		fmt.Fprintf(&b, "  (%d) ", i)
		for j, e := range g.classes[i].members {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", e)
		}
		if g.classes[i].contradictory {
			b.WriteString(" [contradictory]")
		}
		b.WriteByte('\n')
	}
	if g.numEdges == 0 {
		return b.String()
	}
	b.WriteString("edges:\n")
	for from := range g.edges {
		for _, e := range g.edges[from] {
			op := ">="
			if e.typ == lessEdge {
				op = ">"
			}
			fmt.Fprintf(&b, "  (%d) %s (%d)\n", from, op, e.to)
		}
	}
	return b.String()
}
