// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import "github.com/cockroachdb/errors"

// vertexIndex identifies a vertex of the fact graph. Vertices are never
// referenced by pointer.
type vertexIndex int32

// edgeType is the kind of an ordering edge. An edge from u to v states that
// u >= v, strictly so for lessEdge.
type edgeType uint8

const (
	lessEdge edgeType = iota
	lessOrEqualEdge
	// equalEdge only exists before collapse; equality always adds a pair of
	// opposite edges, so both ends end up in the same class.
	equalEdge
)

// weight returns the cost of the edge for the path search. A path with a
// negative total weight crosses at least one strict edge.
func (t edgeType) weight() int64 {
	if t == lessEdge {
		return -1
	}
	return 0
}

type edge struct {
	typ edgeType
	to  vertexIndex
}

// factGraph is the graph of expressions and facts before equal expressions
// are merged. It is append-only.
type factGraph struct {
	// exprs holds the representative expression of each vertex: the first
	// expression seen with the vertex's hash.
	exprs []Expr
	// edges is the adjacency list of each vertex.
	edges [][]edge
	// index maps an expression hash to the vertex for that hash. There is
	// exactly one vertex per hash.
	index map[uint64]vertexIndex

	observer Observer
}

func newFactGraph(sizeHint int, observer Observer) *factGraph {
	return &factGraph{
		exprs:    make([]Expr, 0, sizeHint),
		edges:    make([][]edge, 0, sizeHint),
		index:    make(map[uint64]vertexIndex, sizeHint),
		observer: observer,
	}
}

// resolution is the outcome of looking up an expression in the fact graph.
type resolution uint8

const (
	// resolvedVertex means the expression is exactly equal to the
	// representative of an existing vertex.
	resolvedVertex resolution = iota
	// absentVertex means no vertex exists for the expression's hash yet.
	absentVertex
	// hashCollision means a vertex exists for the hash but its representative
	// is a different expression. Such an expression cannot be represented.
	hashCollision
)

func (g *factGraph) lookup(e Expr, hash uint64) (vertexIndex, resolution) {
	v, ok := g.index[hash]
	if !ok {
		return -1, absentVertex
	}
	if !g.exprs[v].Equals(e) {
		return -1, hashCollision
	}
	return v, resolvedVertex
}

func (g *factGraph) addVertex(e Expr, hash uint64) vertexIndex {
	v := vertexIndex(len(g.exprs))
	g.exprs = append(g.exprs, e)
	g.edges = append(g.edges, nil)
	g.index[hash] = v
	return v
}

// addFact normalizes the fact and adds the edges it implies. If either operand
// cannot be represented, the fact is skipped as a whole and the graph is left
// untouched; in particular, no vertex is created for the other operand.
func (g *factGraph) addFact(f Fact) {
	f = Normalize(f)
	leftHash, rightHash := f.Left.Hash(), f.Right.Hash()
	left, leftRes := g.lookup(f.Left, leftHash)
	right, rightRes := g.lookup(f.Right, rightHash)

	switch {
	case leftRes == hashCollision:
		g.observer.FactSkipped(f, f.Left)
		return
	case rightRes == hashCollision:
		g.observer.FactSkipped(f, f.Right)
		return
	case leftRes == absentVertex && rightRes == absentVertex &&
		leftHash == rightHash && !f.Left.Equals(f.Right):
		// Both operands are new, but the second would collide with the first.
		g.observer.FactSkipped(f, f.Right)
		return
	}

	if leftRes == absentVertex {
		left = g.addVertex(f.Left, leftHash)
	}
	if rightRes == absentVertex {
		if leftRes == absentVertex && leftHash == rightHash {
			// Same expression on both sides, e.g. x <= x.
			right = left
		} else {
			right = g.addVertex(f.Right, rightHash)
		}
	}

	switch f.Op {
	case LtOp:
		g.addEdge(right, left, lessEdge)
	case LeOp:
		g.addEdge(right, left, lessOrEqualEdge)
	case EqOp:
		g.addEdge(right, left, equalEdge)
		g.addEdge(left, right, equalEdge)
	default:
		panic(errors.AssertionFailedf("unexpected operator after normalization: %s", f.Op))
	}
	g.observer.FactAccepted(f)
}

func (g *factGraph) addEdge(from, to vertexIndex, typ edgeType) {
	g.edges[from] = append(g.edges[from], edge{typ: typ, to: to})
}
