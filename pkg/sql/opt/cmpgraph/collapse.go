// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import "github.com/cockroachdb/errors"

// postOrder returns all vertices of the fact graph in the order in which a
// depth-first search over the forward edges finishes them. The search uses an
// explicit stack so that long chains of facts cannot exhaust the goroutine
// stack.
func (g *factGraph) postOrder() []vertexIndex {
	type frame struct {
		v    vertexIndex
		next int
	}
	order := make([]vertexIndex, 0, len(g.exprs))
	visited := make([]bool, len(g.exprs))
	var stack []frame
	for root := range g.exprs {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack = append(stack, frame{v: vertexIndex(root)})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.edges[top.v]) {
				to := g.edges[top.v][top.next].to
				top.next++
				if !visited[to] {
					visited[to] = true
					stack = append(stack, frame{v: to})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// reversed returns the adjacency lists of the fact graph with every edge
// flipped. Edge types do not matter for finding components.
func (g *factGraph) reversed() [][]vertexIndex {
	rev := make([][]vertexIndex, len(g.exprs))
	for from := range g.edges {
		for _, e := range g.edges[from] {
			rev[e.to] = append(rev[e.to], vertexIndex(from))
		}
	}
	return rev
}

// components assigns every vertex to its strongly connected component. It
// visits vertices in reverse finishing order and floods the reversed graph
// from each unassigned one, never crossing into an already assigned
// component.
//
// The first component found is a source of the condensed graph, so the
// component ids are a topological order of it: every edge between two
// different components goes from the lower id to the higher one.
func (g *factGraph) components(order []vertexIndex) (comp []classID, numComponents int) {
	const unassigned = classID(-1)
	rev := g.reversed()
	comp = make([]classID, len(g.exprs))
	for i := range comp {
		comp[i] = unassigned
	}
	var stack []vertexIndex
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if comp[root] != unassigned {
			continue
		}
		c := classID(numComponents)
		numComponents++
		comp[root] = c
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, from := range rev[v] {
				if comp[from] == unassigned {
					comp[from] = c
					stack = append(stack, from)
				}
			}
		}
	}
	return comp, numComponents
}

// collapse merges every strongly connected component of the fact graph into
// one equivalence class and re-targets the edges onto the classes.
//
// Edges inside a class are dropped. When one of them is strict, the facts
// asserted something like a < b and b <= a. The class is kept merged, but it
// is marked as contradictory.
func (g *factGraph) collapse() *Graph {
	comp, numClasses := g.components(g.postOrder())

	res := &Graph{
		classes:     make([]class, numClasses),
		edges:       make([][]classEdge, numClasses),
		index:       make(map[uint64]lookupEntry, len(g.index)),
		numVertices: len(g.exprs),
	}
	for v, e := range g.exprs {
		c := &res.classes[comp[v]]
		c.members = append(c.members, e)
	}
	for hash, v := range g.index {
		res.index[hash] = lookupEntry{expr: g.exprs[v], class: comp[v]}
	}
	for from := range g.edges {
		for _, e := range g.edges[from] {
			src, dst := comp[from], comp[e.to]
			if src == dst {
				if e.typ == lessEdge {
					res.classes[src].contradictory = true
				}
				continue
			}
			if e.typ == equalEdge {
				panic(errors.AssertionFailedf(
					"equality edge between distinct classes %d and %d", src, dst))
			}
			res.edges[src] = append(res.edges[src], classEdge{typ: e.typ, to: dst})
			res.numEdges++
		}
	}

	for i := range res.classes {
		if res.classes[i].contradictory {
			g.observer.StrictCycleCollapsed(res.classes[i].members)
		}
	}
	g.observer.CollapseFinished(res.numVertices, numClasses, res.numEdges)
	return res
}
