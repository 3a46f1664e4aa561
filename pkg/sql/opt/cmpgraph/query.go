// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import "math"

// Compare returns the strongest relationship between left and right that
// follows from the facts. It returns Unknown if either expression was not
// part of an accepted fact, or if the facts do not order the two.
func (g *Graph) Compare(left, right Expr) Result {
	l, ok := g.classOf(left)
	if !ok {
		return Unknown
	}
	r, ok := g.classOf(right)
	if !ok {
		return Unknown
	}
	if l == r {
		return Equal
	}

	if found, strict := g.reach(l, r); found {
		if strict {
			return Greater
		}
		return GreaterOrEqual
	}
	if found, strict := g.reach(r, l); found {
		if strict {
			return Less
		}
		return LessOrEqual
	}
	return Unknown
}

// EqualSet returns all expressions that are known to be equal to e, including
// the stored copy of e itself. It returns nil if e was not part of an accepted
// fact. The returned slice belongs to the caller.
func (g *Graph) EqualSet(e Expr) []Expr {
	c, ok := g.classOf(e)
	if !ok {
		return nil
	}
	members := g.classes[c].members
	res := make([]Expr, len(members))
	copy(res, members)
	return res
}

// Implies returns true if the facts prove that the given fact holds. A filter
// that is implied by the other filters can be removed.
func (g *Graph) Implies(f Fact) bool {
	if !f.Op.valid() {
		return false
	}
	f = Normalize(f)
	switch res := g.Compare(f.Left, f.Right); f.Op {
	case EqOp:
		return res == Equal
	case LtOp:
		return res == Less
	case LeOp:
		return res == Less || res == LessOrEqual || res == Equal
	}
	return false
}

// Contradicts returns true if the facts prove that the given fact cannot
// hold. A filter that contradicts the other filters makes the whole
// conjunction false.
func (g *Graph) Contradicts(f Fact) bool {
	if !f.Op.valid() {
		return false
	}
	f = Normalize(f)
	switch res := g.Compare(f.Left, f.Right); f.Op {
	case EqOp:
		return res == Less || res == Greater
	case LtOp:
		return res == Equal || res == Greater || res == GreaterOrEqual
	case LeOp:
		return res == Greater
	}
	return false
}

// reach searches for a path from start to finish. It returns whether finish is
// reachable, and whether the cheapest path has a negative weight, i.e. proves
// start > finish rather than start >= finish.
//
// This is a Bellman-Ford search bounded to one round per class. Since the
// classes are numbered in topological order, the first round normally settles
// every distance and the second one only confirms it.
func (g *Graph) reach(start, finish classID) (found, strict bool) {
	const inf = math.MaxInt64
	dist := make([]int64, len(g.classes))
	for i := range dist {
		dist[i] = inf
	}
	dist[start] = 0

	for round := 0; round < len(g.classes); round++ {
		relaxed := false
		for v := range g.edges {
			if dist[v] == inf {
				continue
			}
			for _, e := range g.edges[v] {
				if d := dist[v] + e.typ.weight(); d < dist[e.to] {
					dist[e.to] = d
					relaxed = true
				}
			}
		}
		if !relaxed && !g.knobs.DisableEarlyRelaxationExit {
			break
		}
	}
	return dist[finish] != inf, dist[finish] < 0
}
