// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import "github.com/cockroachdb/errors"

// CheckEdgeOrder returns an error if any edge of the graph goes from a class
// to a class with an equal or lower id.
func (g *Graph) CheckEdgeOrder() error {
	for from := range g.edges {
		for _, e := range g.edges[from] {
			if classID(from) >= e.to {
				return errors.AssertionFailedf("edge from class %d to class %d", from, e.to)
			}
		}
	}
	return nil
}
