// Copyright 2019 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"testing"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/testutils/testexpr"
)

// BuildGraph parses the input as one fact per line and builds a comparison
// graph from the facts. It also returns every distinct operand of the facts,
// in order of first appearance, including operands of skipped facts.
func BuildGraph(
	t testing.TB, input string, cfg cmpgraph.Config,
) (*cmpgraph.Graph, []*testexpr.Expr) {
	t.Helper()
	facts, err := testexpr.ParseFacts(input)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	g, err := cmpgraph.New(facts, cfg)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return g, Operands(facts)
}

// Operands returns the distinct operands of the given facts, in order of
// first appearance.
func Operands(facts []cmpgraph.Fact) []*testexpr.Expr {
	var res []*testexpr.Expr
	add := func(e cmpgraph.Expr) {
		for _, seen := range res {
			if seen.Equals(e) {
				return
			}
		}
		res = append(res, e.(*testexpr.Expr))
	}
	for _, f := range facts {
		add(f.Left)
		add(f.Right)
	}
	return res
}
