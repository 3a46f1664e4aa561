// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/testutils/testexpr"
	"github.com/olekukonko/tablewriter"
)

// ResultSymbol returns the comparison operator that corresponds to a result,
// or "?" for Unknown.
func ResultSymbol(r cmpgraph.Result) string {
	switch r {
	case cmpgraph.Equal:
		return "="
	case cmpgraph.Less:
		return "<"
	case cmpgraph.LessOrEqual:
		return "<="
	case cmpgraph.Greater:
		return ">"
	case cmpgraph.GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// FormatMatrix formats the result of comparing every expression (rows)
// against every expression (columns), e.g.:
//
//	   a  b  c
//	a  =  <  <
//	b  >  =  <=
//	c  >  >= =
func FormatMatrix(g *cmpgraph.Graph, exprs []*testexpr.Expr) string {
	cells := make([][]string, len(exprs)+1)
	cells[0] = make([]string, len(exprs)+1)
	for j, e := range exprs {
		cells[0][j+1] = e.String()
	}
	for i, left := range exprs {
		row := make([]string, len(exprs)+1)
		row[0] = left.String()
		for j, right := range exprs {
			row[j+1] = ResultSymbol(g.Compare(left, right))
		}
		cells[i+1] = row
	}

	widths := make([]int, len(exprs)+1)
	for _, row := range cells {
		for j, cell := range row {
			if w := tablewriter.DisplayWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range cells {
		var line strings.Builder
		for j, cell := range row {
			if j > 0 {
				line.WriteString("  ")
			}
			line.WriteString(tablewriter.PadRight(cell, " ", widths[j]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatExprs formats a list of expressions as "[a, b]", sorted so that the
// output does not depend on the order in which facts were given.
func FormatExprs(exprs []cmpgraph.Expr) string {
	strs := make([]string, len(exprs))
	for i, e := range exprs {
		strs[i] = fmt.Sprint(e)
	}
	sort.Strings(strs)
	return "[" + strings.Join(strs, ", ") + "]"
}
