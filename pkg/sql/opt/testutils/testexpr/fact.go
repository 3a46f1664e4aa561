// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testexpr

import (
	"strings"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/errors"
)

// ParseFact parses a comparison such as "a < f(b)" or "x AS p >= 1".
func ParseFact(s string) (cmpgraph.Fact, error) {
	pos, width, op, err := findOperator(s)
	if err != nil {
		return cmpgraph.Fact{}, err
	}
	left, err := Parse(s[:pos])
	if err != nil {
		return cmpgraph.Fact{}, errors.Wrapf(err, "left side of %q", s)
	}
	right, err := Parse(s[pos+width:])
	if err != nil {
		return cmpgraph.Fact{}, errors.Wrapf(err, "right side of %q", s)
	}
	return cmpgraph.Fact{Op: op, Left: left, Right: right}, nil
}

// ParseFacts parses one fact per non-empty line.
func ParseFacts(input string) ([]cmpgraph.Fact, error) {
	var facts []cmpgraph.Fact
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f, err := ParseFact(line)
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, nil
}

// findOperator locates the single comparison operator of a fact, outside of
// any parentheses.
func findOperator(s string) (pos, width int, op cmpgraph.Op, _ error) {
	pos = -1
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		case '<', '>', '=', '!':
		default:
			continue
		}
		if depth != 0 {
			return 0, 0, 0, errors.Newf("comparison inside parentheses in %q", s)
		}
		if pos >= 0 {
			return 0, 0, 0, errors.Newf("more than one comparison in %q", s)
		}
		pos, width = i, 1
		next := byte(0)
		if i+1 < len(s) {
			next = s[i+1]
		}
		switch {
		case s[i] == '<' && next == '=':
			op, width = cmpgraph.LeOp, 2
		case s[i] == '>' && next == '=':
			op, width = cmpgraph.GeOp, 2
		case s[i] == '<':
			op = cmpgraph.LtOp
		case s[i] == '>':
			op = cmpgraph.GtOp
		case s[i] == '=':
			op = cmpgraph.EqOp
		default:
			return 0, 0, 0, errors.Newf("unsupported comparison in %q", s)
		}
		i += width - 1
	}
	if pos < 0 {
		return 0, 0, 0, errors.Newf("no comparison in %q", s)
	}
	return pos, width, op, nil
}
