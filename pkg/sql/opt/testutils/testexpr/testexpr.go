// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package testexpr provides a minimal scalar expression handle for testing
// the comparison graph, together with a parser for comparison facts.
//
// An expression is written as a term, optionally followed by an output
// column name and a forced hash:
//
//	f(a, 1)
//	a AS x
//	b#7
//	c AS y #7
//
// Terms are compared after removing all whitespace. The hash of an expression
// only covers its term, so "a AS x" and "a AS y" collide: they hash equally
// but are not equal. A forced hash ("#7") replaces the structural hash and is
// used to produce collisions between unrelated terms.
package testexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/util"
	"github.com/cockroachdb/errors"
)

// Expr is a scalar expression handle. It is immutable.
type Expr struct {
	term  string
	alias string
	hash  uint64
	// forced is set if the hash was given explicitly.
	forced bool
}

var _ cmpgraph.Expr = (*Expr)(nil)

// New returns the expression for the given term, with a structural hash.
func New(term string) *Expr {
	term = stripSpaces(term)
	return &Expr{term: term, hash: structuralHash(term)}
}

// WithAlias returns a copy of the expression with the given output column
// name. The hash is unchanged.
func (e *Expr) WithAlias(alias string) *Expr {
	res := *e
	res.alias = alias
	return &res
}

// WithHash returns a copy of the expression with a forced hash.
func (e *Expr) WithHash(hash uint64) *Expr {
	res := *e
	res.hash = hash
	res.forced = true
	return &res
}

// Hash is part of the cmpgraph.Expr interface.
func (e *Expr) Hash() uint64 {
	return e.hash
}

// Equals is part of the cmpgraph.Expr interface.
func (e *Expr) Equals(other cmpgraph.Expr) bool {
	o, ok := other.(*Expr)
	if !ok {
		return false
	}
	return e.term == o.term && e.alias == o.alias
}

func (e *Expr) String() string {
	var b strings.Builder
	b.WriteString(e.term)
	if e.alias != "" {
		fmt.Fprintf(&b, " AS %s", e.alias)
	}
	if e.forced {
		fmt.Fprintf(&b, "#%d", e.hash)
	}
	return b.String()
}

func structuralHash(term string) uint64 {
	return util.FNV64AddString(util.FNV64Init(), term)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

var aliasRE = regexp.MustCompile(`(?i)^(.*\S)\s+AS\s+([A-Za-z_][A-Za-z0-9_]*)$`)

// Parse parses a single expression.
func Parse(s string) (*Expr, error) {
	s = strings.TrimSpace(s)
	var hash uint64
	forced := false
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		h, err := strconv.ParseUint(strings.TrimSpace(s[i+1:]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hash in %q", s)
		}
		hash, forced = h, true
		s = strings.TrimSpace(s[:i])
	}

	var alias string
	if m := aliasRE.FindStringSubmatch(s); m != nil {
		s, alias = m[1], m[2]
	}

	if err := checkTerm(s); err != nil {
		return nil, err
	}
	e := New(s)
	if alias != "" {
		e = e.WithAlias(alias)
	}
	if forced {
		e = e.WithHash(hash)
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func checkTerm(s string) error {
	if s == "" {
		return errors.New("empty expression")
	}
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return errors.Newf("unbalanced parentheses in %q", s)
			}
		case '<', '>', '=', '!':
			return errors.Newf("unexpected comparison in expression %q", s)
		}
	}
	if depth != 0 {
		return errors.Newf("unbalanced parentheses in %q", s)
	}
	return nil
}
