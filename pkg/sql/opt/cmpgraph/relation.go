// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Expr is a handle to a scalar expression owned by the caller. The graph
// stores handles and returns them from EqualSet, so they must stay valid (or
// be values) for as long as the Graph is in use.
type Expr interface {
	// Hash returns a structural hash of the expression. Structurally identical
	// expressions must hash equally; unequal expressions may collide.
	Hash() uint64
	// Equals returns true if the two expressions are exactly the same,
	// including any disambiguator the caller cares about (e.g. the output
	// column name).
	Equals(other Expr) bool
}

// Op is the comparison operator of a Fact.
type Op uint8

const (
	// EqOp is "left = right".
	EqOp Op = iota + 1
	// LtOp is "left < right".
	LtOp
	// LeOp is "left <= right".
	LeOp
	// GtOp is "left > right". It never survives normalization.
	GtOp
	// GeOp is "left >= right". It never survives normalization.
	GeOp
)

func (op Op) String() string {
	switch op {
	case EqOp:
		return "="
	case LtOp:
		return "<"
	case LeOp:
		return "<="
	case GtOp:
		return ">"
	case GeOp:
		return ">="
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Op) SafeValue() {}

var _ redact.SafeValue = Op(0)

// Fact is an atomic comparison between two expressions that is known to hold.
type Fact struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (f Fact) String() string {
	return fmt.Sprintf("%v %s %v", f.Left, f.Op, f.Right)
}

// SafeFormat implements the redact.SafeFormatter interface. The operands are
// user data and stay redactable.
func (f Fact) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%v %s %v", f.Left, f.Op, f.Right)
}

// Normalize rewrites a fact so that its operator is one of EqOp, LtOp or
// LeOp. GtOp and GeOp are turned into LtOp and LeOp by swapping the operands;
// the other operators are returned unchanged.
func Normalize(f Fact) Fact {
	switch f.Op {
	case EqOp, LtOp, LeOp:
		return f
	case GtOp:
		return Fact{Op: LtOp, Left: f.Right, Right: f.Left}
	case GeOp:
		return Fact{Op: LeOp, Left: f.Right, Right: f.Left}
	default:
		panic(errors.AssertionFailedf("unknown comparison operator: %s", f.Op))
	}
}

// Result is the provable relationship between a left and a right expression,
// as returned by Graph.Compare.
type Result uint8

const (
	// Unknown means that nothing can be proven about the two expressions.
	Unknown Result = iota
	// Equal means left = right.
	Equal
	// Less means left < right.
	Less
	// LessOrEqual means left <= right.
	LessOrEqual
	// Greater means left > right.
	Greater
	// GreaterOrEqual means left >= right.
	GreaterOrEqual
)

func (r Result) String() string {
	switch r {
	case Unknown:
		return "UNKNOWN"
	case Equal:
		return "EQUAL"
	case Less:
		return "LESS"
	case LessOrEqual:
		return "LESS_OR_EQUAL"
	case Greater:
		return "GREATER"
	case GreaterOrEqual:
		return "GREATER_OR_EQUAL"
	default:
		return fmt.Sprintf("Result(%d)", r)
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Result) SafeValue() {}

var _ redact.SafeValue = Result(0)

// Commute returns the result of the comparison with its operands swapped.
func (r Result) Commute() Result {
	switch r {
	case Less:
		return Greater
	case LessOrEqual:
		return GreaterOrEqual
	case Greater:
		return Less
	case GreaterOrEqual:
		return LessOrEqual
	default:
		return r
	}
}

func (op Op) valid() bool {
	return op >= EqOp && op <= GeOp
}
