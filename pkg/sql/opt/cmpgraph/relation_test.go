// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph_test

import (
	"testing"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/testutils/testexpr"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	a, b := testexpr.New("a"), testexpr.New("b")
	testCases := []struct {
		in       cmpgraph.Fact
		expected cmpgraph.Fact
	}{
		{
			in:       cmpgraph.Fact{Op: cmpgraph.EqOp, Left: a, Right: b},
			expected: cmpgraph.Fact{Op: cmpgraph.EqOp, Left: a, Right: b},
		},
		{
			in:       cmpgraph.Fact{Op: cmpgraph.LtOp, Left: a, Right: b},
			expected: cmpgraph.Fact{Op: cmpgraph.LtOp, Left: a, Right: b},
		},
		{
			in:       cmpgraph.Fact{Op: cmpgraph.LeOp, Left: a, Right: b},
			expected: cmpgraph.Fact{Op: cmpgraph.LeOp, Left: a, Right: b},
		},
		{
			in:       cmpgraph.Fact{Op: cmpgraph.GtOp, Left: a, Right: b},
			expected: cmpgraph.Fact{Op: cmpgraph.LtOp, Left: b, Right: a},
		},
		{
			in:       cmpgraph.Fact{Op: cmpgraph.GeOp, Left: a, Right: b},
			expected: cmpgraph.Fact{Op: cmpgraph.LeOp, Left: b, Right: a},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.in.String(), func(t *testing.T) {
			actual := cmpgraph.Normalize(tc.in)
			require.Equal(t, tc.expected.Op, actual.Op)
			require.Same(t, tc.expected.Left, actual.Left)
			require.Same(t, tc.expected.Right, actual.Right)
		})
	}
}

func TestNormalizeInvalidOp(t *testing.T) {
	a, b := testexpr.New("a"), testexpr.New("b")
	require.Panics(t, func() {
		cmpgraph.Normalize(cmpgraph.Fact{Left: a, Right: b})
	})

	// New reports the invalid operator as an error instead.
	g, err := cmpgraph.New([]cmpgraph.Fact{{Op: cmpgraph.Op(42), Left: a, Right: b}}, cmpgraph.Config{})
	require.Nil(t, g)
	require.True(t, errors.HasAssertionFailure(err), "%+v", err)
	require.Contains(t, err.Error(), "Op(42)")
}

func TestOpString(t *testing.T) {
	require.Equal(t, "=", cmpgraph.EqOp.String())
	require.Equal(t, "<", cmpgraph.LtOp.String())
	require.Equal(t, "<=", cmpgraph.LeOp.String())
	require.Equal(t, ">", cmpgraph.GtOp.String())
	require.Equal(t, ">=", cmpgraph.GeOp.String())
	require.Equal(t, "Op(0)", cmpgraph.Op(0).String())
}

func TestResult(t *testing.T) {
	testCases := []struct {
		res      cmpgraph.Result
		str      string
		commuted cmpgraph.Result
	}{
		{res: cmpgraph.Unknown, str: "UNKNOWN", commuted: cmpgraph.Unknown},
		{res: cmpgraph.Equal, str: "EQUAL", commuted: cmpgraph.Equal},
		{res: cmpgraph.Less, str: "LESS", commuted: cmpgraph.Greater},
		{res: cmpgraph.LessOrEqual, str: "LESS_OR_EQUAL", commuted: cmpgraph.GreaterOrEqual},
		{res: cmpgraph.Greater, str: "GREATER", commuted: cmpgraph.Less},
		{res: cmpgraph.GreaterOrEqual, str: "GREATER_OR_EQUAL", commuted: cmpgraph.LessOrEqual},
	}
	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			require.Equal(t, tc.str, tc.res.String())
			require.Equal(t, tc.commuted, tc.res.Commute())
			require.Equal(t, tc.res, tc.res.Commute().Commute())
		})
	}
}

func TestRedaction(t *testing.T) {
	f := cmpgraph.Fact{Op: cmpgraph.LeOp, Left: testexpr.New("a"), Right: testexpr.New("b")}
	require.Equal(t, "a <= b", f.String())
	require.EqualValues(t, "‹a› <= ‹b›", redact.Sprint(f))
	require.EqualValues(t, "GREATER_OR_EQUAL", redact.Sprint(cmpgraph.GreaterOrEqual))
}
