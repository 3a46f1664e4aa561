// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph_test

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/testutils/testexpr"
	"github.com/cockroachdb/cmpgraph/pkg/testutils/echotest"
	"github.com/cockroachdb/cmpgraph/pkg/util/log"
	"github.com/cockroachdb/cmpgraph/pkg/util/syncutil"
	"github.com/stretchr/testify/require"
)

// recordingHandler is a slog.Handler that keeps one line per record, made of
// the record's severity and message.
type recordingHandler struct {
	mu struct {
		syncutil.Mutex
		lines []string
	}
}

var _ slog.Handler = (*recordingHandler)(nil)

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	severity := r.Level.String()
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "severity" {
			severity = a.Value.String()
			return false
		}
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mu.lines = append(h.mu.lines, fmt.Sprintf("%s %s", severity, r.Message))
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return strings.Join(h.mu.lines, "\n")
}

func (h *recordingHandler) count(substr string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, l := range h.mu.lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func TestLogObserver(t *testing.T) {
	parse := func(s string) cmpgraph.Fact {
		f, err := testexpr.ParseFact(s)
		require.NoError(t, err)
		return f
	}

	t.Run("trace", func(t *testing.T) {
		var h recordingHandler
		defer log.SetHandler(&h)()
		defer log.SetVerbosity(2)()

		_, err := cmpgraph.New([]cmpgraph.Fact{
			parse("a < b"),
			parse("b <= c"),
			parse("c <= a"),
			parse("x#5 = y#5"),
			parse("d > c"),
		}, cmpgraph.Config{Observer: cmpgraph.NewLogObserver(context.Background())})
		require.NoError(t, err)
		echotest.Require(t, h.String(), filepath.Join("testdata", "echotest", "log_observer"))
	})

	t.Run("quiet", func(t *testing.T) {
		var h recordingHandler
		defer log.SetHandler(&h)()
		defer log.SetVerbosity(0)()

		g, err := cmpgraph.New([]cmpgraph.Fact{
			parse("a#1 < b"),
			parse("c#1 < b"),
			parse("d#1 < b"),
		}, cmpgraph.Config{Observer: cmpgraph.NewLogObserver(context.Background())})
		require.NoError(t, err)
		require.Equal(t, 2, g.NumVertices())

		// Accepted facts and the summary need verbosity, and the second skipped
		// fact falls within the rate limit of the first.
		require.Equal(t, 0, h.count("accepted"))
		require.Equal(t, 0, h.count("collapsed"))
		require.Equal(t, 1, h.count("skipped"))
		require.Equal(t, 1, h.count("c#1 < b"))
	})
}

// countingObserver counts the events of graph construction.
type countingObserver struct {
	accepted, skipped, cycles int
	vertices, classes, edges  int
}

func (o *countingObserver) FactAccepted(cmpgraph.Fact)               { o.accepted++ }
func (o *countingObserver) FactSkipped(cmpgraph.Fact, cmpgraph.Expr) { o.skipped++ }
func (o *countingObserver) StrictCycleCollapsed([]cmpgraph.Expr)     { o.cycles++ }

func (o *countingObserver) CollapseFinished(vertices, classes, edges int) {
	o.vertices, o.classes, o.edges = vertices, classes, edges
}

func TestObserverDoesNotChangeResults(t *testing.T) {
	a, b, c := testexpr.New("a"), testexpr.New("b"), testexpr.New("c")
	a2 := a.WithHash(b.Hash())
	facts := []cmpgraph.Fact{
		fact(cmpgraph.LtOp, a, b),
		fact(cmpgraph.LtOp, b, a),
		fact(cmpgraph.LeOp, b, c),
		fact(cmpgraph.EqOp, a2, c),
	}

	var o countingObserver
	observed := mustBuild(t, facts, cmpgraph.Config{Observer: &o})
	plain := mustBuild(t, facts, cmpgraph.Config{})
	require.Equal(t, plain.String(), observed.String())
	require.Equal(t, countingObserver{
		accepted: 3, skipped: 1, cycles: 1, vertices: 3, classes: 2, edges: 1,
	}, o)
}
