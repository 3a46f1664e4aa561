// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import (
	"context"
	"time"

	"github.com/cockroachdb/cmpgraph/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// Observer receives diagnostic events while a Graph is built. Implementations
// must not retain or mutate the slices they are passed. Events never affect
// the constructed graph.
type Observer interface {
	// FactAccepted is called for every fact that contributed edges to the
	// graph. The fact is already normalized.
	FactAccepted(f Fact)
	// FactSkipped is called for a fact that could not be represented because
	// the given operand collides on hash with a different expression.
	FactSkipped(f Fact, unresolved Expr)
	// StrictCycleCollapsed is called when a cycle containing a strict
	// comparison is merged into one equivalence class. Such a cycle means the
	// input facts contradict each other.
	StrictCycleCollapsed(members []Expr)
	// CollapseFinished is called once, after the equivalence classes have
	// been computed.
	CollapseFinished(vertices, classes, edges int)
}

type noopObserver struct{}

func (noopObserver) FactAccepted(Fact)              {}
func (noopObserver) FactSkipped(Fact, Expr)         {}
func (noopObserver) StrictCycleCollapsed([]Expr)    {}
func (noopObserver) CollapseFinished(int, int, int) {}

// LogObserver is an Observer that reports events to the log. Skipped facts
// are rate limited, since a pathological input can produce many of them.
type LogObserver struct {
	ctx     context.Context
	skipped log.EveryN
}

var _ Observer = (*LogObserver)(nil)

// NewLogObserver returns an Observer that logs under the tags of ctx, with an
// additional "cmpgraph" tag.
func NewLogObserver(ctx context.Context) *LogObserver {
	return &LogObserver{
		ctx:     logtags.AddTag(ctx, "cmpgraph", nil),
		skipped: log.Every(time.Second),
	}
}

// FactAccepted is part of the Observer interface.
func (o *LogObserver) FactAccepted(f Fact) {
	log.VEventf(o.ctx, 2, "accepted fact: %s", f)
}

// FactSkipped is part of the Observer interface.
func (o *LogObserver) FactSkipped(f Fact, unresolved Expr) {
	if ok, suppressed := o.skipped.ShouldLogWithSuppressed(); ok {
		log.Infof(o.ctx, "skipped fact %s: %v collides with a different expression (%d similar messages suppressed)",
			f, unresolved, suppressed)
	}
}

// StrictCycleCollapsed is part of the Observer interface.
func (o *LogObserver) StrictCycleCollapsed(members []Expr) {
	log.Warningf(o.ctx, "contradictory strict comparisons merged into one class: %v", members)
}

// CollapseFinished is part of the Observer interface.
func (o *LogObserver) CollapseFinished(vertices, classes, edges int) {
	log.VEventf(o.ctx, 1, "collapsed %d expressions into %d classes with %d edges",
		vertices, classes, edges)
}
