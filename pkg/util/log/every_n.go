// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"time"

	"github.com/cockroachdb/cmpgraph/pkg/util"
)

// EveryN provides a way to rate limit spammy log messages. It tracks how
// recently a given log message has been emitted so that it can determine
// whether it's worth logging again.
type EveryN struct {
	util.EveryN
}

// Every is a convenience constructor for an EveryN object that allows a log
// message every n duration.
func Every(n time.Duration) EveryN {
	return EveryN{EveryN: util.Every(n)}
}

// ShouldLog returns whether it's been more than N time since the last event.
func (e *EveryN) ShouldLog() bool {
	ok, _ := e.ShouldLogWithSuppressed()
	return ok
}

// ShouldLogWithSuppressed is like ShouldLog but also returns how many
// messages were dropped since the last one that was let through.
func (e *EveryN) ShouldLogWithSuppressed() (bool, int) {
	if V(2) {
		// Always log when high verbosity is desired.
		return true, 0
	}
	return e.ShouldProcessWithSuppressed(time.Now())
}
