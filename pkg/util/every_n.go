// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package util

import (
	"time"

	"github.com/cockroachdb/cmpgraph/pkg/util/syncutil"
)

// EveryN provides a way to rate limit spammy events. It tracks how recently a
// given event has occurred so that it can determine whether it's worth
// handling again.
//
// The zero value for EveryN is usable and is equivalent to Every(0), meaning
// that all calls to ShouldProcess will return true.
//
// NOTE: If you specifically care about log messages, you should use the
// version of this in the log package, as it integrates with the verbosity
// level.
type EveryN struct {
	// N is the minimum duration of time between processed events.
	N time.Duration

	mu struct {
		syncutil.Mutex
		lastProcessed time.Time
		// suppressed counts the events dropped since the last processed one.
		suppressed int
	}
}

// Every is a convenience constructor for an EveryN object that allows an
// event every n duration.
func Every(n time.Duration) EveryN {
	return EveryN{N: n}
}

// ShouldProcess returns whether it's been more than N time since the last event.
func (e *EveryN) ShouldProcess(now time.Time) bool {
	ok, _ := e.ShouldProcessWithSuppressed(now)
	return ok
}

// ShouldProcessWithSuppressed is like ShouldProcess, but when it returns true
// it also returns the number of events that were dropped since the previous
// processed one.
func (e *EveryN) ShouldProcessWithSuppressed(now time.Time) (bool, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mu.lastProcessed.IsZero() || now.Sub(e.mu.lastProcessed) >= e.N {
		e.mu.lastProcessed = now
		suppressed := e.mu.suppressed
		e.mu.suppressed = 0
		return true, suppressed
	}
	e.mu.suppressed++
	return false, 0
}
