// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cmpgraph

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// catchGraphError converts a value recovered from a panic raised while
// building a graph into an error. Construction propagates failures internally
// as panics, which is only safe because it touches no shared state and takes
// no locks.
//
// Panics raised by the Expr implementation are returned as-is if they are
// errors. Panics that are not errors are re-raised, since they usually mean
// the process is in a state it cannot recover from.
func catchGraphError(r interface{}) error {
	if r == nil {
		return nil
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	if errors.HasInterface(err, (*runtime.Error)(nil)) {
		// Convert runtime errors to assertion failures, which include stacks.
		return errors.HandleAsAssertionFailure(err)
	}
	return err
}
