// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package echotest compares strings produced by a test against golden files
// in the datadriven format, so that they can be regenerated with -rewrite.
package echotest

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// Require checks that the string matches what is found in the file located at
// the provided path. The file must follow the datadriven format:
//
// echo
// ----
// <output of exp>
//
// The contents of the file can be updated automatically using datadriven's
// -rewrite flag.
func Require(t *testing.T, act, path string) {
	t.Helper()
	var ran bool
	datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "echo" {
			return "only 'echo' is supported"
		}
		ran = true
		return act
	})
	if !ran {
		// Guard against a possible error in which the file is created, then datadriven
		// is invoked with -rewrite to seed it (which it does not do, since there is
		// no directive in the file), and then also the tests pass despite not checking
		// anything.
		t.Errorf("no tests run for %s, is the file empty?", path)
	}
}

// Walker maps subtest names to golden files in a directory, one file per
// subtest.
type Walker struct {
	dir string
}

// NewWalker returns a Walker rooted at dir.
func NewWalker(t *testing.T, dir string) *Walker {
	t.Helper()
	return &Walker{dir: dir}
}

// Run returns a subtest body that computes the actual output with fn and
// compares it against the golden file <dir>/<name>.
func (w *Walker) Run(t *testing.T, name string, fn func(t *testing.T) string) func(*testing.T) {
	return func(t *testing.T) {
		Require(t, fn(t), filepath.Join(w.dir, name))
	}
}
