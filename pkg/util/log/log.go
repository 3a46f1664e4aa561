// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log provides the context-aware logging entry points used by the
// optimizer packages. Messages carry the logging tags of the context they are
// emitted under and are built with redaction markers, so that user data (for
// example the text of a SQL expression) can be told apart from safe values.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Severity is the severity level of a log entry.
type Severity int32

const (
	// SeverityInfo is used for informational messages.
	SeverityInfo Severity = iota + 1
	// SeverityWarning is used for unexpected conditions that do not prevent
	// the caller from making progress.
	SeverityWarning
	// SeverityError is used for failures.
	SeverityError
)

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var logging struct {
	verbosity  atomic.Int32
	redactable atomic.Bool
	logger     atomic.Pointer[slog.Logger]
}

func init() {
	logging.logger.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// SetHandler redirects all log output to the given handler and returns a
// function that restores the previous one.
func SetHandler(h slog.Handler) (restore func()) {
	prev := logging.logger.Swap(slog.New(h))
	return func() { logging.logger.Store(prev) }
}

// SetVerbosity sets the level up to which V returns true and returns a
// function that restores the previous level.
func SetVerbosity(level int32) (restore func()) {
	prev := logging.verbosity.Swap(level)
	return func() { logging.verbosity.Store(prev) }
}

// SetRedactable controls whether emitted messages keep their redaction
// markers. When false, markers are stripped before the message is handed to
// the handler.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityInfo, 1, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityWarning, 1, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityError, 1, format, args)
}

// VEventf logs an INFO message if the verbosity is at least the given level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, SeverityInfo, 1, format, args)
	}
}
