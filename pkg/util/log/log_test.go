// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

// captureLogs redirects log output into a buffer for the duration of the
// test.
func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	t.Cleanup(SetHandler(h))
	return &buf
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "hello 1", FormatWithContextTags(ctx, "hello %d", 1))

	ctx = logtags.AddTag(ctx, "n", 1)
	ctx = logtags.AddTag(ctx, "cmpgraph", nil)
	ctx = logtags.AddTag(ctx, "facts", 12)
	require.Equal(t, "[n1,cmpgraph,facts=12] hello", FormatWithContextTags(ctx, "hello"))
}

func TestSeverities(t *testing.T) {
	buf := captureLogs(t)
	ctx := logtags.AddTag(context.Background(), "opt", nil)

	Infof(ctx, "info %d", 1)
	Warningf(ctx, "warn %d", 2)
	Errorf(ctx, "error %d", 3)

	out := buf.String()
	require.Contains(t, out, `level=INFO msg="[opt] info 1" severity=INFO`)
	require.Contains(t, out, `level=WARN msg="[opt] warn 2" severity=WARNING`)
	require.Contains(t, out, `level=ERROR msg="[opt] error 3" severity=ERROR`)
}

func TestVEventf(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()

	VEventf(ctx, 2, "hidden")
	require.Empty(t, buf.String())

	defer SetVerbosity(2)()
	require.True(t, V(1))
	require.True(t, V(2))
	require.False(t, V(3))
	VEventf(ctx, 2, "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestRedactable(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()

	defer SetRedactable(false)
	SetRedactable(true)
	Infof(ctx, "expr %s is %s", "secret", redact.Safe("safe"))
	require.Contains(t, buf.String(), "expr ‹secret› is safe")

	buf.Reset()
	SetRedactable(false)
	Infof(ctx, "expr %s is %s", "secret", redact.Safe("safe"))
	require.Contains(t, buf.String(), "expr secret is safe")
}

func TestEveryN(t *testing.T) {
	every := Every(time.Hour)
	require.True(t, every.ShouldLog())
	require.False(t, every.ShouldLog())
	require.False(t, every.ShouldLog())

	// High verbosity disables rate limiting.
	defer SetVerbosity(2)()
	ok, suppressed := every.ShouldLogWithSuppressed()
	require.True(t, ok)
	require.Zero(t, suppressed)
}
