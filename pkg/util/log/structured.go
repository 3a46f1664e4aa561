// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, true /* brackets */, &buf)
	fmt.Fprintf(&buf, format, args...)
	return buf.String()
}

// formatTags appends the context tags to buf, as "k1=v1,k2" or
// "[k1=v1,k2] " when brackets is set. Nothing is written when the context
// carries no tags.
func formatTags(ctx context.Context, brackets bool, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil || len(tags.Get()) == 0 {
		return
	}
	if brackets {
		buf.WriteByte('[')
	}
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.Value(); v != nil {
			if len(t.Key()) > 1 {
				buf.WriteByte('=')
			}
			fmt.Fprint(buf, v)
		}
	}
	if brackets {
		buf.WriteString("] ")
	}
}

// addStructured creates a structured log entry and hands it to the current
// handler. The context tags are attached both as a message prefix and as
// individual attributes.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	logger := logging.logger.Load()
	if !logger.Enabled(ctx, sev.level()) {
		return
	}

	msg := redact.Sprintf(format, args...)
	var text string
	if logging.redactable.Load() {
		text = string(msg)
	} else {
		text = msg.StripMarkers()
	}

	var buf strings.Builder
	formatTags(ctx, true /* brackets */, &buf)
	buf.WriteString(text)

	attrs := []slog.Attr{slog.String("severity", sev.String())}
	if tags := logtags.FromContext(ctx); tags != nil {
		for _, t := range tags.Get() {
			attrs = append(attrs, slog.Any("tag."+t.Key(), t.Value()))
		}
	}
	logger.LogAttrs(ctx, sev.level(), buf.String(), attrs...)
}
