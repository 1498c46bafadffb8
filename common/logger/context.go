package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every log record emitted with a context that carries them.
type LogFields struct {
	RequestID *string // Set by the HTTP request-id middleware
	Table     *string // Backend record table, e.g. "feedback_post_c"
	RecordID  *int64  // Record being read or mutated
	Component string  // e.g. "relay.service.roadmap"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, newer non-nil/non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored in ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.Table != nil {
		result.Table = next.Table
	}
	if next.RecordID != nil {
		result.RecordID = next.RecordID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

func (f LogFields) attrs() []slog.Attr {
	var out []slog.Attr
	if f.RequestID != nil {
		out = append(out, slog.String("request_id", *f.RequestID))
	}
	if f.Table != nil {
		out = append(out, slog.String("table", *f.Table))
	}
	if f.RecordID != nil {
		out = append(out, slog.Int64("record_id", *f.RecordID))
	}
	if f.Component != "" {
		out = append(out, slog.String("component", f.Component))
	}
	return out
}

// Ptr returns a pointer to v, for setting LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate cuts s to maxLen bytes, appending "..." if it was longer.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
