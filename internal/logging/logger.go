// Package logging defines the structured-logging interface used by the feed
// core and two implementations of it, one over log/slog and one over zap.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "post created", "post_id", id, "author_id", authorID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)

	// Warn is for unusual but recoverable conditions, e.g. a corrupt record
	// replaced by its empty default.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
