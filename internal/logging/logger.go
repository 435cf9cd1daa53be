// Package logging defines the structured-logging interface used across the
// vault. The variadic args are key–value pairs:
//
//	log.Info(ctx, "upload complete", "cid", cid, "size", n)
package logging

import "context"

// Logger is a context-aware structured logger.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
