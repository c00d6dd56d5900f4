// Package logging is the structured logger shared by the server, the
// inventory engine and the client, with a log/slog backend.
package logging

import "context"

// Logger writes leveled messages followed by alternating key/value pairs:
//
//	logger.Info(ctx, "item added", "owner_id", ownerID, "item_id", item.ID)
//
// Components usually hold a child from With("module", name).
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
