// Package logging provides structured logging helpers.
//
// The HTTP middleware stores a request-scoped logger in the context with
// WithLogger; the summary pipeline reads it back with FromContext so every
// entry for one request carries the same request_id.
//
//	logger := logging.WithRequestID(ctx, logging.NewLogger())
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).Info("summary generated", slog.String("provider", "anthropic"))
package logging
