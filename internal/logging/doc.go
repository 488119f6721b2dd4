// Package logging assembles structured slog loggers and formatting helpers
// used across packlist.
//
// It owns the console and JSON handlers, resolves level and output plumbing
// from configuration, and exposes helpers that keep warning and error records
// in one shape: event_type, error_hint, and impact travel with every WARN so
// the reader learns the cause, the consequence, and the next step. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
