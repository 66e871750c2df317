// Package logging assembles structured slog loggers and formatting helpers used
// across vidcrop.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so every line logged while
// serving a crop request carries the same request_id and stage. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
