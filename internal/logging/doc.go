// Package logging assembles the structured slog loggers used across the
// application.
//
// It owns the console and JSON handler wiring and centralizes level and
// output plumbing so every component emits data with the same shape. Prefer
// these constructors over hand-rolled slog setup; NewNop covers tests and
// wiring code that cannot fail.
package logging
