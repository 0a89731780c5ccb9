// Package logging assembles structured slog loggers for reviewlens commands.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// context helpers that tag log lines with run IDs, subjects, batch indices and
// stages. Helpers accept a nil logger and fall back to one that discards
// everything.
package logging
