// Package main hosts the reviewlens CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into analysis runs
// (classify, annotate, batch), offline re-aggregation of result files,
// vocabulary inspection, service health checks and configuration
// scaffolding. It centralizes configuration resolution and logger setup so
// subcommands only translate flags into analysis requests.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
