// Package analysis orchestrates a complete review analysis run for one
// subject: review loading and cleaning, readiness checks, batch labelling,
// result and diagnostic files, aggregation, the optional prose summary and
// the final JSON report. RunMany drives several subjects against a shared
// Tally.
package analysis
