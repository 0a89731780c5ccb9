// Package results persists labelled reviews and run diagnostics.
//
// Result files hold one record per review, either as JSON lines or in the
// "[REVIEW ID = n] {...}" text form, and can be read back as label sources
// for later aggregation. The diagnostics stream is separate: it captures
// batch failures, unparseable payloads with their raw text, validation issues
// and batches that never produced a result.
package results
