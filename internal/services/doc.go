// Package services defines shared utilities consumed by the analysis pipeline
// and its remote collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, subjects, batch indices, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper, FailureReason tags for
//     failed batches, and the Retryable policy used by the batch pipeline.
//
// Client subpackages (classifier, llm, ollama) wrap every failure with one of
// these markers so the pipeline can classify it without string matching.
package services
