// Package vocabulary owns the per-aspect reason-tag table and validates the
// nested annotation payloads returned by the language-model annotator.
//
// Validation never trusts the payload: it checks the structure, drops leaves
// whose sentiment or reason tags fall outside the table for that specific
// aspect, and reports reviews that look like a misplaced single leaf.
package vocabulary
