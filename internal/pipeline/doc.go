// Package pipeline drives reviews through a remote labelling service in
// fixed-size batches under bounded concurrency.
//
// A dispatcher feeds batches to a pool of workers. Each worker makes one
// remote call per batch (with its own timeout and an optional retry policy),
// decodes the response, and hands the result to a single collector that owns
// the index-keyed slot array and the checkpoint writer. Batches that fail are
// recorded with a tagged reason and never abort the run; batches that never
// complete are filled with a missing-result placeholder when the outcome is
// assembled in ascending batch order.
package pipeline
