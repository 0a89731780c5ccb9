// Package preflight provides readiness checks for the remote services and
// filesystem paths reviewlens depends on.
//
// These checks run in two contexts:
//   - The analysis runner calls RunAll before dispatching any batch. A failed
//     check aborts the run with ErrNotReady instead of failing every batch.
//   - The CLI "reviewlens status" command calls Status to display the health
//     of every configured service.
//
// Services a run does not use are skipped.
package preflight
