// Package ctxutil provides small context helpers shared by the packages
// that spawn git processes.
package ctxutil

import "context"

// Canceled reports whether ctx is already done, returning its error
// (context.Canceled or context.DeadlineExceeded) and nil otherwise.
// Blocking operations call this at entry so a canceled run stops before
// another git process is spawned.
//
// ctx.Err() is nil until Done closes, so no select is needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
