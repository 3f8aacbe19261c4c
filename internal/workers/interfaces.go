// Package workers runs the server's background jobs for the lifetime of
// the process.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
