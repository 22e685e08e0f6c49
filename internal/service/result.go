package service

import "time"

// DefaultBackoff is the delay before a failed batch is redelivered.
const DefaultBackoff = time.Minute

// Result is the outcome of projecting one batch. A Retry result requeues the
// whole batch after Backoff; everything else acknowledges it.
type Result struct {
	Retry   bool
	Backoff time.Duration
}

// OK acknowledges the batch.
func OK() Result {
	return Result{}
}

// RetryIn requeues the batch after the given delay.
func RetryIn(d time.Duration) Result {
	return Result{Retry: true, Backoff: d}
}
