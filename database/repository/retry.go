package repository

import "context"

// RetryRead runs an idempotent read and reruns it once when the first
// attempt fails with an infrastructure error. A cancelled context is not
// retried. Writes never go through here: the accept critical section and
// the conditional status updates must observe exactly one attempt.
func RetryRead(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || ctx.Err() != nil {
		return err
	}
	return op()
}
