package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxConflictRetries bounds how many times a unit of work is replayed after
// losing a concurrent-update race before ErrStorageConflict surfaces.
const maxConflictRetries = 3

// withConflictRetry runs op, replaying it with exponential backoff when it
// fails with ErrStorageConflict. Business failures are permanent and are
// returned immediately.
func withConflictRetry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 200 * time.Millisecond

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrStorageConflict) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, maxConflictRetries), ctx))
}
