package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetry = 50 * time.Millisecond

// acquire takes an exclusive advisory lock on path+".lock", waiting until
// ctx is done.
func acquire(ctx context.Context, path string) (*flock.Flock, error) {
	fl := flock.New(path + ".lock")
	ok, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: not acquired", path)
	}
	return fl, nil
}
