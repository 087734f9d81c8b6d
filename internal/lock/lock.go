// Package lock serializes work per key. Keys are learner ids.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when a lock could not be taken before the
// context ended.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out exclusive access to a key. The returned release func
// must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Do runs fn while holding key.
func Do(ctx context.Context, l Locker, key string, fn func() error) error {
	release, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
