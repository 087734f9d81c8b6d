package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/lessonloop/internal/logger"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lease taken over by another instance is left alone.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions configures RedisLocker.
type RedisOptions struct {
	// Prefix namespaces lock keys. Default "lessonloop:lock:".
	Prefix string
	// TTL bounds how long a crashed holder blocks others.
	TTL time.Duration
	// RetryDelay is the poll interval while the key is taken.
	RetryDelay time.Duration
}

// RedisLocker is a Locker shared by every process using the same Redis.
// Locks are leases: SET NX PX to take, compare-and-delete to release.
type RedisLocker struct {
	rdb  goredis.UniversalClient
	opts RedisOptions
	log  *logger.Logger
}

var _ Locker = (*RedisLocker)(nil)

// NewRedisLocker wraps an existing client.
func NewRedisLocker(rdb goredis.UniversalClient, opts RedisOptions, log *logger.Logger) *RedisLocker {
	if opts.Prefix == "" {
		opts.Prefix = "lessonloop:lock:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 25 * time.Millisecond
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLocker{rdb: rdb, opts: opts, log: log.With("component", "redis_lock")}
}

// DialRedis connects and pings.
func DialRedis(ctx context.Context, addr string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	full := r.opts.Prefix + key
	token := uuid.NewString()

	for {
		ok, err := r.rdb.SetNX(ctx, full, token, r.opts.TTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}

		t := time.NewTimer(r.opts.RetryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
		case <-t.C:
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release even when the caller's context is already done.
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		err := releaseScript.Run(relCtx, r.rdb, []string{full}, token).Err()
		if err != nil && !errors.Is(err, goredis.Nil) {
			r.log.Warn("release lock", "key", key, "error", err)
		}
	}, nil
}
