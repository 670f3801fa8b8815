package throttle

import (
	"context"
	"fmt"
	"log"
	"time"

	"question_review/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter bounds login attempts per username within a rolling window.
// It exists to slow credential guessing; it is not a correctness mechanism.
type LoginLimiter interface {
	// Allow reports whether another attempt for username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
	Close() error
}

type redisLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisLimiter connects to Redis using the configured address. Call only
// when cfg.RedisAddr is set; deployments without Redis use NewNopLimiter.
func NewRedisLimiter(cfg *config.Config) (LoginLimiter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	log.Println("Successfully connected to Redis!")

	return &redisLimiter{
		rdb:         rdb,
		maxAttempts: cfg.LoginMaxAttempts,
		window:      cfg.LoginWindow,
	}, nil
}

func (l *redisLimiter) key(username string) string {
	return "login_attempts:" + username
}

func (l *redisLimiter) Allow(ctx context.Context, username string) (bool, error) {
	key := l.key(username)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

func (l *redisLimiter) Reset(ctx context.Context, username string) error {
	return l.rdb.Del(ctx, l.key(username)).Err()
}

func (l *redisLimiter) Close() error {
	return l.rdb.Close()
}

type nopLimiter struct{}

// NewNopLimiter returns a limiter that always allows; used when Redis is not
// configured and in tests.
func NewNopLimiter() LoginLimiter { return nopLimiter{} }

func (nopLimiter) Allow(ctx context.Context, username string) (bool, error) { return true, nil }
func (nopLimiter) Reset(ctx context.Context, username string) error         { return nil }
func (nopLimiter) Close() error                                             { return nil }
