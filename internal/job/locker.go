package job

import (
	"Statistics/internal/pkg/redis"
	"Statistics/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// Locker 任务互斥锁，多实例部署时保证同一任务只有一个实例在执行
type Locker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	UnLock(ctx context.Context, key, token string) error
}

type redisLocker struct{}

// NewRedisLocker 基于 Redis SETNX 的锁
func NewRedisLocker() Locker {
	return redisLocker{}
}

func (redisLocker) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return redis.TryLock(ctx, key, token, ttl, 1)
}

func (redisLocker) UnLock(ctx context.Context, key, token string) error {
	return redis.UnLock(ctx, key, token)
}

// withLock 抢不到锁时返回 service.ErrTaskRunning
func withLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func() error) error {
	token := uuid.NewString()
	ok, err := l.TryLock(ctx, key, token, ttl)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrTaskRunning
	}
	defer func() {
		if err := l.UnLock(context.WithoutCancel(ctx), key, token); err != nil {
			log.ErrorContext(ctx, "release task lock error", "key", key, "err", err)
		}
	}()
	return fn()
}
