package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SubmitLockRepository serializes submissions per phone number so that a double click
// cannot upload photos twice.
type SubmitLockRepository interface {
	// Acquire returns false when another submission for phone is in flight. The returned
	// token identifies this holder and must be passed to Release.
	Acquire(ctx context.Context, phone string, ttl time.Duration) (string, bool, error)
	// Release drops the lock only while it is still held with token.
	Release(ctx context.Context, phone, token string) error
}

func NewSubmitLockRepository(rdb *redis.Client, log *zap.Logger) SubmitLockRepository {
	if rdb == nil {
		return nopSubmitLock{}
	}
	return &redisSubmitLock{
		rdb: rdb,
		log: log.With(zap.String("repository", "submit_lock")),
	}
}

// releaseScript deletes the key only if it still holds the caller's token, so a submit
// that outlived its TTL cannot drop a newer holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSubmitLock struct {
	rdb *redis.Client
	log *zap.Logger
}

func submitLockKey(phone string) string {
	return "prebook:submit:" + phone
}

func (l *redisSubmitLock) Acquire(ctx context.Context, phone string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, submitLockKey(phone), token, ttl).Result()
	if err != nil {
		l.log.Error("Failed to acquire submit lock", zap.Error(err), zap.String("phone", phone))
		return "", false, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *redisSubmitLock) Release(ctx context.Context, phone, token string) error {
	deleted, err := releaseScript.Run(ctx, l.rdb, []string{submitLockKey(phone)}, token).Int()
	if err != nil {
		l.log.Warn("Failed to release submit lock", zap.Error(err), zap.String("phone", phone))
		return fmt.Errorf("release submit lock: %w", err)
	}
	if deleted == 0 {
		l.log.Warn("Submit lock expired before release", zap.String("phone", phone))
	}
	return nil
}

type nopSubmitLock struct{}

func (nopSubmitLock) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "", true, nil
}

func (nopSubmitLock) Release(context.Context, string, string) error { return nil }
