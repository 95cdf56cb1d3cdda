package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"jobalert-web/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "jobalert:session:"
	tokenField       = "token"
)

var ErrUnavailable = errors.New("redis unavailable")

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects and pings. When Redis cannot be reached the returned value
// reports Available() == false and every operation is a no-op.
func NewRedis(cfg config.RedisConfig, tokenTTL time.Duration, logger *log.Logger) *Redis {
	if !cfg.Enabled {
		return &Redis{logger: logger, ttl: tokenTTL}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, falling back to memory: %v", err)
		}
		_ = client.Close()
		return &Redis{logger: logger, ttl: tokenTTL}
	}

	return &Redis{client: client, logger: logger, ttl: tokenTTL}
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis error, token persistence degraded: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func sessionKey(sid string) string {
	return sessionKeyPrefix + strings.TrimSpace(sid)
}

func (r *Redis) LoadToken(ctx context.Context, sid string) (string, error) {
	if !r.Available() {
		return "", nil
	}
	v, err := r.client.HGet(ctx, sessionKey(sid), tokenField).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		r.warnUnavailableOnce(err)
		return "", err
	}
	return v, nil
}

func (r *Redis) SaveToken(ctx context.Context, sid, token string) error {
	if !r.Available() {
		return nil
	}
	key := sessionKey(sid)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, tokenField, token)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) ClearToken(ctx context.Context, sid string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.HDel(ctx, sessionKey(sid), tokenField).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}
