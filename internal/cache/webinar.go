// Package cache provides a Redis read-through layer for webinar lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"webinars/internal/domain"
)

const webinarKeyPrefix = "webinar:"

// redisClient is the subset of *redis.Client used by the cache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type webinarRepository struct {
	next   domain.WebinarRepository
	client redisClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewWebinarRepository wraps next with a Redis read-through cache. Redis
// failures are logged and the lookup falls through to next. Misses
// (domain.ErrNotFound) are not cached.
func NewWebinarRepository(next domain.WebinarRepository, client redisClient, ttl time.Duration, logger *slog.Logger) domain.WebinarRepository {
	return &webinarRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *webinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	key := webinarKey(id)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var w domain.Webinar
		if err := json.Unmarshal(raw, &w); err == nil {
			return &w, nil
		}
		r.logger.WarnContext(ctx, "discarding corrupt webinar cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "webinar cache get failed", "key", key, "err", err)
	}

	w, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(w); err == nil {
		if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "webinar cache set failed", "key", key, "err", err)
		}
	}
	return w, nil
}

func webinarKey(id string) string {
	return webinarKeyPrefix + id
}

// NewClient parses redisURL and returns a pinged Redis client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}
