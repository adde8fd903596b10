// Package session provides storage backends for tenantpipe sessions.
//
// This file implements the Redis-backed store. Each session is one JSON
// blob under "session:<id>"; the sweep scans keys rather than relying on
// TTLs so its age threshold stays adjustable at call time.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions in Redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a new Redis store. The DSN is the Redis address
// (host:port).
func NewRedisStore(opts ...Option) (*RedisStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("RedisStore address not set")
		return nil, fmt.Errorf("redis address not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.DSN})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("RedisStore ping failed", "error", err, "addr", cfg.DSN)
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.DSN, err)
	}
	slog.Debug("RedisStore ready", "addr", cfg.DSN)
	return &RedisStore{rdb: rdb}, nil
}

// GetOrCreate returns the session for the given ID, creating one if needed.
func (r *RedisStore) GetOrCreate(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	existing, err := r.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	sess := models.NewSession(sessionID, userID)
	if err := r.save(ctx, sess); err != nil {
		return nil, err
	}
	slog.Debug("RedisStore.GetOrCreate: created session", "sessionID", sessionID)
	return sess, nil
}

// Get returns the session for the given ID, or nil when none exists.
func (r *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Error("RedisStore.Get failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &sess, nil
}

// Update persists the session and refreshes its UpdatedAt timestamp.
func (r *RedisStore) Update(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	if err := r.save(ctx, sess); err != nil {
		slog.Error("RedisStore.Update failed", "error", err, "sessionID", sess.ID)
		return err
	}
	slog.Debug("RedisStore.Update succeeded", "sessionID", sess.ID, "state", sess.CurrentState)
	return nil
}

// Sweep removes sessions whose last update is older than maxAge.
func (r *RedisStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	iter := r.rdb.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.rdb.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("failed to load session key %s: %w", key, err)
		}
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			// Unreadable blob: drop it rather than letting it pile up.
			slog.Warn("RedisStore.Sweep: removing undecodable session", "key", key, "error", err)
			if err := r.rdb.Del(ctx, key).Err(); err == nil {
				removed++
			}
			continue
		}
		if sess.UpdatedAt.Before(cutoff) {
			if err := r.rdb.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("failed to delete session key %s: %w", key, err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan session keys: %w", err)
	}
	if removed > 0 {
		slog.Info("RedisStore.Sweep: removed stale sessions", "removed", removed, "maxAge", maxAge)
	}
	return removed, nil
}

// List returns all sessions.
func (r *RedisStore) List(ctx context.Context) ([]*models.Session, error) {
	var out []*models.Session
	iter := r.rdb.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := r.rdb.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load session key %s: %w", iter.Val(), err)
		}
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			slog.Warn("RedisStore.List: skipping undecodable session", "key", iter.Val(), "error", err)
			continue
		}
		out = append(out, &sess)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan session keys: %w", err)
	}
	return out, nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func (r *RedisStore) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sess.ID, err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+sess.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}
