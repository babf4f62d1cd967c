package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisrepo shares session records across processes, so a pool of frontends
// can serve moves for the same game without re-latching the node budget.
type redisrepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) Repository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisrepo{rdb: rdb, ttl: ttl}
}

func (r *redisrepo) key(id string) string { return "tk:sess:" + strings.TrimSpace(id) }

func (r *redisrepo) Get(ctx context.Context, id string) (*Record, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *redisrepo) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrNotFound
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(rec.ID), raw, r.ttl).Err()
}

func (r *redisrepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, r.key(id)).Err()
}
