// Package cache keeps computed slot listings per date in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

const keyPrefix = "clinic:slots:"

// SlotCache stores the full classified slot list of a date. A failing
// backend behaves like a miss; writers must call Invalidate after every
// change to the date's availability or appointments.
type SlotCache interface {
	Get(ctx context.Context, date string) ([]availability.SlotView, bool)
	Put(ctx context.Context, date string, slots []availability.SlotView)
	Invalidate(ctx context.Context, date string)
}

// ======================================================
// Redis
// ======================================================

type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

// NewRedisClient opens a client and pings it once.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func key(date string) string { return keyPrefix + date }

func (c *RedisSlotCache) Get(ctx context.Context, date string) ([]availability.SlotView, bool) {
	raw, err := c.client.Get(ctx, key(date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("date", date).Msg("slot cache get failed")
		}
		return nil, false
	}

	var slots []availability.SlotView
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("slot cache entry unreadable, dropping")
		c.Invalidate(ctx, date)
		return nil, false
	}
	return slots, true
}

func (c *RedisSlotCache) Put(ctx context.Context, date string, slots []availability.SlotView) {
	raw, err := json.Marshal(slots)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("slot cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("slot cache set failed")
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, date string) {
	if err := c.client.Del(ctx, key(date)).Err(); err != nil {
		log.Error().Err(err).Str("date", date).Msg("slot cache invalidate failed")
	}
}

// ======================================================
// Noop
// ======================================================

// Noop is used when REDIS_ADDR is empty.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]availability.SlotView, bool) { return nil, false }
func (Noop) Put(context.Context, string, []availability.SlotView)        {}
func (Noop) Invalidate(context.Context, string)                          {}

var (
	_ SlotCache = (*RedisSlotCache)(nil)
	_ SlotCache = Noop{}
)
