// Package cache provides a Redis-backed cache for availability searches.
// A nil client disables caching entirely; every method degrades to a
// no-op so callers never branch on whether Redis is configured.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "frontdesk:availability"
	genKey    = keyPrefix + ":gen"
)

type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	if rdb == nil {
		return nil
	}
	return &Availability{rdb: rdb, ttl: ttl}
}

// key folds the search parameters and the current generation into one
// hashed cache key. Bumping the generation on any booking write makes
// every older entry unreachable, so invalidation never has to enumerate
// keys.
func (c *Availability) key(ctx context.Context, checkin, checkout time.Time, roomTypeID *uint) string {
	gen, err := c.rdb.Get(ctx, genKey).Result()
	if err != nil {
		gen = "0"
	}
	rt := "any"
	if roomTypeID != nil {
		rt = fmt.Sprintf("%d", *roomTypeID)
	}
	raw := fmt.Sprintf("%s|%s|%s|%s",
		checkin.Format("2006-01-02"), checkout.Format("2006-01-02"), rt, gen)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%x", keyPrefix, sum)
}

func (c *Availability) Get(ctx context.Context, checkin, checkout time.Time, roomTypeID *uint) ([]models.Room, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, c.key(ctx, checkin, checkout, roomTypeID)).Bytes()
	if err != nil {
		return nil, false
	}
	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, false
	}
	return rooms, true
}

func (c *Availability) Set(ctx context.Context, checkin, checkout time.Time, roomTypeID *uint, rooms []models.Room) {
	if c == nil {
		return
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, c.key(ctx, checkin, checkout, roomTypeID), data, c.ttl)
}

// Invalidate retires all cached searches by bumping the generation.
func (c *Availability) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Incr(ctx, genKey)
}
