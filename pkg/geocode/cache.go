package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	keyPrefix   = "geocode:"
	notFoundTTL = time.Hour
	notFoundVal = "not_found"
)

// CachedGeocoder keeps postal code lookups in Redis. Unknown codes are cached
// briefly so repeated typos do not burn provider quota. Cache errors fall
// through to the provider.
type CachedGeocoder struct {
	next Geocoder
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.With(zap.String("geocoder", "redis_cache")),
	}
}

func (c *CachedGeocoder) Lookup(ctx context.Context, postalCode string) (Point, error) {
	key := keyPrefix + postalCode

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil && cached == notFoundVal:
		return Point{}, fmt.Errorf("geocode %s (cached): %w", postalCode, ErrNotFound)
	case err == nil:
		var p Point
		if jsonErr := json.Unmarshal([]byte(cached), &p); jsonErr == nil {
			return p, nil
		}
		c.log.Warn("Dropping unreadable cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("Geocode cache read failed", zap.Error(err), zap.String("key", key))
	}

	p, err := c.next.Lookup(ctx, postalCode)
	if errors.Is(err, ErrNotFound) {
		c.store(ctx, key, notFoundVal, notFoundTTL)
		return Point{}, err
	}
	if err != nil {
		return Point{}, err
	}

	b, _ := json.Marshal(p)
	c.store(ctx, key, string(b), c.ttl)
	return p, nil
}

func (c *CachedGeocoder) store(ctx context.Context, key, val string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		c.log.Warn("Geocode cache write failed", zap.Error(err), zap.String("key", key))
	}
}
