package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for the availability cache
	availabilityCacheKeyPrefix   = "availability:grid:"
	availabilityVersionKeyPrefix = "availability:ver:"

	availabilityVersionTTL = 24 * time.Hour
)

// AvailabilityCache is a read-through cache for availability grids. Entries
// are keyed by a per-doctor version counter: any booking, template or block
// mutation bumps the counter, which orphans every cached grid for that doctor
// without scanning keys. Orphans age out via TTL.
//
// The cache is strictly best-effort. Redis being down degrades to a DB read,
// never to an error. A nil cache disables caching entirely.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Get unmarshals the cached grid for (doctor, range) into dest. It returns
// the version counter observed before the lookup and whether it was a hit.
// On a miss the caller must pass that same version back to Set: an Invalidate
// that lands between the DB read and the Set then orphans the stale entry
// instead of letting it reappear under the bumped counter. A version < 0
// means Redis was unreachable and Set will be a no-op.
func (c *AvailabilityCache) Get(ctx context.Context, doctorID uuid.UUID, start, end string, dest interface{}) (int64, bool) {
	if c == nil || c.redisClient == nil {
		return -1, false
	}

	ver, err := c.version(ctx, doctorID)
	if err != nil {
		return -1, false
	}
	key := gridKey(doctorID, ver, start, end)

	raw, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Failed to read availability cache for doctor %s: %+v", doctorID, err)
		}
		return ver, false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Failed to decode cached availability for doctor %s: %+v", doctorID, err)
		return ver, false
	}

	return ver, true
}

// Set stores the grid under the version captured by the matching Get.
func (c *AvailabilityCache) Set(ctx context.Context, doctorID uuid.UUID, version int64, start, end string, grid interface{}) {
	if c == nil || c.redisClient == nil || version < 0 {
		return
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		c.log.Warnf("Failed to encode availability for doctor %s: %+v", doctorID, err)
		return
	}

	key := gridKey(doctorID, version, start, end)
	if err := c.redisClient.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write availability cache for doctor %s: %+v", doctorID, err)
	}
}

// Invalidate bumps the doctor's version counter. Non-fatal: a failed bump only
// means stale reads until the grid TTL expires.
func (c *AvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	if c == nil || c.redisClient == nil {
		return
	}

	verKey := availabilityVersionKeyPrefix + doctorID.String()
	pipe := c.redisClient.TxPipeline()
	pipe.Incr(ctx, verKey)
	pipe.Expire(ctx, verKey, availabilityVersionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnf("Failed to invalidate availability cache for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

func (c *AvailabilityCache) version(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	ver, err := c.redisClient.Get(ctx, availabilityVersionKeyPrefix+doctorID.String()).Int64()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	return ver, nil
}

func gridKey(doctorID uuid.UUID, version int64, start, end string) string {
	return fmt.Sprintf("%s%s:%d:%s:%s", availabilityCacheKeyPrefix, doctorID, version, start, end)
}
