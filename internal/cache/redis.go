package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-predictor/internal/types"
)

const keyPrefix = "weather-predictor:geocode:"

// Redis shares geocoding results between replicas
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key string) (types.Coords, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Coords{}, false, nil
	}
	if err != nil {
		return types.Coords{}, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var coords types.Coords
	if err := json.Unmarshal(b, &coords); err != nil {
		return types.Coords{}, false, fmt.Errorf("failed to decode cached coordinates: %w", err)
	}
	return coords, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, coords types.Coords) error {
	b, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("failed to encode coordinates: %w", err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
