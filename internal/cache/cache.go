package cache

import (
	"context"
	"strings"

	"weather-predictor/internal/types"
)

// Store caches geocoding results keyed by normalized query
type Store interface {
	Get(ctx context.Context, key string) (types.Coords, bool, error)
	Set(ctx context.Context, key string, coords types.Coords) error
}

// Key normalizes a geocoding query so equivalent spellings share an entry
func Key(city, state, country string) string {
	parts := []string{city, state, country}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}

// Noop never stores anything. Used when the TTL is zero.
type Noop struct{}

func (Noop) Get(context.Context, string) (types.Coords, bool, error) {
	return types.Coords{}, false, nil
}

func (Noop) Set(context.Context, string, types.Coords) error { return nil }
