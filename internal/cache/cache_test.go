package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"weather-predictor/internal/types"
)

func TestKey(t *testing.T) {
	tests := []struct {
		city, state, country string
		expected             string
	}{
		{"Paris", "", "", "paris,,"},
		{"  PARIS ", "", "fr", "paris,,fr"},
		{"Paris", "TX", "US", "paris,tx,us"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := Key(tt.city, tt.state, tt.country); got != tt.expected {
				t.Errorf("Key(%q, %q, %q) = %q, want %q", tt.city, tt.state, tt.country, got, tt.expected)
			}
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)

	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	paris := types.NewCoords(48.8566, 2.3522)
	if err := c.Set(ctx, "paris,,", paris); err != nil {
		t.Fatalf("Set() unexpected error = %v", err)
	}

	got, ok, err := c.Get(ctx, "paris,,")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v; want hit", got, ok, err)
	}
	if got != paris {
		t.Errorf("Get() = %v, want %v", got, paris)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "paris,,"); ok {
		t.Error("Get() returned expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want expired entry evicted", c.Len())
	}
}

func TestMemory_SweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)

	c := NewMemory(time.Minute)
	c.now = func() time.Time { return now }

	for _, key := range []string{"paris,,", "lyon,,", "nice,,"} {
		if err := c.Set(ctx, key, types.NewCoords(45, 5)); err != nil {
			t.Fatalf("Set(%q) unexpected error = %v", key, err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	// none of the expired keys is read again
	now = now.Add(2 * time.Minute)
	if err := c.Set(ctx, "berlin,,", types.NewCoords(52.52, 13.405)); err != nil {
		t.Fatalf("Set() unexpected error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want expired entries swept", c.Len())
	}
	if _, ok, _ := c.Get(ctx, "berlin,,"); !ok {
		t.Error("Get() missed the fresh entry")
	}
}

func TestMemory_Miss(t *testing.T) {
	c := NewMemory(time.Minute)
	if _, ok, err := c.Get(context.Background(), "nowhere,,"); ok || err != nil {
		t.Errorf("Get() on empty cache = %v, %v; want miss without error", ok, err)
	}
}

func TestRedis_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	c := NewRedis(rdb, time.Minute)

	if _, ok, err := c.Get(ctx, "paris,,"); ok || err != nil {
		t.Fatalf("Get() before Set = %v, %v; want miss", ok, err)
	}

	paris := types.NewCoords(48.8566, 2.3522)
	if err := c.Set(ctx, "paris,,", paris); err != nil {
		t.Fatalf("Set() unexpected error = %v", err)
	}

	got, ok, err := c.Get(ctx, "paris,,")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if got != paris {
		t.Errorf("Get() = %v, want %v", got, paris)
	}

	if ttl := mr.TTL(keyPrefix + "paris,,"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "paris,,"); ok {
		t.Error("Get() returned entry after TTL elapsed")
	}
}

func TestNoop(t *testing.T) {
	var c Store = Noop{}
	ctx := context.Background()
	_ = c.Set(ctx, "paris,,", types.NewCoords(1, 2))
	if _, ok, _ := c.Get(ctx, "paris,,"); ok {
		t.Error("Noop cache returned a hit")
	}
}
