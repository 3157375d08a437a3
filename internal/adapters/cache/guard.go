// Package cache provides a Redis-backed fast path for the feedback
// resubmission throttle.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umairtariqsalam/Palate/internal/domain/crowd"
)

// RecentSubmissionGuard keeps a TTL'd marker per (restaurant, user) pair
// so repeat submitters are rejected without a store round trip.
//
// The guard is an optimization, not the authority: the store query
// remains the deciding check, and any Redis failure degrades to that
// check alone.
type RecentSubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecentSubmissionGuard creates a guard over the given client. A
// non-positive ttl falls back to the default throttle window.
func NewRecentSubmissionGuard(client *redis.Client, ttl time.Duration) *RecentSubmissionGuard {
	if ttl <= 0 {
		ttl = crowd.DefaultThrottleWindow
	}
	return &RecentSubmissionGuard{client: client, ttl: ttl}
}

// Recent reports whether a marker exists for the pair.
func (g *RecentSubmissionGuard) Recent(ctx context.Context, restaurantID, userID string) (bool, error) {
	n, err := g.client.Exists(ctx, key(restaurantID, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records an accepted submission for the pair. The marker expires
// with the throttle window.
func (g *RecentSubmissionGuard) Mark(ctx context.Context, restaurantID, userID string) error {
	if err := g.client.Set(ctx, key(restaurantID, userID), time.Now().Unix(), g.ttl).Err(); err != nil {
		return fmt.Errorf("guard mark: %w", err)
	}
	return nil
}

func key(restaurantID, userID string) string {
	return "crowd:recent:" + restaurantID + ":" + userID
}
