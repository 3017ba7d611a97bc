// Package cache keeps a serialized copy of the company snapshot so the
// list endpoint does not hit the database on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey = "efportfolio:companies" // full company list as JSON
	DefaultTTL  = 10 * time.Minute
)

// Redis stores the snapshot under a single key with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Companies returns the cached snapshot. ok is false on a miss.
func (r *Redis) Companies(ctx context.Context) ([]models.Company, bool, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var companies []models.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return companies, true, nil
}

func (r *Redis) SetCompanies(ctx context.Context, companies []models.Company) error {
	data, err := json.Marshal(companies)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}

// Nop never hits. Used when no Redis address is configured.
type Nop struct{}

func (Nop) Companies(context.Context) ([]models.Company, bool, error) { return nil, false, nil }
func (Nop) SetCompanies(context.Context, []models.Company) error { return nil }
func (Nop) Invalidate(context.Context) error { return nil }
