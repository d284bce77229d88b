package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

const summaryTTL = time.Hour

// SummaryCache stores generated pay-stub blurbs per user and period.
// Key format: summary:<user_id>:<period>
type SummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// Get returns the cached blurb, or "" when none is cached.
func (c *SummaryCache) Get(ctx context.Context, userID string, period domain.Period) (string, error) {
	text, err := c.client.Get(ctx, c.key(userID, period)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("summary cache get: %w", err)
	}
	return text, nil
}

// Set stores the blurb; it expires after summaryTTL, as the figures it was
// written from go stale.
func (c *SummaryCache) Set(ctx context.Context, userID string, period domain.Period, text string) error {
	return c.client.Set(ctx, c.key(userID, period), text, summaryTTL).Err()
}

// Clear drops both period entries for the user. Wired to sign-out.
func (c *SummaryCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx,
		c.key(userID, domain.PeriodWeek),
		c.key(userID, domain.PeriodMonth),
	).Err()
}

func (c *SummaryCache) key(userID string, period domain.Period) string {
	return fmt.Sprintf("summary:%s:%s", userID, period)
}
