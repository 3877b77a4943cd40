package review

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olanest/olanest/pkg/models"
)

const aggregateKeyPrefix = "olanest:agg:"

// AggregateCache keeps derived rating aggregates in Redis. A nil cache is
// valid and degrades every operation to a no-op, so the aggregator works
// without Redis configured.
type AggregateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAggregateCache(client *redis.Client, ttl time.Duration) *AggregateCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AggregateCache{client: client, ttl: ttl}
}

// Get returns the cached aggregate and whether it was present. Decode
// failures count as a miss.
func (c *AggregateCache) Get(ctx context.Context, contractorID string) (*models.RatingAggregate, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, aggregateKeyPrefix+contractorID).Result()
	if err != nil {
		return nil, false
	}

	var agg models.RatingAggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, false
	}

	return &agg, true
}

func (c *AggregateCache) Put(ctx context.Context, agg *models.RatingAggregate) error {
	if c == nil || c.client == nil || agg == nil {
		return nil
	}

	b, err := json.Marshal(agg)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, aggregateKeyPrefix+agg.ContractorID, string(b), c.ttl).Err()
}

func (c *AggregateCache) Invalidate(ctx context.Context, contractorID string) error {
	if c == nil || c.client == nil {
		return nil
	}

	return c.client.Del(ctx, aggregateKeyPrefix+contractorID).Err()
}
