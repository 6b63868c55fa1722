package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sufragio/contexts/electoral-core/tally-service/domain/entities"
	"sufragio/contexts/electoral-core/tally-service/ports"
)

// Cache keeps live standings in Redis under a short TTL so tally queries do
// not hammer the vote store while a mesa streams results on screen.
type Cache struct {
	Client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{Client: client}
}

func liveResultsKey(electionID int64) string {
	return fmt.Sprintf("sufragio:tally:live:%d", electionID)
}

func (c *Cache) GetLiveResults(ctx context.Context, electionID int64) ([]entities.CandidateResult, bool, error) {
	payload, err := c.Client.Get(ctx, liveResultsKey(electionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var results []entities.CandidateResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (c *Cache) SetLiveResults(ctx context.Context, electionID int64, results []entities.CandidateResult, ttl time.Duration) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, liveResultsKey(electionID), payload, ttl).Err()
}

func (c *Cache) InvalidateLiveResults(ctx context.Context, electionID int64) error {
	return c.Client.Del(ctx, liveResultsKey(electionID)).Err()
}

var _ ports.ResultsCache = (*Cache)(nil)
