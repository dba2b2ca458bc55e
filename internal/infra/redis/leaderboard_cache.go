package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"quizdeck-service/internal/app"
	"quizdeck-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LeaderboardCache serves ranked top-N reads from Redis and falls back to the
// underlying source on a miss. Snapshots are stored as:
//
//	SET leaderboard:{subjectID} <JSON entries> EX ttl
//
// Score writes call InvalidateBoard so the next read reloads from the store.
type LeaderboardCache struct {
	client *redis.Client
	source app.LeaderboardSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewLeaderboardCache(client *redis.Client, source app.LeaderboardSource, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *LeaderboardCache) TopBySubject(ctx context.Context, subjectID int64, limit int) ([]domain.LeaderboardEntry, error) {
	key := c.key(subjectID)

	if entries, ok := c.cached(ctx, key); ok {
		return entries, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if entries, ok := c.cached(ctx, key); ok {
			return entries, nil
		}

		entries, err := c.source.TopBySubject(ctx, subjectID, limit)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(entries); err == nil {
			// Cache fill is best effort; a failed SET only costs the next read a reload.
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LeaderboardEntry), nil
}

// InvalidateBoard drops the cached snapshot for a subject.
func (c *LeaderboardCache) InvalidateBoard(ctx context.Context, subjectID int64) error {
	return c.client.Del(ctx, c.key(subjectID)).Err()
}

func (c *LeaderboardCache) cached(ctx context.Context, key string) ([]domain.LeaderboardEntry, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) key(subjectID int64) string {
	return "leaderboard:" + strconv.FormatInt(subjectID, 10)
}

func (c *LeaderboardCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
