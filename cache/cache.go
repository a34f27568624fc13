package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"casino/models"
)

const (
	keyLeaderboard = "stats:leaderboard:%d"
	keyCasinoStats = "stats:casino"
	keyRecentWins  = "stats:recent_wins:%d"
	keyRateLimit   = "ratelimit:%s:%s"

	statsTTL = 30 * time.Second
)

// Cache fronts the expensive aggregate queries with short-lived Redis
// entries. A cold or unreachable Redis degrades to direct reads, it never
// fails a request.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// GetLeaderboard returns the cached leaderboard, or false on a miss.
func (c *Cache) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, bool) {
	var entries []*models.LeaderboardEntry
	if !c.getJSON(ctx, fmt.Sprintf(keyLeaderboard, limit), &entries) {
		return nil, false
	}
	return entries, true
}

// SetLeaderboard caches a leaderboard for its limit.
func (c *Cache) SetLeaderboard(ctx context.Context, limit int, entries []*models.LeaderboardEntry) {
	c.setJSON(ctx, fmt.Sprintf(keyLeaderboard, limit), entries)
}

// GetCasinoStats returns the cached house aggregates, or false on a miss.
func (c *Cache) GetCasinoStats(ctx context.Context) (*models.CasinoStats, bool) {
	var stats models.CasinoStats
	if !c.getJSON(ctx, keyCasinoStats, &stats) {
		return nil, false
	}
	return &stats, true
}

// SetCasinoStats caches the house aggregates.
func (c *Cache) SetCasinoStats(ctx context.Context, stats *models.CasinoStats) {
	c.setJSON(ctx, keyCasinoStats, stats)
}

// GetRecentWins returns the cached win feed, or false on a miss.
func (c *Cache) GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, bool) {
	var wins []*models.RecentWin
	if !c.getJSON(ctx, fmt.Sprintf(keyRecentWins, limit), &wins) {
		return nil, false
	}
	return wins, true
}

// SetRecentWins caches the win feed for its limit.
func (c *Cache) SetRecentWins(ctx context.Context, limit int, wins []*models.RecentWin) {
	c.setJSON(ctx, fmt.Sprintf(keyRecentWins, limit), wins)
}

// InvalidateStats drops all cached aggregates. Called after each settled bet
// so the feeds stay close to live.
func (c *Cache) InvalidateStats(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "stats:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).Warn("Failed to scan stats cache keys")
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			log.WithError(err).Warn("Failed to invalidate stats cache")
		}
	}
}

// CheckRateLimit counts actions per actor in a fixed window and reports
// whether this one is still within the limit.
func (c *Cache) CheckRateLimit(ctx context.Context, actorID, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(keyRateLimit, actorID, action)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		c.client.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

func (c *Cache) getJSON(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache entry is corrupt")
		return false
	}
	return true
}

func (c *Cache) setJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, data, statsTTL).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
