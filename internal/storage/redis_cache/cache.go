package redis_cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"GeniusLabs/internal/models"

	goredis "github.com/redis/go-redis/v9"
)

// ProgressCache keeps a JSON copy of every progress record a user touched so
// reads survive a postgres outage. Entries expire after ttl; the cache is
// best effort and never the source of truth.
type ProgressCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func New(address, password string, db int, ttl time.Duration) (*ProgressCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        address,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ProgressCache{rdb: rdb, ttl: ttl}, nil
}

func progressKey(userID, moduleID string) string {
	return fmt.Sprintf("progress:%s:%s", userID, moduleID)
}

func userSetKey(userID string) string {
	return fmt.Sprintf("progress_modules:%s", userID)
}

func (c *ProgressCache) Set(ctx context.Context, p models.UserProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, progressKey(p.UserID, p.ModuleID), raw, c.ttl)
	pipe.SAdd(ctx, userSetKey(p.UserID), p.ModuleID)
	pipe.Expire(ctx, userSetKey(p.UserID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *ProgressCache) Get(ctx context.Context, userID, moduleID string) (*models.UserProgress, error) {
	raw, err := c.rdb.Get(ctx, progressKey(userID, moduleID)).Bytes()
	if err != nil {
		return nil, err
	}
	var p models.UserProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProgressCache) GetByUser(ctx context.Context, userID string) ([]models.UserProgress, error) {
	moduleIDs, err := c.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	var records []models.UserProgress
	for _, moduleID := range moduleIDs {
		p, err := c.Get(ctx, userID, moduleID)
		if err != nil {
			// expired entry, drop it from the set
			c.rdb.SRem(ctx, userSetKey(userID), moduleID)
			continue
		}
		records = append(records, *p)
	}
	return records, nil
}

func (c *ProgressCache) Delete(ctx context.Context, userID, moduleID string) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, progressKey(userID, moduleID))
	pipe.SRem(ctx, userSetKey(userID), moduleID)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *ProgressCache) Close() error {
	return c.rdb.Close()
}
