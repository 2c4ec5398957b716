package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"readit/internal/config"
	"readit/internal/logger"
	"readit/internal/models"
)

// Cache holds short-lived derived data: the trending snapshot and per-user
// recommendation keyword sets. Everything here is advisory; a miss or a
// Redis outage just means recomputing.
type Cache interface {
	GetTrendingSnapshot() (*models.TrendingSnapshot, bool)
	SetTrendingSnapshot(snapshot *models.TrendingSnapshot)
	GetKeywords(userID string) ([]string, bool)
	SetKeywords(userID string, keywords []string)
}

type redisCache struct {
	client      *redis.Client
	snapshotTTL time.Duration
	keywordTTL  time.Duration
}

const snapshotKey = "trending:snapshot"

func keywordKey(userID string) string {
	return "recommend:keywords:" + userID
}

func NewRedisCache(cfg config.Redis) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisCache{
		client:      client,
		snapshotTTL: cfg.SnapshotTTL,
		keywordTTL:  cfg.KeywordTTL,
	}, nil
}

func (c *redisCache) GetTrendingSnapshot() (*models.TrendingSnapshot, bool) {
	raw, err := c.client.Get(snapshotKey).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn.Printf("redis get %s: %v", snapshotKey, err)
		}
		return nil, false
	}

	var snapshot models.TrendingSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.Warn.Printf("corrupt cached snapshot, dropping: %v", err)
		c.client.Del(snapshotKey)
		return nil, false
	}
	return &snapshot, true
}

func (c *redisCache) SetTrendingSnapshot(snapshot *models.TrendingSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn.Printf("failed to encode snapshot for cache: %v", err)
		return
	}
	if err := c.client.Set(snapshotKey, raw, c.snapshotTTL).Err(); err != nil {
		logger.Warn.Printf("redis set %s: %v", snapshotKey, err)
	}
}

func (c *redisCache) GetKeywords(userID string) ([]string, bool) {
	raw, err := c.client.Get(keywordKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn.Printf("redis get keywords: %v", err)
		}
		return nil, false
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		c.client.Del(keywordKey(userID))
		return nil, false
	}
	return keywords, true
}

func (c *redisCache) SetKeywords(userID string, keywords []string) {
	raw, err := json.Marshal(keywords)
	if err != nil {
		return
	}
	if err := c.client.Set(keywordKey(userID), raw, c.keywordTTL).Err(); err != nil {
		logger.Warn.Printf("redis set keywords: %v", err)
	}
}

// NoopCache is used when Redis is not configured; every lookup misses.
type NoopCache struct{}

func (NoopCache) GetTrendingSnapshot() (*models.TrendingSnapshot, bool) { return nil, false }
func (NoopCache) SetTrendingSnapshot(*models.TrendingSnapshot)         {}
func (NoopCache) GetKeywords(string) ([]string, bool)                  { return nil, false }
func (NoopCache) SetKeywords(string, []string)                         {}
