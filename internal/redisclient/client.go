package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/go-redis/redis/v8"
)

const sessionKey = "session:snapshot"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func statsKey(tenantID string) string {
	return fmt.Sprintf("dashboard:stats:%s", tenantID)
}

// GetDashboardStats returns the cached stats snapshot for the tenant, or
// nil when none is cached.
func (c *Client) GetDashboardStats(ctx context.Context, tenantID string) (*models.DashboardStats, error) {
	data, err := c.rdb.Get(ctx, statsKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats snapshot: %w", err)
	}
	return &stats, nil
}

// SetDashboardStats caches a stats snapshot for the tenant with a TTL.
func (c *Client) SetDashboardStats(ctx context.Context, tenantID string, stats *models.DashboardStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats snapshot: %w", err)
	}
	return c.rdb.Set(ctx, statsKey(tenantID), data, ttl).Err()
}

// InvalidateDashboardStats drops the cached snapshot for the tenant.
func (c *Client) InvalidateDashboardStats(ctx context.Context, tenantID string) error {
	return c.rdb.Del(ctx, statsKey(tenantID)).Err()
}

// SaveSession persists the session snapshot.
func (c *Client) SaveSession(ctx context.Context, data []byte) error {
	return c.rdb.Set(ctx, sessionKey, data, 0).Err()
}

// LoadSession returns the persisted session snapshot, or nil.
func (c *Client) LoadSession(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, sessionKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// ClearSession drops the persisted session snapshot.
func (c *Client) ClearSession(ctx context.Context) error {
	return c.rdb.Del(ctx, sessionKey).Err()
}
