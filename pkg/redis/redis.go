package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cargodesk/cargodesk-backend/pkg/config"
)

const keyNamespace = "cargodesk"

// Client wraps the go-redis client with namespaced key helpers.
type Client struct {
	rdb *goredis.Client
}

// New connects to redis using the provided config and verifies the connection.
// A full redis URL takes precedence over the host:port address fields.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	var opts *goredis.Options
	if cfg.URL != "" {
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// NewFromClient wraps an existing go-redis client, used by tests.
func NewFromClient(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

// Ping verifies redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Set stores a value under a namespaced key with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, namespaced(key), value, ttl).Err()
}

// Get returns the value for a namespaced key. Missing keys return ("", false, nil).
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, namespaced(key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Del removes a namespaced key. Deleting a missing key is not an error.
func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, namespaced(key)).Err()
}

// SessionKey builds the storage key for an operator session token id.
func SessionKey(jti string) string {
	return "session:" + jti
}

func namespaced(key string) string {
	if strings.HasPrefix(key, keyNamespace+":") {
		return key
	}
	return keyNamespace + ":" + key
}
