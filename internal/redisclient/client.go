package redisclient

import (
	"context"
	"time"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	redisdb *redis.Client
}

func New(cfg config.RedisConfig) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Client{redisdb: redisdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Raw exposes the underlying client for the rate limiter.
func (c *Client) Raw() *redis.Client {
	return c.redisdb
}
