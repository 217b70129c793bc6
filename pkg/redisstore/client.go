package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures the store.
type Option func(*Config)

// Config holds Redis connection configuration.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string
}

// Store wraps a Redis client with a key prefix for this application.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Redis store and verifies connectivity.
func New(opts ...Option) (*Store, error) {
	cfg := &Config{
		Addr:         "localhost:6379",
		DB:           0,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
		MinIdleConns: 5,
		Prefix:       "stockanalysis",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		PoolTimeout:  cfg.PoolTimeout,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

// Client returns the underlying redis client.
func (s *Store) Client() *redis.Client {
	return s.client
}

// Key builds a namespaced key from parts.
func (s *Store) Key(parts ...string) string {
	if s.prefix == "" {
		return strings.Join(parts, ":")
	}
	return s.prefix + ":" + strings.Join(parts, ":")
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// WithAddr sets the Redis address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Addr = addr
		}
	}
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB sets the Redis database number.
func WithDB(db int) Option {
	return func(c *Config) {
		c.DB = db
	}
}

// WithPool sets connection pool settings.
func WithPool(poolSize, minIdleConns int, timeout time.Duration) Option {
	return func(c *Config) {
		if poolSize > 0 {
			c.PoolSize = poolSize
		}
		if minIdleConns > 0 {
			c.MinIdleConns = minIdleConns
		}
		if timeout > 0 {
			c.PoolTimeout = timeout
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		if prefix != "" {
			c.Prefix = prefix
		}
	}
}
