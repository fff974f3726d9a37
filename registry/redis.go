package registry

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed template source.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// KeyPrefix is prepended to template keys. Defaults to
	// "netcli:templates"; the full key is "<prefix>:<platform>:<command>".
	KeyPrefix string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration
}

// RedisSource serves template text from Redis. Template bodies are stored as
// plain string values under "<prefix>:<platform>:<command>" keys, letting a
// fleet of parsers share one template store without shipping files.
type RedisSource struct {
	client *redis.Client
	prefix string
}

// NewRedisSource creates a Redis source and verifies connectivity with a
// ping.
func NewRedisSource(opts RedisOptions) (*RedisSource, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "netcli:templates"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSource{client: client, prefix: opts.KeyPrefix}, nil
}

// Template implements Source.
func (s *RedisSource) Template(ctx context.Context, platform, command string) (string, error) {
	key := fmt.Sprintf("%s:%s:%s", s.prefix, platform, command)
	text, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, platform, command)
	}
	if err != nil {
		return "", fmt.Errorf("fetching template %s: %w", key, err)
	}
	return text, nil
}

// Close closes the Redis connection.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
