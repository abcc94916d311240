// Package cache is a Redis-backed cache for AI responses. The same prompt
// over the same media always produces an equivalent answer at low
// temperature, so repeat extractions skip the paid call entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"fridgechef/internal/core/ai"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrMiss reports that no cached response exists for the key.
var ErrMiss = fmt.Errorf("cache miss")

// Service caches AI responses in Redis. A disabled service is valid and
// misses on every lookup.
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService creates a cache service. When caching is enabled the Redis
// connection is verified up front.
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{client: client, config: cfg}, nil
}

// Get looks up the cached response for a prompt and media pair. Returns
// ErrMiss when absent or caching is disabled.
func (s *Service) Get(ctx context.Context, prompt, media string) (*ai.Response, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, ErrMiss
	}

	data, err := s.client.Get(ctx, s.key(prompt, media)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var resp ai.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	resp.CacheHit = true
	return &resp, nil
}

// Set stores a response under the prompt and media pair with the configured
// TTL. Failures are logged, not returned; a cold cache is not an error.
func (s *Service) Set(ctx context.Context, prompt, media string, resp *ai.Response) {
	if !s.config.Enabled || s.client == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		common.LogWarn("failed to marshal cache entry", zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.key(prompt, media), data, s.config.TTL).Err(); err != nil {
		common.LogWarn("failed to set cache entry", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// key hashes prompt and media together; media payloads are megabytes of
// base64 and cannot be part of a Redis key directly.
func (s *Service) key(prompt, media string) string {
	sum := sha256.Sum256([]byte(prompt + "\x00" + media))
	return "ai:response:" + hex.EncodeToString(sum[:])
}
