package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/ticketbooking/config"
	"github.com/zvrva/ticketbooking/internal/domain"
)

// RedisCache holds the full airport and airline registries. Both entity
// types are immutable after creation, so entries only need invalidation
// when a new one is saved.
type RedisCache struct {
	client      *redis.Client
	registryTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, registryTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		registryTTL: registryTTL,
	}
}

const (
	airportsKey = "cache:airports"
	airlinesKey = "cache:airlines"
)

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	if err := c.get(ctx, airportsKey, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return c.set(ctx, airportsKey, airports)
}

func (c *RedisCache) InvalidateAirports(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey).Err()
}

func (c *RedisCache) GetAirlines(ctx context.Context) ([]domain.Airline, error) {
	var airlines []domain.Airline
	if err := c.get(ctx, airlinesKey, &airlines); err != nil {
		return nil, err
	}
	return airlines, nil
}

func (c *RedisCache) SetAirlines(ctx context.Context, airlines []domain.Airline) error {
	return c.set(ctx, airlinesKey, airlines)
}

func (c *RedisCache) InvalidateAirlines(ctx context.Context) error {
	return c.client.Del(ctx, airlinesKey).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.registryTTL).Err()
}
