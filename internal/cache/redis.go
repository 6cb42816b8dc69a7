package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	routeTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, routeTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		routeTTL,
	)
}

func NewRedisCacheFromClient(client *redis.Client, routeTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, routeTTL: routeTTL}
}

// GetRoute returns the cached flights for a route; a miss yields nil, nil.
func (c *RedisCache) GetRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, routeKey(origin, destination)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetRoute(ctx context.Context, origin, destination string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routeKey(origin, destination), payload, c.routeTTL).Err()
}

func (c *RedisCache) InvalidateRoute(ctx context.Context, origin, destination string) error {
	return c.client.Del(ctx, routeKey(origin, destination)).Err()
}

// AcquireSeatLock holds a seat for ttl; false means another holder has it.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID, seat string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seat), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID, seat string) error {
	return c.client.Del(ctx, seatLockKey(flightID, seat)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func routeKey(origin, destination string) string {
	return fmt.Sprintf("cache:route:%s:%s", origin, destination)
}

func seatLockKey(flightID, seat string) string {
	return fmt.Sprintf("lock:flight:%s:seat:%s", flightID, seat)
}
