package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/canulcua123-source/vista-boss/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

// UserListCache keeps the serialized user collection under a single key so the
// list endpoint can skip the database between mutations.
type UserListCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewUserListCache(rdb *redis.Client, key string, ttl time.Duration) *UserListCache {
	return &UserListCache{rdb: rdb, key: key, ttl: ttl}
}

// Get returns the cached payload and whether the key was present.
func (c *UserListCache) Get(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("UserListCache.Get: %w", err)
	}
	return payload, true, nil
}

func (c *UserListCache) Set(ctx context.Context, payload []byte) error {
	if err := c.rdb.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("UserListCache.Set: %w", err)
	}
	return nil
}

func (c *UserListCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("UserListCache.Invalidate: %w", err)
	}
	return nil
}
