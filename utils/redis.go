package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client. Redis backs the rate limiter
// and the access-token blacklist; both degrade gracefully without it.
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, running without Redis")
		return nil
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	redisClient = client
	log.Println("✅ Redis connected")
	return nil
}

// RedisClient returns the shared client, or nil when Redis is not configured
func RedisClient() *redis.Client {
	return redisClient
}

// BlacklistToken marks an access token revoked until it would expire anyway
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if redisClient == nil {
		log.Println("⚠️ Redis unavailable, token not blacklisted")
		return nil
	}
	return redisClient.Set(ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token has been revoked via Logout
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if redisClient == nil {
		return false
	}
	n, err := redisClient.Exists(ctx, "blacklist:"+token).Result()
	return err == nil && n > 0
}
