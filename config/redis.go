package config

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the shared product-list response cache. Nil means the
// cache is off and every listing is computed in process.
var RedisClient *redis.Client

// InitRedis builds the client from REDIS_ADDR, REDIS_PASS and REDIS_DB.
// Without REDIS_ADDR the client stays nil.
func InitRedis() {
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		RedisClient = nil
		return
	}
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       db,
	})
}

// PingRedis checks the configured server and drops the client when it does
// not answer, so the catalog API falls back to uncached listings.
func PingRedis() error {
	if RedisClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient = nil
		return err
	}
	return nil
}
