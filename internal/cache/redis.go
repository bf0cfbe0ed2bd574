package cache

import (
	"context"
	"log"

	"vocab-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient connects a Redis client, or returns nil when Redis is not
// configured. Callers treat a nil client as "cache disabled".
func NewClient(cfg *config.RedisConfig) *redis.Client {
	if cfg.Address == "" {
		log.Println("Redis not configured, caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connecting to Redis: %v, caching disabled", err)
		return nil
	}
	log.Printf("Successfully connected to Redis at %s", cfg.Address)
	return client
}
