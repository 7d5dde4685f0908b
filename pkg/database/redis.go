package database

import (
	"context"
	"fmt"
	"time"

	"prebook/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects when REDIS_URL is set. A nil client means the feature is off.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
