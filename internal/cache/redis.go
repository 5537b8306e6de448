package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vietanh2810/social-events-api/internal/config"
)

func NewRedisClient(ctx context.Context, conf *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("rdb.Ping -> %w", err)
	}

	return rdb, nil
}
