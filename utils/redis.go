package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to Redis and verifies the connection with a PING.
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	Log.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))
	return client, nil
}
