package redis

import (
	"KolAnalytics/internal/api/config"
	"KolAnalytics/internal/pkg/consts"
	"KolAnalytics/internal/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

var Rdb *redis.Client

// InitRedis 创建客户端并检查连通性，成功后写入全局 Rdb
func InitRedis(cfg config.RedisConfig) error {
	rdb := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout(cfg))
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	Rdb = rdb
	return nil
}

// NewClient 按配置创建客户端并挂载日志 Hook，黑名单键中的 Token 签名不会出现在日志里
func NewClient(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout(cfg),

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger(
		time.Duration(cfg.SlowThresholdMs)*time.Millisecond,
		consts.TokenBlacklistKey,
	))
	return rdb
}

func dialTimeout(cfg config.RedisConfig) time.Duration {
	if cfg.DialTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.DialTimeoutSeconds) * time.Second
}
