package job

import (
	"KolAnalytics/internal/pkg/logger"
	"KolAnalytics/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// withLock 多实例部署时同一任务只允许一个实例执行，未抢到锁返回 false
func withLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context)) bool {
	// 锁的持有者记为本次执行的 trace_id，便于从日志定位
	token := logger.TraceIDFrom(ctx)
	if token == "" {
		token = uuid.NewString()
	}
	ok, err := redis.TryLock(ctx, key, token, ttl, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire job lock failed", "key", key, "err", err)
		return false
	}
	if !ok {
		log.InfoContext(ctx, "job is running on another instance", "key", key)
		return false
	}
	defer redis.UnLock(context.WithoutCancel(ctx), key, token)

	fn(ctx)
	return true
}

func newJobContext(name string) context.Context {
	return logger.WithTraceID(context.Background(), "job-"+name+"-")
}
