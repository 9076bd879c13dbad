package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	protected            = "[PROTECTED]"
	defaultSlowThreshold = 100 * time.Millisecond
)

// RedisLoggerHook 记录 Redis 错误与慢命令，日志中的参数按前缀脱敏
type RedisLoggerHook struct {
	slowThreshold     time.Duration
	protectedPrefixes []string
}

// NewRedisLogger slowThreshold <= 0 时使用 100ms；protectedPrefixes 为需要隐藏后缀的键前缀，如 Token 黑名单
func NewRedisLogger(slowThreshold time.Duration, protectedPrefixes ...string) *RedisLoggerHook {
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowThreshold
	}
	return &RedisLoggerHook{
		slowThreshold:     slowThreshold,
		protectedPrefixes: protectedPrefixes,
	}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil && isExpectedRedisError(cmd, err) {
			return err
		}
		if err == nil && elapsed < s.slowThreshold {
			return nil
		}

		fields := []any{
			log.String("command", cmd.Name()),
			log.String("args", s.redactArgs(cmd)),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "Redis Slow", fields...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		if err == nil && elapsed < s.slowThreshold {
			return nil
		}

		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
		}
		fields := []any{
			log.Int("cmd_count", len(cmds)),
			log.String("commands", strings.Join(names, ",")),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "Redis Pipeline Error", append(fields, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "Redis Pipeline Slow", fields...)
		}
		return err
	}
}

// redactArgs auth/hello 整体隐藏，命中敏感前缀的键只保留前缀
func (s *RedisLoggerHook) redactArgs(cmd redis.Cmder) string {
	name := cmd.Name()
	if name == "auth" || name == "hello" {
		return protected
	}

	args := cmd.Args()
	redacted := make([]any, len(args))
	for i, arg := range args {
		redacted[i] = arg
		str, ok := arg.(string)
		if !ok {
			continue
		}
		for _, prefix := range s.protectedPrefixes {
			if strings.HasPrefix(str, prefix) {
				redacted[i] = prefix + protected
				break
			}
		}
	}
	return fmt.Sprint(redacted)
}

// isExpectedRedisError 键不存在与旧版本服务端不支持 CLIENT SETINFO 不算错误
func isExpectedRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) || err.Error() == "ERR no such key" {
		return true
	}
	return cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo")
}
