package logger

import (
	"KolAnalytics/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

// LogWriter gin 访问日志的输出目标，连上 Logstash 后指向远端
var LogWriter io.Writer = os.Stdout

// InitLogger stdout 输出 JSON，配置了 Logstash 且连接成功时额外上报远端
func InitLogger(cfg config.LogstashConfig) {
	var remote io.Writer
	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err != nil {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		} else {
			remote = conn
			LogWriter = conn
		}
	}
	log.SetDefault(log.New(NewHandler(os.Stdout, remote, cfg)))
}

// NewHandler remote 为 nil 时只输出到 stdout；远端日志附带 Logstash 路由字段
func NewHandler(stdout, remote io.Writer, cfg config.LogstashConfig) log.Handler {
	hStdout := log.NewJSONHandler(stdout, &log.HandlerOptions{Level: log.LevelInfo})
	if remote == nil {
		return &ContextHandler{hStdout}
	}

	hRemote := log.NewJSONHandler(remote, &log.HandlerOptions{Level: log.LevelInfo}).
		WithAttrs([]log.Attr{
			log.String("target_index", cfg.Index),
			log.String("log_token", cfg.Token),
		})
	return &ContextHandler{NewTeeHandler(hStdout, NewRemoteFilterHandler(hRemote, parseLevel(cfg.ForwardLevel)))}
}

// parseLevel 无法识别时按 ERROR 处理
func parseLevel(s string) log.Level {
	var level log.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return log.LevelError
	}
	return level
}
