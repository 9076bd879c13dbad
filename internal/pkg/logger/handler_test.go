package logger

import (
	"KolAnalytics/internal/api/config"
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHandler_RemoteFiltering(t *testing.T) {
	var stdout, remote bytes.Buffer
	logger := log.New(NewHandler(&stdout, &remote, config.LogstashConfig{
		Index:        "logstash-kol-analytics",
		Token:        "t0k",
		ForwardLevel: "error",
	}))

	traced := ContextWithTraceID(context.Background(), "req-1")
	logger.InfoContext(traced, "ingest finished")
	logger.Info("cron registered")
	logger.Error("redis unreachable")

	assert.Equal(t, 3, strings.Count(stdout.String(), "\n"), "stdout receives everything")

	lines := strings.Split(strings.TrimSpace(remote.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], `"trace_id":"req-1"`)
		assert.Contains(t, lines[0], `"target_index":"logstash-kol-analytics"`)
		assert.Contains(t, lines[1], "redis unreachable")
	}
	assert.NotContains(t, stdout.String(), "t0k", "routing token is only sent to the remote sink")
}

func TestNewHandler_StdoutOnly(t *testing.T) {
	var stdout bytes.Buffer
	logger := log.New(NewHandler(&stdout, nil, config.LogstashConfig{}))

	logger.InfoContext(WithTraceID(context.Background(), "job-sync-"), "material sync done")
	assert.Contains(t, stdout.String(), `"trace_id":"job-sync-`)
}

func TestTeeHandler_EnabledByAnySink(t *testing.T) {
	var info, debug bytes.Buffer
	tee := NewTeeHandler(
		log.NewJSONHandler(&info, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&debug, &log.HandlerOptions{Level: log.LevelDebug}),
	)
	assert.True(t, tee.Enabled(context.Background(), log.LevelDebug))

	log.New(tee).Debug("sql trace")
	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), "sql trace")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelWarn, parseLevel("warn"))
	assert.Equal(t, log.LevelError, parseLevel(""))
	assert.Equal(t, log.LevelError, parseLevel("loud"))
}
