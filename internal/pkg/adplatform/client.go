package adplatform

import (
	"KolAnalytics/internal/api/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound 上游没有对应数据（如视频链接无法解析出达人）
var ErrNotFound = errors.New("adplatform: not found")

// DateRange 闭区间日期范围，按天
type DateRange struct {
	Start time.Time
	End   time.Time
}

// PromotionRow 上游返回的一天推广数据，date 原样保留由调用方解析
type PromotionRow struct {
	Date            string          `json:"date"`
	Cost            decimal.Decimal `json:"cost"`
	SalesAmount     decimal.Decimal `json:"sales_amount"`
	ExposureCount   int64           `json:"exposure_count"`
	ClickCount      int64           `json:"click_count"`
	ConversionCount int64           `json:"conversion_count"`
}

type InfluencerInfo struct {
	Name       string `json:"name"`
	PlatformID string `json:"douyin_id"`
	UID        string `json:"uid"`
	Level      string `json:"influencer_level"`
}

type MaterialRow struct {
	MaterialID   string `json:"material_id"`
	VideoURL     string `json:"video_url"`
	Title        string `json:"title"`
	PlayCount    int64  `json:"play_count"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	ShareCount   int64  `json:"share_count"`
}

// Client 广告平台数据源，返回结果不保证顺序与完整性
type Client interface {
	// FetchPromotionRows dateRange 为 nil 时由平台决定默认窗口
	FetchPromotionRows(ctx context.Context, materialID string, dateRange *DateRange) ([]PromotionRow, error)
	FetchInfluencerInfo(ctx context.Context, videoURL string) (*InfluencerInfo, error)
	FetchMaterialBatch(ctx context.Context, materialIDs []string) ([]MaterialRow, error)
	FetchMaterialIDs(ctx context.Context, influencerUID string) ([]string, error)
}

// NewClient 按配置选择实现，mode 为空时使用 stub
func NewClient(cfg config.AdPlatformConfig) (Client, error) {
	switch cfg.Mode {
	case "", "stub":
		return NewStubClient(), nil
	case "http":
		if cfg.BaseURL == "" {
			return nil, errors.New("adplatform: base_url is required in http mode")
		}
		return NewHTTPClient(cfg), nil
	default:
		return nil, fmt.Errorf("adplatform: unsupported mode %q", cfg.Mode)
	}
}
