package adplatform

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// stubClient 返回固定数据，用于本地开发与演示
type stubClient struct{}

func NewStubClient() Client {
	return &stubClient{}
}

func (s *stubClient) FetchPromotionRows(ctx context.Context, materialID string, dateRange *DateRange) ([]PromotionRow, error) {
	log.InfoContext(ctx, "stub fetch promotion rows", "material_id", materialID)

	rows := []PromotionRow{
		{Date: "2024-01-01", Cost: decimal.RequireFromString("1000.00"), SalesAmount: decimal.RequireFromString("3000.00")},
		{Date: "2024-01-02", Cost: decimal.RequireFromString("1200.00"), SalesAmount: decimal.RequireFromString("3600.00")},
	}
	if dateRange == nil {
		return rows, nil
	}

	filtered := make([]PromotionRow, 0, len(rows))
	for _, row := range rows {
		d, err := time.ParseInLocation(time.DateOnly, row.Date, time.UTC)
		if err != nil {
			continue
		}
		if d.Before(dateRange.Start) || d.After(dateRange.End) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

func (s *stubClient) FetchInfluencerInfo(ctx context.Context, videoURL string) (*InfluencerInfo, error) {
	log.InfoContext(ctx, "stub fetch influencer info", "video_url", videoURL)
	if strings.TrimSpace(videoURL) == "" {
		return nil, ErrNotFound
	}
	return &InfluencerInfo{
		Name:       "示例达人",
		PlatformID: "douyin123",
		UID:        "uid456",
		Level:      "S级",
	}, nil
}

func (s *stubClient) FetchMaterialBatch(ctx context.Context, materialIDs []string) ([]MaterialRow, error) {
	log.InfoContext(ctx, "stub fetch material batch", "count", len(materialIDs))
	rows := make([]MaterialRow, 0, len(materialIDs))
	for _, mid := range materialIDs {
		rows = append(rows, MaterialRow{
			MaterialID:   mid,
			VideoURL:     fmt.Sprintf("https://www.douyin.com/video/%s", mid),
			Title:        fmt.Sprintf("素材标题_%s", mid),
			PlayCount:    10000,
			LikeCount:    500,
			CommentCount: 100,
		})
	}
	return rows, nil
}

func (s *stubClient) FetchMaterialIDs(ctx context.Context, influencerUID string) ([]string, error) {
	log.InfoContext(ctx, "stub fetch material ids", "uid", influencerUID)
	return []string{"mat123", "mat456", "mat789"}, nil
}
