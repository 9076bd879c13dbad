package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionDTO 手工录入或整行更新推广数据
type PromotionDTO struct {
	MaterialID      uint64          `json:"material_id" validate:"required"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	Name            *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	ExposureCount   int64           `json:"exposure_count" validate:"gte=0"`
	ClickCount      int64           `json:"click_count" validate:"gte=0"`
	ConversionCount int64           `json:"conversion_count" validate:"gte=0"`
	Cost            decimal.Decimal `json:"cost"`
	SalesAmount     decimal.Decimal `json:"sales_amount"`
	Notes           *string         `json:"notes,omitempty"`
}

// IngestDTO 从广告平台抓取推广数据，日期范围可选
type IngestDTO struct {
	MaterialID string `json:"material_id" validate:"required,max=100"`
	StartDate  string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// IngestResultDTO 抓取结果
type IngestResultDTO struct {
	MaterialID   string `json:"material_id"`
	SavedCount   int    `json:"saved_count"`
	SkippedCount int    `json:"skipped_count"`
	ErrorCount   int    `json:"error_count"`
}

// PromotionQueryDTO 推广数据列表查询
type PromotionQueryDTO struct {
	PageQuery
	MaterialID *uint64 `form:"material_id"`
	StartDate  string  `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string  `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// PromotionVO revenue 为 sales_amount 的展示别名
type PromotionVO struct {
	ID                uint64           `json:"id"`
	MaterialID        uint64           `json:"material_id"`
	MaterialNaturalID string           `json:"material_natural_id"`
	InfluencerName    string           `json:"influencer_name"`
	Date              string           `json:"date"`
	Name              *string          `json:"name,omitempty"`
	ExposureCount     int64            `json:"exposure_count"`
	ClickCount        int64            `json:"click_count"`
	ConversionCount   int64            `json:"conversion_count"`
	Cost              decimal.Decimal  `json:"cost"`
	SalesAmount       decimal.Decimal  `json:"sales_amount"`
	Revenue           decimal.Decimal  `json:"revenue"`
	ROI               *decimal.Decimal `json:"roi"`
	ROAS              decimal.Decimal  `json:"roas"`
	CTR               decimal.Decimal  `json:"ctr"`
	ConversionRate    decimal.Decimal  `json:"conversion_rate"`
	Notes             *string          `json:"notes,omitempty"`
	CreatedBy         uint64           `json:"created_by"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
