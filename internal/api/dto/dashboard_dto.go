package dto

import "github.com/shopspring/decimal"

// DashboardDTO 首页统计，按当前用户可见范围计算
type DashboardDTO struct {
	InfluencerCount int64            `json:"influencer_count"`
	MaterialCount   int64            `json:"material_count"`
	PromotionCount  int64            `json:"promotion_count"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	TotalSales      decimal.Decimal  `json:"total_sales"`
	OverallROI      *decimal.Decimal `json:"overall_roi"`
}
