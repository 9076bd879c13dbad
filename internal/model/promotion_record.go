package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromotionRecord 素材每日推广数据，(material_id, date) 唯一
type PromotionRecord struct {
	ID              uint64              `gorm:"primaryKey"`
	MaterialID      uint64              `gorm:"not null;uniqueIndex:idx_promotion_material_date,priority:1"`
	Date            time.Time           `gorm:"type:date;not null;uniqueIndex:idx_promotion_material_date,priority:2"`
	Name            *string             `gorm:"type:varchar(200)"`
	ExposureCount   int64               `gorm:"not null;default:0"`
	ClickCount      int64               `gorm:"not null;default:0"`
	ConversionCount int64               `gorm:"not null;default:0"`
	Cost            decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	SalesAmount     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	ROI             decimal.NullDecimal `gorm:"column:roi;type:decimal(10,2)"`
	Notes           *string             `gorm:"type:text"`
	CreatedBy       uint64              `gorm:"not null;index:idx_promotion_created_by"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Material *Material `gorm:"foreignKey:MaterialID;references:ID;constraint:OnDelete:RESTRICT"`
	Creator  *User     `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:RESTRICT"`
}

func (PromotionRecord) TableName() string {
	return "promotion_records"
}

// BeforeSave 保存前统一日期精度并重算 ROI
func (p *PromotionRecord) BeforeSave(_ *gorm.DB) error {
	p.Date = TruncateDay(p.Date)
	p.ROI = ComputeROI(p.Cost, p.SalesAmount)
	return nil
}

// ComputeROI (sales - cost) / cost，cost 为 0 时无定义
func ComputeROI(cost, sales decimal.Decimal) decimal.NullDecimal {
	if !cost.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(sales.Sub(cost).DivRound(cost, 2))
}

// ROAS 广告支出回报率，cost 为 0 时返回 0
func (p *PromotionRecord) ROAS() decimal.Decimal {
	if !p.Cost.IsPositive() {
		return decimal.Zero
	}
	return p.SalesAmount.DivRound(p.Cost, 4)
}

// CTR 点击率
func (p *PromotionRecord) CTR() decimal.Decimal {
	return ratio(p.ClickCount, p.ExposureCount)
}

// ConversionRate 转化率
func (p *PromotionRecord) ConversionRate() decimal.Decimal {
	return ratio(p.ConversionCount, p.ClickCount)
}

func ratio(num, den int64) decimal.Decimal {
	if den <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(den), 4)
}

// TruncateDay 将时间归一到 UTC 零点
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
