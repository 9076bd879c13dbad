package model

import "time"

// InfluencerTag 达人标签
type InfluencerTag struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_influencer_tag_name"`
	CreatedAt time.Time
}

func (InfluencerTag) TableName() string {
	return "influencer_tags"
}

// MaterialTag 素材标签
type MaterialTag struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_material_tag_name"`
	CreatedAt time.Time
}

func (MaterialTag) TableName() string {
	return "material_tags"
}

// TagUsage 标签及其使用次数
type TagUsage struct {
	ID         uint64
	Name       string
	UsageCount int64
}
