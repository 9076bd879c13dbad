package model

import "time"

// Influencer 达人信息
type Influencer struct {
	ID            uint64  `gorm:"primaryKey"`
	UID           string  `gorm:"column:uid;type:varchar(100);not null;uniqueIndex:idx_influencer_uid"`
	Name          string  `gorm:"type:varchar(100);not null"`
	PlatformID    string  `gorm:"type:varchar(100);not null"`
	Level         *string `gorm:"type:varchar(50)"`
	ProductLink   *string `gorm:"type:varchar(200)"`
	FollowerCount int64   `gorm:"not null;default:0"`
	AvgViews      int64   `gorm:"not null;default:0"`
	ContactInfo   *string `gorm:"type:varchar(200)"`
	CreatedBy     uint64  `gorm:"not null;index:idx_influencer_created_by"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Creator *User            `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:RESTRICT"`
	Tags    []*InfluencerTag `gorm:"many2many:influencer_tag_associations;constraint:OnDelete:CASCADE"`
}

func (Influencer) TableName() string {
	return "influencers"
}
