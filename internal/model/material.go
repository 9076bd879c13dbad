package model

import "time"

// Material 达人视频素材，MaterialNo 为平台侧素材编号
type Material struct {
	ID           uint64  `gorm:"primaryKey"`
	MaterialNo   string  `gorm:"column:material_no;type:varchar(100);not null;uniqueIndex:idx_material_no"`
	InfluencerID uint64  `gorm:"not null;index:idx_material_influencer"`
	VideoURL     string  `gorm:"type:varchar(200);not null"`
	Title        *string `gorm:"type:varchar(200)"`
	MaterialType *string `gorm:"type:varchar(50)"`
	PlayCount    int64   `gorm:"not null;default:0"`
	LikeCount    int64   `gorm:"not null;default:0"`
	CommentCount int64   `gorm:"not null;default:0"`
	ShareCount   int64   `gorm:"not null;default:0"`
	PublishTime  *time.Time
	CreatedBy    uint64 `gorm:"not null;index:idx_material_created_by"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Influencer *Influencer    `gorm:"foreignKey:InfluencerID;references:ID;constraint:OnDelete:RESTRICT"`
	Creator    *User          `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:RESTRICT"`
	Tags       []*MaterialTag `gorm:"many2many:material_tag_associations;constraint:OnDelete:CASCADE"`
}

func (Material) TableName() string {
	return "materials"
}
