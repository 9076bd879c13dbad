package dto

import "time"

// InfluencerDTO 创建或整行更新达人
type InfluencerDTO struct {
	UID           string  `json:"uid" validate:"required,max=100"`
	Name          string  `json:"name" validate:"required,max=100"`
	PlatformID    string  `json:"platform_id" validate:"required,max=100"`
	Level         *string `json:"level,omitempty" validate:"omitempty,max=50"`
	ProductLink   *string `json:"product_link,omitempty" validate:"omitempty,max=200"`
	FollowerCount int64   `json:"follower_count" validate:"gte=0"`
	AvgViews      int64   `json:"avg_views" validate:"gte=0"`
	ContactInfo   *string `json:"contact_info,omitempty" validate:"omitempty,max=200"`
}

// InfluencerQueryDTO 达人列表查询
type InfluencerQueryDTO struct {
	PageQuery
	Keyword string `form:"keyword" validate:"omitempty,max=100"`
	Level   string `form:"level" validate:"omitempty,max=50"`
}

type InfluencerVO struct {
	ID            uint64    `json:"id"`
	UID           string    `json:"uid"`
	Name          string    `json:"name"`
	PlatformID    string    `json:"platform_id"`
	Level         *string   `json:"level,omitempty"`
	ProductLink   *string   `json:"product_link,omitempty"`
	FollowerCount int64     `json:"follower_count"`
	AvgViews      int64     `json:"avg_views"`
	ContactInfo   *string   `json:"contact_info,omitempty"`
	CreatedBy     uint64    `json:"created_by"`
	TagNames      []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TagsDTO 整体替换标签
type TagsDTO struct {
	Tags []string `json:"tags" validate:"max=20,dive,required,max=50"`
}
