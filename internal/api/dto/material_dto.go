package dto

import "time"

// MaterialDTO 创建或整行更新素材
type MaterialDTO struct {
	MaterialNo   string     `json:"material_id" validate:"required,max=100"`
	InfluencerID uint64     `json:"influencer_id" validate:"required"`
	VideoURL     string     `json:"video_url" validate:"required,url,max=200"`
	Title        *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	MaterialType *string    `json:"material_type,omitempty" validate:"omitempty,max=50"`
	PlayCount    int64      `json:"play_count" validate:"gte=0"`
	LikeCount    int64      `json:"like_count" validate:"gte=0"`
	CommentCount int64      `json:"comment_count" validate:"gte=0"`
	ShareCount   int64      `json:"share_count" validate:"gte=0"`
	PublishTime  *time.Time `json:"publish_time,omitempty"`
}

// AutoFetchMaterialDTO 通过视频链接自动创建素材
type AutoFetchMaterialDTO struct {
	VideoURL     string  `json:"video_url" validate:"required,url,max=200"`
	InfluencerID *uint64 `json:"influencer_id,omitempty"`
}

// MaterialQueryDTO 素材列表查询
type MaterialQueryDTO struct {
	PageQuery
	InfluencerID *uint64 `form:"influencer_id"`
	Keyword      string  `form:"keyword" validate:"omitempty,max=100"`
}

type MaterialVO struct {
	ID             uint64     `json:"id"`
	MaterialNo     string     `json:"material_id"`
	InfluencerID   uint64     `json:"influencer_id"`
	InfluencerName string     `json:"influencer_name"`
	VideoURL       string     `json:"video_url"`
	Title          *string    `json:"title,omitempty"`
	MaterialType   *string    `json:"material_type,omitempty"`
	PlayCount      int64      `json:"play_count"`
	LikeCount      int64      `json:"like_count"`
	CommentCount   int64      `json:"comment_count"`
	ShareCount     int64      `json:"share_count"`
	PublishTime    *time.Time `json:"publish_time,omitempty"`
	CreatedBy      uint64     `json:"created_by"`
	TagNames       []string   `json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AutoFetchMaterialVO 自动创建结果
type AutoFetchMaterialVO struct {
	Influencer        *InfluencerVO `json:"influencer"`
	Material          *MaterialVO   `json:"material"`
	InfluencerCreated bool          `json:"influencer_created"`
}
