package dto

// VideoURLDTO 视频链接
type VideoURLDTO struct {
	VideoURL string `json:"video_url" validate:"required,url,max=200"`
}

// MaterialBatchDTO 批量查询素材
type MaterialBatchDTO struct {
	MaterialIDs []string `json:"material_ids" validate:"required,min=1,max=100,dive,required,max=100"`
}

// PromotionDataDTO 查询上游推广数据，不落库
type PromotionDataDTO struct {
	MaterialID string `json:"material_id" validate:"required,max=100"`
	StartDate  string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InfluencerMaterialsDTO 查询达人全部素材ID
type InfluencerMaterialsDTO struct {
	UID string `json:"uid" validate:"required,max=100"`
}
