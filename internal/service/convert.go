package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/model"
	"time"

	"github.com/jinzhu/copier"
)

func toInfluencerVO(influencer *model.Influencer) (*dto.InfluencerVO, error) {
	vo := &dto.InfluencerVO{}
	if err := copier.Copy(vo, influencer); err != nil {
		return nil, err
	}
	vo.TagNames = make([]string, 0, len(influencer.Tags))
	for _, tag := range influencer.Tags {
		vo.TagNames = append(vo.TagNames, tag.Name)
	}
	return vo, nil
}

func toMaterialVO(material *model.Material) (*dto.MaterialVO, error) {
	vo := &dto.MaterialVO{}
	if err := copier.Copy(vo, material); err != nil {
		return nil, err
	}
	if material.Influencer != nil {
		vo.InfluencerName = material.Influencer.Name
	}
	vo.TagNames = make([]string, 0, len(material.Tags))
	for _, tag := range material.Tags {
		vo.TagNames = append(vo.TagNames, tag.Name)
	}
	return vo, nil
}

func toPromotionVO(record *model.PromotionRecord) *dto.PromotionVO {
	vo := &dto.PromotionVO{
		ID:              record.ID,
		MaterialID:      record.MaterialID,
		Date:            record.Date.Format(time.DateOnly),
		Name:            record.Name,
		ExposureCount:   record.ExposureCount,
		ClickCount:      record.ClickCount,
		ConversionCount: record.ConversionCount,
		Cost:            record.Cost,
		SalesAmount:     record.SalesAmount,
		Revenue:         record.SalesAmount,
		ROAS:            record.ROAS(),
		CTR:             record.CTR(),
		ConversionRate:  record.ConversionRate(),
		Notes:           record.Notes,
		CreatedBy:       record.CreatedBy,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	if record.ROI.Valid {
		roi := record.ROI.Decimal
		vo.ROI = &roi
	}
	if record.Material != nil {
		vo.MaterialNaturalID = record.Material.MaterialNo
		if record.Material.Influencer != nil {
			vo.InfluencerName = record.Material.Influencer.Name
		}
	}
	return vo
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		RoleName:  user.Role.DisplayName(),
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

func toTagUsageDTOs(usages []*model.TagUsage) []*dto.TagUsageDTO {
	result := make([]*dto.TagUsageDTO, 0, len(usages))
	for _, usage := range usages {
		result = append(result, &dto.TagUsageDTO{ID: usage.ID, Name: usage.Name, UsageCount: usage.UsageCount})
	}
	return result
}
