package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/adplatform"
	"context"
)

// PlatformService 广告平台数据透传，只读不落库
type PlatformService interface {
	GetInfluencerFromURL(ctx context.Context, videoURL string) (*adplatform.InfluencerInfo, error)
	GetMaterialBatch(ctx context.Context, materialIDs []string) ([]adplatform.MaterialRow, error)
	GetPromotionData(ctx context.Context, dataDTO *dto.PromotionDataDTO) ([]adplatform.PromotionRow, error)
	GetInfluencerMaterialIDs(ctx context.Context, uid string) ([]string, error)
}

type PlatformServiceImpl struct {
	source       adplatform.Client
	maxRangeDays int
}

func NewPlatformService(source adplatform.Client, maxRangeDays int) PlatformService {
	return &PlatformServiceImpl{
		source:       source,
		maxRangeDays: maxRangeDays,
	}
}

func (s *PlatformServiceImpl) GetInfluencerFromURL(ctx context.Context, videoURL string) (*adplatform.InfluencerInfo, error) {
	info, err := s.source.FetchInfluencerInfo(ctx, videoURL)
	if err != nil {
		if adplatform.IsNotFound(err) {
			return nil, ErrInfluencerInfoNotFound
		}
		return nil, upstreamError(err)
	}
	return info, nil
}

func (s *PlatformServiceImpl) GetMaterialBatch(ctx context.Context, materialIDs []string) ([]adplatform.MaterialRow, error) {
	rows, err := s.source.FetchMaterialBatch(ctx, materialIDs)
	if err != nil {
		return nil, upstreamError(err)
	}
	return rows, nil
}

func (s *PlatformServiceImpl) GetPromotionData(ctx context.Context, dataDTO *dto.PromotionDataDTO) ([]adplatform.PromotionRow, error) {
	dateRange, err := parseDateRange(dataDTO.StartDate, dataDTO.EndDate, s.maxRangeDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.source.FetchPromotionRows(ctx, dataDTO.MaterialID, dateRange)
	if err != nil {
		return nil, upstreamError(err)
	}
	return rows, nil
}

func (s *PlatformServiceImpl) GetInfluencerMaterialIDs(ctx context.Context, uid string) ([]string, error) {
	ids, err := s.source.FetchMaterialIDs(ctx, uid)
	if err != nil {
		return nil, upstreamError(err)
	}
	return ids, nil
}
