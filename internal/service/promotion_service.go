package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/repository"
	"context"
	"errors"
	"fmt"
)

type PromotionService interface {
	// CreatePromotion 手工录入，(素材, 日期) 已存在时返回 ErrPromotionExist
	CreatePromotion(ctx context.Context, actor *model.Actor, promotionDTO *dto.PromotionDTO) (*dto.PromotionVO, error)
	GetPromotion(ctx context.Context, actor *model.Actor, id uint64) (*dto.PromotionVO, error)
	ListPromotions(ctx context.Context, actor *model.Actor, query *dto.PromotionQueryDTO) (*dto.PageDTO[*dto.PromotionVO], error)
	UpdatePromotion(ctx context.Context, actor *model.Actor, id uint64, promotionDTO *dto.PromotionDTO) (*dto.PromotionVO, error)
	DeletePromotion(ctx context.Context, actor *model.Actor, id uint64) error
}

type PromotionServiceImpl struct {
	promotionRepo    repository.PromotionRepo
	materialRepo     repository.MaterialRepo
	policy           authz.AccessPolicy
	dashboardService DashboardService
}

func NewPromotionService(
	promotionRepo repository.PromotionRepo,
	materialRepo repository.MaterialRepo,
	policy authz.AccessPolicy,
	dashboardService DashboardService,
) PromotionService {
	return &PromotionServiceImpl{
		promotionRepo:    promotionRepo,
		materialRepo:     materialRepo,
		policy:           policy,
		dashboardService: dashboardService,
	}
}

func (s *PromotionServiceImpl) CreatePromotion(ctx context.Context, actor *model.Actor, promotionDTO *dto.PromotionDTO) (*dto.PromotionVO, error) {
	err := authorize(s.policy, actor, model.Resource{Kind: model.KindPromotion, OwnerID: actor.GetID()}, model.ActionCreate)
	if err != nil {
		return nil, err
	}

	record := &model.PromotionRecord{CreatedBy: actor.ID}
	if err = s.applyDTO(ctx, record, promotionDTO); err != nil {
		return nil, err
	}

	existing, err := s.promotionRepo.GetPromotionByMaterialAndDate(ctx, record.MaterialID, record.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromotionExist
	}

	if err = s.promotionRepo.CreatePromotion(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPromotionExist
		}
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return s.GetPromotion(ctx, actor, record.ID)
}

func (s *PromotionServiceImpl) GetPromotion(ctx context.Context, actor *model.Actor, id uint64) (*dto.PromotionVO, error) {
	record, err := s.loadAuthorized(ctx, actor, id, model.ActionRead)
	if err != nil {
		return nil, err
	}
	return toPromotionVO(record), nil
}

func (s *PromotionServiceImpl) ListPromotions(ctx context.Context, actor *model.Actor, query *dto.PromotionQueryDTO) (*dto.PageDTO[*dto.PromotionVO], error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}

	filter := &repository.PromotionFilter{
		MaterialID: query.MaterialID,
		Page:       query.Page,
		Size:       query.Size,
	}
	if query.StartDate != "" {
		start, err := util.ParseDate(query.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDate, query.StartDate)
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := util.ParseDate(query.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDate, query.EndDate)
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, ErrInvalidDateRange
	}

	records, total, err := s.promotionRepo.ListPromotions(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PromotionVO, 0, len(records))
	for _, record := range records {
		items = append(items, toPromotionVO(record))
	}
	return &dto.PageDTO[*dto.PromotionVO]{Items: items, Total: total, Page: query.Page, Size: query.Size}, nil
}

func (s *PromotionServiceImpl) UpdatePromotion(ctx context.Context, actor *model.Actor, id uint64, promotionDTO *dto.PromotionDTO) (*dto.PromotionVO, error) {
	record, err := s.loadAuthorized(ctx, actor, id, model.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err = s.applyDTO(ctx, record, promotionDTO); err != nil {
		return nil, err
	}

	existing, err := s.promotionRepo.GetPromotionByMaterialAndDate(ctx, record.MaterialID, record.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != record.ID {
		return nil, ErrPromotionExist
	}

	if err = s.promotionRepo.UpdatePromotion(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPromotionExist
		}
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return s.GetPromotion(ctx, actor, id)
}

func (s *PromotionServiceImpl) DeletePromotion(ctx context.Context, actor *model.Actor, id uint64) error {
	if _, err := s.loadAuthorized(ctx, actor, id, model.ActionDelete); err != nil {
		return err
	}
	if err := s.promotionRepo.DeletePromotion(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// applyDTO 校验输入并整行覆盖可编辑字段，ROI 在保存时重算
func (s *PromotionServiceImpl) applyDTO(ctx context.Context, record *model.PromotionRecord, promotionDTO *dto.PromotionDTO) error {
	date, err := util.ParseDate(promotionDTO.Date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedDate, promotionDTO.Date)
	}
	if date.After(util.Today()) {
		return ErrFutureDate
	}
	if err = validateMoney(promotionDTO.Cost, promotionDTO.SalesAmount); err != nil {
		return err
	}

	material, err := s.materialRepo.GetMaterialById(ctx, promotionDTO.MaterialID)
	if err != nil {
		return err
	}
	if material == nil {
		return ErrMaterialNotFound
	}

	record.MaterialID = material.ID
	record.Date = date
	record.Name = promotionDTO.Name
	record.ExposureCount = promotionDTO.ExposureCount
	record.ClickCount = promotionDTO.ClickCount
	record.ConversionCount = promotionDTO.ConversionCount
	record.Cost = promotionDTO.Cost.Round(2)
	record.SalesAmount = promotionDTO.SalesAmount.Round(2)
	record.Notes = promotionDTO.Notes
	record.Material = nil
	return nil
}

// loadAuthorized 推广数据的归属账号为其素材所属达人的创建者
func (s *PromotionServiceImpl) loadAuthorized(ctx context.Context, actor *model.Actor, id uint64, action model.Action) (*model.PromotionRecord, error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	record, err := s.promotionRepo.GetPromotionById(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrPromotionNotFound
	}
	res := model.Resource{Kind: model.KindPromotion, OwnerID: record.CreatedBy}
	if record.Material != nil && record.Material.Influencer != nil {
		res.AccountID = record.Material.Influencer.CreatedBy
	}
	if err = authorize(s.policy, actor, res, action); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PromotionServiceImpl) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardService.Invalidate(ctx); err != nil {
		logCacheError(ctx, err)
	}
}
