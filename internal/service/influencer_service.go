package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/jinzhu/copier"
)

type InfluencerService interface {
	CreateInfluencer(ctx context.Context, actor *model.Actor, influencerDTO *dto.InfluencerDTO) (*dto.InfluencerVO, error)
	GetInfluencer(ctx context.Context, actor *model.Actor, id uint64) (*dto.InfluencerVO, error)
	ListInfluencers(ctx context.Context, actor *model.Actor, query *dto.InfluencerQueryDTO) (*dto.PageDTO[*dto.InfluencerVO], error)
	UpdateInfluencer(ctx context.Context, actor *model.Actor, id uint64, influencerDTO *dto.InfluencerDTO) (*dto.InfluencerVO, error)
	DeleteInfluencer(ctx context.Context, actor *model.Actor, id uint64) error
	SetInfluencerTags(ctx context.Context, actor *model.Actor, id uint64, tagNames []string) (*dto.InfluencerVO, error)
}

type InfluencerServiceImpl struct {
	influencerRepo   repository.InfluencerRepo
	tagRepo          repository.TagRepo
	policy           authz.AccessPolicy
	dashboardService DashboardService
}

func NewInfluencerService(
	influencerRepo repository.InfluencerRepo,
	tagRepo repository.TagRepo,
	policy authz.AccessPolicy,
	dashboardService DashboardService,
) InfluencerService {
	return &InfluencerServiceImpl{
		influencerRepo:   influencerRepo,
		tagRepo:          tagRepo,
		policy:           policy,
		dashboardService: dashboardService,
	}
}

func (s *InfluencerServiceImpl) CreateInfluencer(ctx context.Context, actor *model.Actor, influencerDTO *dto.InfluencerDTO) (*dto.InfluencerVO, error) {
	err := authorize(s.policy, actor, model.Resource{Kind: model.KindInfluencer, OwnerID: actor.GetID()}, model.ActionCreate)
	if err != nil {
		return nil, err
	}

	influencer := &model.Influencer{}
	if err = copier.Copy(influencer, influencerDTO); err != nil {
		return nil, err
	}
	influencer.UID = strings.TrimSpace(influencer.UID)
	influencer.CreatedBy = actor.ID

	if err = s.influencerRepo.CreateInfluencer(ctx, influencer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrInfluencerExist
		}
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return toInfluencerVO(influencer)
}

func (s *InfluencerServiceImpl) GetInfluencer(ctx context.Context, actor *model.Actor, id uint64) (*dto.InfluencerVO, error) {
	influencer, err := s.loadAuthorized(ctx, actor, id, model.ActionRead)
	if err != nil {
		return nil, err
	}
	return toInfluencerVO(influencer)
}

func (s *InfluencerServiceImpl) ListInfluencers(ctx context.Context, actor *model.Actor, query *dto.InfluencerQueryDTO) (*dto.PageDTO[*dto.InfluencerVO], error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	influencers, total, err := s.influencerRepo.ListInfluencers(ctx, actor, &repository.InfluencerFilter{
		Keyword: strings.TrimSpace(query.Keyword),
		Level:   strings.TrimSpace(query.Level),
		Page:    query.Page,
		Size:    query.Size,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InfluencerVO, 0, len(influencers))
	for _, influencer := range influencers {
		vo, err := toInfluencerVO(influencer)
		if err != nil {
			return nil, err
		}
		items = append(items, vo)
	}
	return &dto.PageDTO[*dto.InfluencerVO]{Items: items, Total: total, Page: query.Page, Size: query.Size}, nil
}

func (s *InfluencerServiceImpl) UpdateInfluencer(ctx context.Context, actor *model.Actor, id uint64, influencerDTO *dto.InfluencerDTO) (*dto.InfluencerVO, error) {
	influencer, err := s.loadAuthorized(ctx, actor, id, model.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err = copier.Copy(influencer, influencerDTO); err != nil {
		return nil, err
	}
	influencer.UID = strings.TrimSpace(influencer.UID)

	if err = s.influencerRepo.UpdateInfluencer(ctx, influencer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrInfluencerExist
		}
		return nil, err
	}
	return s.GetInfluencer(ctx, actor, id)
}

func (s *InfluencerServiceImpl) DeleteInfluencer(ctx context.Context, actor *model.Actor, id uint64) error {
	if _, err := s.loadAuthorized(ctx, actor, id, model.ActionDelete); err != nil {
		return err
	}
	if err := s.influencerRepo.DeleteInfluencer(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return ErrInfluencerHasMaterials
		}
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *InfluencerServiceImpl) SetInfluencerTags(ctx context.Context, actor *model.Actor, id uint64, tagNames []string) (*dto.InfluencerVO, error) {
	influencer, err := s.loadAuthorized(ctx, actor, id, model.ActionUpdate)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.GetOrCreateInfluencerTags(ctx, normalizeTagNames(tagNames))
	if err != nil {
		return nil, err
	}
	if err = s.influencerRepo.ReplaceInfluencerTags(ctx, influencer, tags); err != nil {
		return nil, err
	}
	return s.GetInfluencer(ctx, actor, id)
}

// loadAuthorized 读取达人并按创建者校验权限
func (s *InfluencerServiceImpl) loadAuthorized(ctx context.Context, actor *model.Actor, id uint64, action model.Action) (*model.Influencer, error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	influencer, err := s.influencerRepo.GetInfluencerById(ctx, id)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrInfluencerNotFound
	}
	res := model.Resource{Kind: model.KindInfluencer, OwnerID: influencer.CreatedBy, AccountID: influencer.CreatedBy}
	if err = authorize(s.policy, actor, res, action); err != nil {
		return nil, err
	}
	return influencer, nil
}

func (s *InfluencerServiceImpl) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardService.Invalidate(ctx); err != nil {
		logCacheError(ctx, err)
	}
}

// normalizeTagNames 去除空白与重复标签，保持原有顺序
func normalizeTagNames(tagNames []string) []string {
	seen := make(map[string]struct{}, len(tagNames))
	result := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
