package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type MaterialService interface {
	CreateMaterial(ctx context.Context, actor *model.Actor, materialDTO *dto.MaterialDTO) (*dto.MaterialVO, error)
	// AutoCreateFromURL 通过视频链接解析达人与素材，达人不存在时一并创建
	AutoCreateFromURL(ctx context.Context, actor *model.Actor, autoDTO *dto.AutoFetchMaterialDTO) (*dto.AutoFetchMaterialVO, error)
	GetMaterial(ctx context.Context, actor *model.Actor, id uint64) (*dto.MaterialVO, error)
	ListMaterials(ctx context.Context, actor *model.Actor, query *dto.MaterialQueryDTO) (*dto.PageDTO[*dto.MaterialVO], error)
	UpdateMaterial(ctx context.Context, actor *model.Actor, id uint64, materialDTO *dto.MaterialDTO) (*dto.MaterialVO, error)
	DeleteMaterial(ctx context.Context, actor *model.Actor, id uint64) error
	SetMaterialTags(ctx context.Context, actor *model.Actor, id uint64, tagNames []string) (*dto.MaterialVO, error)
}

type MaterialServiceImpl struct {
	materialRepo     repository.MaterialRepo
	influencerRepo   repository.InfluencerRepo
	tagRepo          repository.TagRepo
	policy           authz.AccessPolicy
	source           adplatform.Client
	dashboardService DashboardService
}

func NewMaterialService(
	materialRepo repository.MaterialRepo,
	influencerRepo repository.InfluencerRepo,
	tagRepo repository.TagRepo,
	policy authz.AccessPolicy,
	source adplatform.Client,
	dashboardService DashboardService,
) MaterialService {
	return &MaterialServiceImpl{
		materialRepo:     materialRepo,
		influencerRepo:   influencerRepo,
		tagRepo:          tagRepo,
		policy:           policy,
		source:           source,
		dashboardService: dashboardService,
	}
}

func (s *MaterialServiceImpl) CreateMaterial(ctx context.Context, actor *model.Actor, materialDTO *dto.MaterialDTO) (*dto.MaterialVO, error) {
	err := authorize(s.policy, actor, model.Resource{Kind: model.KindMaterial, OwnerID: actor.GetID()}, model.ActionCreate)
	if err != nil {
		return nil, err
	}
	if _, err = s.ownedInfluencer(ctx, actor, materialDTO.InfluencerID); err != nil {
		return nil, err
	}

	material := &model.Material{}
	if err = copier.Copy(material, materialDTO); err != nil {
		return nil, err
	}
	material.MaterialNo = strings.TrimSpace(material.MaterialNo)
	material.CreatedBy = actor.ID

	if err = s.createMaterial(ctx, material); err != nil {
		return nil, err
	}
	return s.GetMaterial(ctx, actor, material.ID)
}

func (s *MaterialServiceImpl) AutoCreateFromURL(ctx context.Context, actor *model.Actor, autoDTO *dto.AutoFetchMaterialDTO) (*dto.AutoFetchMaterialVO, error) {
	err := authorize(s.policy, actor, model.Resource{Kind: model.KindMaterial, OwnerID: actor.GetID()}, model.ActionCreate)
	if err != nil {
		return nil, err
	}

	materialID, err := materialIDFromURL(autoDTO.VideoURL)
	if err != nil {
		return nil, err
	}
	existing, err := s.materialRepo.GetMaterialByNo(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMaterialExist
	}

	influencer, created, err := s.resolveInfluencer(ctx, actor, autoDTO)
	if err != nil {
		return nil, err
	}

	material := &model.Material{
		MaterialNo:   materialID,
		InfluencerID: influencer.ID,
		VideoURL:     autoDTO.VideoURL,
		CreatedBy:    actor.ID,
	}
	s.fillMaterialStats(ctx, material)

	if err = s.createMaterial(ctx, material); err != nil {
		return nil, err
	}

	influencerVO, err := toInfluencerVO(influencer)
	if err != nil {
		return nil, err
	}
	materialVO, err := s.GetMaterial(ctx, actor, material.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AutoFetchMaterialVO{
		Influencer:        influencerVO,
		Material:          materialVO,
		InfluencerCreated: created,
	}, nil
}

// resolveInfluencer 指定了达人时直接使用，否则按平台 UID 查找，找不到则创建
func (s *MaterialServiceImpl) resolveInfluencer(ctx context.Context, actor *model.Actor, autoDTO *dto.AutoFetchMaterialDTO) (*model.Influencer, bool, error) {
	if autoDTO.InfluencerID != nil {
		influencer, err := s.ownedInfluencer(ctx, actor, *autoDTO.InfluencerID)
		return influencer, false, err
	}

	info, err := s.source.FetchInfluencerInfo(ctx, autoDTO.VideoURL)
	if err != nil {
		if adplatform.IsNotFound(err) {
			return nil, false, ErrInfluencerInfoNotFound
		}
		return nil, false, upstreamError(err)
	}

	influencer, err := s.influencerRepo.GetInfluencerByUID(ctx, info.UID)
	if err != nil {
		return nil, false, err
	}
	if influencer != nil {
		res := model.Resource{Kind: model.KindInfluencer, OwnerID: influencer.CreatedBy, AccountID: influencer.CreatedBy}
		if err = authorize(s.policy, actor, res, model.ActionUpdate); err != nil {
			return nil, false, err
		}
		return influencer, false, nil
	}

	influencer = &model.Influencer{
		UID:        info.UID,
		Name:       info.Name,
		PlatformID: info.PlatformID,
		Level:      util.PtrString(info.Level),
		CreatedBy:  actor.ID,
	}
	if err = s.influencerRepo.CreateInfluencer(ctx, influencer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, ErrInfluencerExist
		}
		return nil, false, err
	}
	return influencer, true, nil
}

// fillMaterialStats 尝试从平台补全标题与统计，失败不影响创建
func (s *MaterialServiceImpl) fillMaterialStats(ctx context.Context, material *model.Material) {
	rows, err := s.source.FetchMaterialBatch(ctx, []string{material.MaterialNo})
	if err != nil {
		log.WarnContext(ctx, "fetch material stats failed", "material_id", material.MaterialNo, "err", err)
		return
	}
	for _, row := range rows {
		if row.MaterialID != material.MaterialNo {
			continue
		}
		material.Title = util.PtrString(row.Title)
		material.PlayCount = row.PlayCount
		material.LikeCount = row.LikeCount
		material.CommentCount = row.CommentCount
		material.ShareCount = row.ShareCount
		return
	}
}

func (s *MaterialServiceImpl) GetMaterial(ctx context.Context, actor *model.Actor, id uint64) (*dto.MaterialVO, error) {
	material, err := s.loadAuthorized(ctx, actor, id, model.ActionRead)
	if err != nil {
		return nil, err
	}
	return toMaterialVO(material)
}

func (s *MaterialServiceImpl) ListMaterials(ctx context.Context, actor *model.Actor, query *dto.MaterialQueryDTO) (*dto.PageDTO[*dto.MaterialVO], error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	materials, total, err := s.materialRepo.ListMaterials(ctx, actor, &repository.MaterialFilter{
		InfluencerID: query.InfluencerID,
		Keyword:      strings.TrimSpace(query.Keyword),
		Page:         query.Page,
		Size:         query.Size,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MaterialVO, 0, len(materials))
	for _, material := range materials {
		vo, err := toMaterialVO(material)
		if err != nil {
			return nil, err
		}
		items = append(items, vo)
	}
	return &dto.PageDTO[*dto.MaterialVO]{Items: items, Total: total, Page: query.Page, Size: query.Size}, nil
}

func (s *MaterialServiceImpl) UpdateMaterial(ctx context.Context, actor *model.Actor, id uint64, materialDTO *dto.MaterialDTO) (*dto.MaterialVO, error) {
	material, err := s.loadAuthorized(ctx, actor, id, model.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if materialDTO.InfluencerID != material.InfluencerID {
		if _, err = s.ownedInfluencer(ctx, actor, materialDTO.InfluencerID); err != nil {
			return nil, err
		}
	}

	if err = copier.Copy(material, materialDTO); err != nil {
		return nil, err
	}
	material.MaterialNo = strings.TrimSpace(material.MaterialNo)

	if err = s.materialRepo.UpdateMaterial(ctx, material); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrMaterialExist
		}
		return nil, err
	}
	return s.GetMaterial(ctx, actor, id)
}

func (s *MaterialServiceImpl) DeleteMaterial(ctx context.Context, actor *model.Actor, id uint64) error {
	if _, err := s.loadAuthorized(ctx, actor, id, model.ActionDelete); err != nil {
		return err
	}
	if err := s.materialRepo.DeleteMaterial(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return ErrMaterialHasPromotions
		}
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *MaterialServiceImpl) SetMaterialTags(ctx context.Context, actor *model.Actor, id uint64, tagNames []string) (*dto.MaterialVO, error) {
	material, err := s.loadAuthorized(ctx, actor, id, model.ActionUpdate)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.GetOrCreateMaterialTags(ctx, normalizeTagNames(tagNames))
	if err != nil {
		return nil, err
	}
	if err = s.materialRepo.ReplaceMaterialTags(ctx, material, tags); err != nil {
		return nil, err
	}
	return s.GetMaterial(ctx, actor, id)
}

func (s *MaterialServiceImpl) createMaterial(ctx context.Context, material *model.Material) error {
	if err := s.materialRepo.CreateMaterial(ctx, material); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrMaterialExist
		}
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// ownedInfluencer 素材只能挂在当前用户有权修改的达人下
func (s *MaterialServiceImpl) ownedInfluencer(ctx context.Context, actor *model.Actor, influencerID uint64) (*model.Influencer, error) {
	influencer, err := s.influencerRepo.GetInfluencerById(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrInfluencerNotFound
	}
	res := model.Resource{Kind: model.KindInfluencer, OwnerID: influencer.CreatedBy, AccountID: influencer.CreatedBy}
	if err = authorize(s.policy, actor, res, model.ActionUpdate); err != nil {
		return nil, err
	}
	return influencer, nil
}

func (s *MaterialServiceImpl) loadAuthorized(ctx context.Context, actor *model.Actor, id uint64, action model.Action) (*model.Material, error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}
	material, err := s.materialRepo.GetMaterialById(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}
	res := model.Resource{Kind: model.KindMaterial, OwnerID: material.CreatedBy}
	if material.Influencer != nil {
		res.AccountID = material.Influencer.CreatedBy
	}
	if err = authorize(s.policy, actor, res, action); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialServiceImpl) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardService.Invalidate(ctx); err != nil {
		logCacheError(ctx, err)
	}
}
