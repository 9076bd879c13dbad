package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// MaterialFilter 素材列表筛选条件
type MaterialFilter struct {
	InfluencerID *uint64
	Keyword      string
	Page         int
	Size         int
}

// MaterialStats 外部平台同步回来的素材统计
type MaterialStats struct {
	Title        *string
	PlayCount    int64
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
}

type MaterialRepo interface {
	GetMaterialById(ctx context.Context, id uint64) (*model.Material, error)
	GetMaterialByNo(ctx context.Context, materialNo string) (*model.Material, error)
	ListMaterials(ctx context.Context, actor *model.Actor, filter *MaterialFilter) ([]*model.Material, int64, error)
	CountMaterials(ctx context.Context, actor *model.Actor) (int64, error)
	ListAllMaterialIDs(ctx context.Context, batchSize int, fn func(batch []*model.Material) error) error
	CreateMaterial(ctx context.Context, material *model.Material) error
	UpdateMaterial(ctx context.Context, material *model.Material) error
	UpdateMaterialStats(ctx context.Context, materialNo string, stats *MaterialStats) error
	DeleteMaterial(ctx context.Context, id uint64) error
	ReplaceMaterialTags(ctx context.Context, material *model.Material, tags []*model.MaterialTag) error
}

type materialRepoImpl struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepo {
	return &materialRepoImpl{db: db}
}

func (s *materialRepoImpl) GetMaterialById(ctx context.Context, id uint64) (*model.Material, error) {
	return s.first(s.db.WithContext(ctx).Preload("Influencer").Preload("Tags").Where("id = ?", id))
}

func (s *materialRepoImpl) GetMaterialByNo(ctx context.Context, materialNo string) (*model.Material, error) {
	return s.first(s.db.WithContext(ctx).Preload("Influencer").Preload("Tags").Where("material_no = ?", materialNo))
}

func (s *materialRepoImpl) ListMaterials(ctx context.Context, actor *model.Actor, filter *MaterialFilter) ([]*model.Material, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Material{}).Scopes(ScopeFor(actor, model.KindMaterial))
	if filter.InfluencerID != nil {
		query = query.Where("materials.influencer_id = ?", *filter.InfluencerID)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("materials.material_no LIKE ? OR materials.title LIKE ?", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	materials := make([]*model.Material, 0)
	result := query.
		Preload("Influencer").
		Preload("Tags").
		Order("materials.id DESC").
		Scopes(Paginate(filter.Page, filter.Size)).
		Find(&materials)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return materials, total, nil
}

func (s *materialRepoImpl) CountMaterials(ctx context.Context, actor *model.Actor) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Material{}).
		Scopes(ScopeFor(actor, model.KindMaterial)).
		Count(&count).Error
	return count, err
}

// ListAllMaterialIDs 分批遍历全部素材，仅供定时任务使用
func (s *materialRepoImpl) ListAllMaterialIDs(ctx context.Context, batchSize int, fn func(batch []*model.Material) error) error {
	materials := make([]*model.Material, 0, batchSize)
	result := s.db.WithContext(ctx).
		Select("id", "material_no", "influencer_id", "created_by").
		FindInBatches(&materials, batchSize, func(tx *gorm.DB, batch int) error {
			return fn(materials)
		})
	return result.Error
}

func (s *materialRepoImpl) CreateMaterial(ctx context.Context, material *model.Material) error {
	err := s.db.WithContext(ctx).Omit("Tags", "Influencer").Create(material).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// UpdateMaterial 整行覆盖可编辑字段，创建者与创建时间不变
func (s *materialRepoImpl) UpdateMaterial(ctx context.Context, material *model.Material) error {
	result := s.db.WithContext(ctx).
		Model(&model.Material{}).
		Where("id = ?", material.ID).
		Select("material_no", "influencer_id", "video_url", "title", "material_type",
			"play_count", "like_count", "comment_count", "share_count", "publish_time", "updated_at").
		Updates(material)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return result.Error
}

func (s *materialRepoImpl) UpdateMaterialStats(ctx context.Context, materialNo string, stats *MaterialStats) error {
	updates := map[string]interface{}{
		"play_count":    stats.PlayCount,
		"like_count":    stats.LikeCount,
		"comment_count": stats.CommentCount,
		"share_count":   stats.ShareCount,
	}
	if stats.Title != nil {
		updates["title"] = *stats.Title
	}
	return s.db.WithContext(ctx).
		Model(&model.Material{}).
		Where("material_no = ?", materialNo).
		Updates(updates).Error
}

// DeleteMaterial 存在推广数据时拒绝删除
func (s *materialRepoImpl) DeleteMaterial(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records int64
		if err := tx.Model(&model.PromotionRecord{}).Where("material_id = ?", id).Count(&records).Error; err != nil {
			return err
		}
		if records > 0 {
			return ErrHasDependents
		}

		material := &model.Material{ID: id}
		if err := tx.Model(material).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(material).Error
	})
	return translateDeleteError(err)
}

func (s *materialRepoImpl) ReplaceMaterialTags(ctx context.Context, material *model.Material, tags []*model.MaterialTag) error {
	return s.db.WithContext(ctx).Model(material).Association("Tags").Replace(tags)
}

func (s *materialRepoImpl) first(query *gorm.DB) (*model.Material, error) {
	material := &model.Material{}
	result := query.First(material)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return material, nil
}
