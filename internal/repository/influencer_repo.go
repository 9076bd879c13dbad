package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// InfluencerFilter 达人列表筛选条件
type InfluencerFilter struct {
	Keyword string
	Level   string
	Page    int
	Size    int
}

type InfluencerRepo interface {
	GetInfluencerById(ctx context.Context, id uint64) (*model.Influencer, error)
	GetInfluencerByUID(ctx context.Context, uid string) (*model.Influencer, error)
	ListInfluencers(ctx context.Context, actor *model.Actor, filter *InfluencerFilter) ([]*model.Influencer, int64, error)
	CountInfluencers(ctx context.Context, actor *model.Actor) (int64, error)
	CreateInfluencer(ctx context.Context, influencer *model.Influencer) error
	UpdateInfluencer(ctx context.Context, influencer *model.Influencer) error
	DeleteInfluencer(ctx context.Context, id uint64) error
	ReplaceInfluencerTags(ctx context.Context, influencer *model.Influencer, tags []*model.InfluencerTag) error
}

type influencerRepoImpl struct {
	db *gorm.DB
}

func NewInfluencerRepo(db *gorm.DB) InfluencerRepo {
	return &influencerRepoImpl{db: db}
}

func (s *influencerRepoImpl) GetInfluencerById(ctx context.Context, id uint64) (*model.Influencer, error) {
	return s.first(s.db.WithContext(ctx).Preload("Tags").Where("id = ?", id))
}

func (s *influencerRepoImpl) GetInfluencerByUID(ctx context.Context, uid string) (*model.Influencer, error) {
	return s.first(s.db.WithContext(ctx).Preload("Tags").Where("uid = ?", uid))
}

func (s *influencerRepoImpl) ListInfluencers(ctx context.Context, actor *model.Actor, filter *InfluencerFilter) ([]*model.Influencer, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Influencer{}).Scopes(ScopeFor(actor, model.KindInfluencer))
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("influencers.name LIKE ? OR influencers.platform_id LIKE ? OR influencers.uid LIKE ?", like, like, like)
	}
	if filter.Level != "" {
		query = query.Where("influencers.level = ?", filter.Level)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	influencers := make([]*model.Influencer, 0)
	result := query.
		Preload("Tags").
		Order("influencers.id DESC").
		Scopes(Paginate(filter.Page, filter.Size)).
		Find(&influencers)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return influencers, total, nil
}

func (s *influencerRepoImpl) CountInfluencers(ctx context.Context, actor *model.Actor) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Influencer{}).
		Scopes(ScopeFor(actor, model.KindInfluencer)).
		Count(&count).Error
	return count, err
}

func (s *influencerRepoImpl) CreateInfluencer(ctx context.Context, influencer *model.Influencer) error {
	err := s.db.WithContext(ctx).Omit("Tags").Create(influencer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// UpdateInfluencer 整行覆盖可编辑字段，创建者与创建时间不变
func (s *influencerRepoImpl) UpdateInfluencer(ctx context.Context, influencer *model.Influencer) error {
	result := s.db.WithContext(ctx).
		Model(&model.Influencer{}).
		Where("id = ?", influencer.ID).
		Select("uid", "name", "platform_id", "level", "product_link", "follower_count", "avg_views", "contact_info", "updated_at").
		Updates(influencer)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return result.Error
}

// DeleteInfluencer 存在关联素材时拒绝删除
func (s *influencerRepoImpl) DeleteInfluencer(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var materials int64
		if err := tx.Model(&model.Material{}).Where("influencer_id = ?", id).Count(&materials).Error; err != nil {
			return err
		}
		if materials > 0 {
			return ErrHasDependents
		}

		influencer := &model.Influencer{ID: id}
		if err := tx.Model(influencer).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(influencer).Error
	})
	return translateDeleteError(err)
}

func (s *influencerRepoImpl) ReplaceInfluencerTags(ctx context.Context, influencer *model.Influencer, tags []*model.InfluencerTag) error {
	return s.db.WithContext(ctx).Model(influencer).Association("Tags").Replace(tags)
}

func (s *influencerRepoImpl) first(query *gorm.DB) (*model.Influencer, error) {
	influencer := &model.Influencer{}
	result := query.First(influencer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return influencer, nil
}
