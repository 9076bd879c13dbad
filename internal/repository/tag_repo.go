package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	CreateInfluencerTag(ctx context.Context, tag *model.InfluencerTag) error
	CreateMaterialTag(ctx context.Context, tag *model.MaterialTag) error
	GetOrCreateInfluencerTags(ctx context.Context, tagNames []string) ([]*model.InfluencerTag, error)
	GetOrCreateMaterialTags(ctx context.Context, tagNames []string) ([]*model.MaterialTag, error)
	ListInfluencerTagUsage(ctx context.Context) ([]*model.TagUsage, error)
	ListMaterialTagUsage(ctx context.Context) ([]*model.TagUsage, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

// CreateInfluencerTag 名称已存在时返回 ErrDuplicate
func (s *tagRepoImpl) CreateInfluencerTag(ctx context.Context, tag *model.InfluencerTag) error {
	return createTag(ctx, s.db, tag)
}

func (s *tagRepoImpl) CreateMaterialTag(ctx context.Context, tag *model.MaterialTag) error {
	return createTag(ctx, s.db, tag)
}

func createTag[T any](ctx context.Context, db *gorm.DB, tag *T) error {
	err := db.WithContext(ctx).Create(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *tagRepoImpl) GetOrCreateInfluencerTags(ctx context.Context, tagNames []string) ([]*model.InfluencerTag, error) {
	return getOrCreateTags(ctx, s.db, tagNames, func(name string) *model.InfluencerTag {
		return &model.InfluencerTag{Name: name, CreatedAt: time.Now()}
	})
}

func (s *tagRepoImpl) GetOrCreateMaterialTags(ctx context.Context, tagNames []string) ([]*model.MaterialTag, error) {
	return getOrCreateTags(ctx, s.db, tagNames, func(name string) *model.MaterialTag {
		return &model.MaterialTag{Name: name, CreatedAt: time.Now()}
	})
}

func (s *tagRepoImpl) ListInfluencerTagUsage(ctx context.Context) ([]*model.TagUsage, error) {
	return s.listUsage(ctx, "influencer_tags", "influencer_tag_associations", "influencer_tag_id")
}

func (s *tagRepoImpl) ListMaterialTagUsage(ctx context.Context) ([]*model.TagUsage, error) {
	return s.listUsage(ctx, "material_tags", "material_tag_associations", "material_tag_id")
}

func (s *tagRepoImpl) listUsage(ctx context.Context, table, joinTable, joinColumn string) ([]*model.TagUsage, error) {
	usages := make([]*model.TagUsage, 0)
	err := s.db.WithContext(ctx).
		Table(table+" AS t").
		Select("t.id, t.name, COUNT(a."+joinColumn+") AS usage_count").
		Joins("LEFT JOIN "+joinTable+" AS a ON a."+joinColumn+" = t.id").
		Group("t.id, t.name").
		Order("usage_count DESC, t.name ASC").
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// getOrCreateTags 使用 OnConflict DoNothing 避免重复创建，再按名称查回完整数据
func getOrCreateTags[T any](ctx context.Context, db *gorm.DB, tagNames []string, build func(string) *T) ([]*T, error) {
	tags := make([]*T, 0, len(tagNames))
	if len(tagNames) == 0 {
		return tags, nil
	}
	for _, tagName := range tagNames {
		err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(build(tagName)).Error
		if err != nil {
			return nil, err
		}
	}

	err := db.WithContext(ctx).Where("name IN ?", tagNames).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
