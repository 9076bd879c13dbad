package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateTags_Reuses(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateMaterialTags(ctx, []string{"口播", "剧情"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.GetOrCreateMaterialTags(ctx, []string{"剧情", "测评"})
	require.NoError(t, err)
	require.Len(t, second, 2)

	var count int64
	require.NoError(t, db.Model(&model.MaterialTag{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	empty, err := repo.GetOrCreateMaterialTags(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListTagUsage(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "alice", model.RoleBusiness)
	i1 := seedInfluencer(t, db, "u1", owner)
	i2 := seedInfluencer(t, db, "u2", owner)
	repo := NewTagRepository(db)
	influencerRepo := NewInfluencerRepo(db)
	ctx := context.Background()

	tags, err := repo.GetOrCreateInfluencerTags(ctx, []string{"美妆", "母婴", "冷门"})
	require.NoError(t, err)
	byName := map[string]*model.InfluencerTag{}
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	require.NoError(t, influencerRepo.ReplaceInfluencerTags(ctx, i1, []*model.InfluencerTag{byName["美妆"], byName["母婴"]}))
	require.NoError(t, influencerRepo.ReplaceInfluencerTags(ctx, i2, []*model.InfluencerTag{byName["美妆"]}))

	usages, err := repo.ListInfluencerTagUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usages, 3)
	assert.Equal(t, "美妆", usages[0].Name)
	assert.Equal(t, int64(2), usages[0].UsageCount)
	assert.Equal(t, "冷门", usages[2].Name)
	assert.Zero(t, usages[2].UsageCount)
}

func TestCreateMaterialTag_Duplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	tag := &model.MaterialTag{Name: "测评"}
	require.NoError(t, repo.CreateMaterialTag(ctx, tag))
	assert.NotZero(t, tag.ID)

	err := repo.CreateMaterialTag(ctx, &model.MaterialTag{Name: "测评"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, repo.CreateInfluencerTag(ctx, &model.InfluencerTag{Name: "测评"}), "influencer and material tags are separate namespaces")
}
