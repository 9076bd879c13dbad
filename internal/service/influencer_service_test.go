package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func influencerDTO(uid string) *dto.InfluencerDTO {
	return &dto.InfluencerDTO{UID: uid, Name: "达人" + uid, PlatformID: "dy-" + uid, FollowerCount: 1000}
}

func TestInfluencerService_CreateAndConflict(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", model.RoleBusiness)
	pitcher := env.seedUser(t, "pete", model.RolePitcher)
	ctx := context.Background()

	vo, err := env.influencer.CreateInfluencer(ctx, alice.Actor(), influencerDTO(" u1 "))
	require.NoError(t, err)
	assert.Equal(t, "u1", vo.UID)
	assert.Equal(t, alice.ID, vo.CreatedBy)
	assert.Empty(t, vo.TagNames)

	_, err = env.influencer.CreateInfluencer(ctx, alice.Actor(), influencerDTO("u1"))
	assert.ErrorIs(t, err, ErrInfluencerExist)

	_, err = env.influencer.CreateInfluencer(ctx, pitcher.Actor(), influencerDTO("u2"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestInfluencerService_OwnershipRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", model.RoleBusiness)
	bob := env.seedUser(t, "bob", model.RoleBusiness)
	pitcher := env.seedUser(t, "pete", model.RolePitcher)
	influencer := env.seedInfluencer(t, "u1", alice)
	ctx := context.Background()

	_, err := env.influencer.GetInfluencer(ctx, bob.Actor(), influencer.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.influencer.GetInfluencer(ctx, pitcher.Actor(), influencer.ID)
	assert.NoError(t, err)

	_, err = env.influencer.UpdateInfluencer(ctx, pitcher.Actor(), influencer.ID, influencerDTO("u1"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.influencer.GetInfluencer(ctx, alice.Actor(), 404)
	assert.ErrorIs(t, err, ErrInfluencerNotFound)

	page, err := env.influencer.ListInfluencers(ctx, bob.Actor(), &dto.InfluencerQueryDTO{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	page, err = env.influencer.ListInfluencers(ctx, pitcher.Actor(), &dto.InfluencerQueryDTO{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestInfluencerService_UpdateAndTags(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", model.RoleBusiness)
	influencer := env.seedInfluencer(t, "u1", alice)
	ctx := context.Background()

	update := influencerDTO("u1")
	update.Name = "改名"
	vo, err := env.influencer.UpdateInfluencer(ctx, alice.Actor(), influencer.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "改名", vo.Name)
	assert.Equal(t, int64(1000), vo.FollowerCount)

	vo, err = env.influencer.SetInfluencerTags(ctx, alice.Actor(), influencer.ID, []string{"美妆", " 美妆 ", "", "头部"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"美妆", "头部"}, vo.TagNames)

	vo, err = env.influencer.SetInfluencerTags(ctx, alice.Actor(), influencer.ID, []string{"母婴"})
	require.NoError(t, err)
	assert.Equal(t, []string{"母婴"}, vo.TagNames)
}

func TestInfluencerService_DeleteGuard(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", model.RoleBusiness)
	withMaterial := env.seedInfluencer(t, "u1", alice)
	env.seedMaterial(t, "m1", withMaterial, alice)
	empty := env.seedInfluencer(t, "u2", alice)
	ctx := context.Background()

	assert.ErrorIs(t, env.influencer.DeleteInfluencer(ctx, alice.Actor(), withMaterial.ID), ErrInfluencerHasMaterials)
	require.NoError(t, env.influencer.DeleteInfluencer(ctx, alice.Actor(), empty.ID))

	_, err := env.influencer.GetInfluencer(ctx, alice.Actor(), empty.ID)
	assert.ErrorIs(t, err, ErrInfluencerNotFound)
}

func TestNormalizeTagNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, normalizeTagNames([]string{" a", "b", "a ", "  "}))
	assert.Empty(t, normalizeTagNames(nil))
}
