package authz

import (
	"KolAnalytics/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy(t *testing.T) AccessPolicy {
	t.Helper()
	p, err := NewAccessPolicy()
	require.NoError(t, err)
	return p
}

func TestCan_BusinessOwnership(t *testing.T) {
	p := newPolicy(t)
	business := &model.Actor{ID: 5, Role: model.RoleBusiness}

	assert.False(t, p.Can(business, model.Resource{Kind: model.KindMaterial, OwnerID: 7}, model.ActionDelete))
	assert.True(t, p.Can(business, model.Resource{Kind: model.KindMaterial, OwnerID: 5}, model.ActionDelete))
	assert.False(t, p.Can(business, model.Resource{Kind: model.KindInfluencer, OwnerID: 7}, model.ActionDelete))
	assert.True(t, p.Can(business, model.Resource{Kind: model.KindInfluencer, OwnerID: 5}, model.ActionDelete))
}

func TestCan_Matrix(t *testing.T) {
	p := newPolicy(t)
	business := &model.Actor{ID: 5, Role: model.RoleBusiness}
	pitcher := &model.Actor{ID: 9, Role: model.RolePitcher}

	cases := []struct {
		name   string
		actor  *model.Actor
		res    model.Resource
		action model.Action
		want   bool
	}{
		{"business creates influencer", business, model.Resource{Kind: model.KindInfluencer}, model.ActionCreate, true},
		{"business creates material", business, model.Resource{Kind: model.KindMaterial}, model.ActionCreate, true},
		{"business reads own influencer", business, model.Resource{Kind: model.KindInfluencer, OwnerID: 5}, model.ActionRead, true},
		{"business reads foreign influencer", business, model.Resource{Kind: model.KindInfluencer, OwnerID: 6}, model.ActionRead, false},
		{"business updates foreign material", business, model.Resource{Kind: model.KindMaterial, OwnerID: 6}, model.ActionUpdate, false},
		{"business creates promotion", business, model.Resource{Kind: model.KindPromotion, OwnerID: 5, AccountID: 5}, model.ActionCreate, false},
		{"business reads promotion under own influencer", business, model.Resource{Kind: model.KindPromotion, OwnerID: 9, AccountID: 5}, model.ActionRead, true},
		{"business reads promotion under foreign influencer", business, model.Resource{Kind: model.KindPromotion, OwnerID: 5, AccountID: 6}, model.ActionRead, false},
		{"business creates tag", business, model.Resource{Kind: model.KindTag}, model.ActionCreate, true},
		{"pitcher creates tag", pitcher, model.Resource{Kind: model.KindTag}, model.ActionCreate, false},
		{"business updates promotion", business, model.Resource{Kind: model.KindPromotion, OwnerID: 5, AccountID: 5}, model.ActionUpdate, false},

		{"pitcher reads any influencer", pitcher, model.Resource{Kind: model.KindInfluencer, OwnerID: 5}, model.ActionRead, true},
		{"pitcher reads any material", pitcher, model.Resource{Kind: model.KindMaterial, OwnerID: 5}, model.ActionRead, true},
		{"pitcher reads any promotion", pitcher, model.Resource{Kind: model.KindPromotion, OwnerID: 3, AccountID: 5}, model.ActionRead, true},
		{"pitcher creates influencer", pitcher, model.Resource{Kind: model.KindInfluencer}, model.ActionCreate, false},
		{"pitcher creates material", pitcher, model.Resource{Kind: model.KindMaterial}, model.ActionCreate, false},
		{"pitcher updates material", pitcher, model.Resource{Kind: model.KindMaterial, OwnerID: 9}, model.ActionUpdate, false},
		{"pitcher creates promotion", pitcher, model.Resource{Kind: model.KindPromotion}, model.ActionCreate, true},
		{"pitcher updates own promotion", pitcher, model.Resource{Kind: model.KindPromotion, OwnerID: 9}, model.ActionUpdate, true},
		{"pitcher updates foreign promotion", pitcher, model.Resource{Kind: model.KindPromotion, OwnerID: 3}, model.ActionUpdate, false},
		{"pitcher deletes own promotion", pitcher, model.Resource{Kind: model.KindPromotion, OwnerID: 9}, model.ActionDelete, true},
		{"pitcher deletes foreign promotion", pitcher, model.Resource{Kind: model.KindPromotion, OwnerID: 3}, model.ActionDelete, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Can(tc.actor, tc.res, tc.action))
		})
	}
}

func TestCan_Unauthenticated(t *testing.T) {
	p := newPolicy(t)

	assert.False(t, p.Can(nil, model.Resource{Kind: model.KindInfluencer}, model.ActionRead))
	assert.False(t, p.Can(&model.Actor{Role: model.RolePitcher}, model.Resource{Kind: model.KindInfluencer}, model.ActionRead))
	assert.False(t, p.Can(&model.Actor{ID: 1, Role: "admin"}, model.Resource{Kind: model.KindInfluencer}, model.ActionRead))
}
