package service

import (
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/database"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/redis"
	"KolAnalytics/internal/pkg/security"
	"KolAnalytics/internal/repository"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeSource 可编程的广告平台数据源
type fakeSource struct {
	promotionRows  []adplatform.PromotionRow
	promotionErr   error
	influencerInfo *adplatform.InfluencerInfo
	influencerErr  error
	materialRows   []adplatform.MaterialRow
	materialErr    error
	promotionCalls int
}

func (f *fakeSource) FetchPromotionRows(_ context.Context, _ string, _ *adplatform.DateRange) ([]adplatform.PromotionRow, error) {
	f.promotionCalls++
	return f.promotionRows, f.promotionErr
}

func (f *fakeSource) FetchInfluencerInfo(_ context.Context, _ string) (*adplatform.InfluencerInfo, error) {
	if f.influencerErr != nil {
		return nil, f.influencerErr
	}
	if f.influencerInfo == nil {
		return nil, adplatform.ErrNotFound
	}
	return f.influencerInfo, nil
}

func (f *fakeSource) FetchMaterialBatch(_ context.Context, _ []string) ([]adplatform.MaterialRow, error) {
	return f.materialRows, f.materialErr
}

func (f *fakeSource) FetchMaterialIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type testEnv struct {
	db     *gorm.DB
	redis  *miniredis.Miniredis
	source *fakeSource

	userRepo       repository.UserRepo
	influencerRepo repository.InfluencerRepo
	materialRepo   repository.MaterialRepo
	promotionRepo  repository.PromotionRepo
	tagRepo        repository.TagRepo

	dashboard  DashboardService
	ingest     PromotionIngestService
	influencer InfluencerService
	material   MaterialService
	promotion  PromotionService
	tag        TagService
	user       UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })

	env := &testEnv{
		db:             db,
		redis:          mr,
		source:         &fakeSource{},
		userRepo:       repository.NewUserRepo(db),
		influencerRepo: repository.NewInfluencerRepo(db),
		materialRepo:   repository.NewMaterialRepo(db),
		promotionRepo:  repository.NewPromotionRepo(db),
		tagRepo:        repository.NewTagRepository(db),
	}
	policy := authz.MustNewAccessPolicy()
	env.dashboard = NewDashboardService(env.influencerRepo, env.materialRepo, env.promotionRepo)
	env.ingest = NewPromotionIngestService(env.materialRepo, env.promotionRepo, policy, env.source, env.dashboard, metrics.NewMetrics(), 90)
	env.influencer = NewInfluencerService(env.influencerRepo, env.tagRepo, policy, env.dashboard)
	env.material = NewMaterialService(env.materialRepo, env.influencerRepo, env.tagRepo, policy, env.source, env.dashboard)
	env.promotion = NewPromotionService(env.promotionRepo, env.materialRepo, policy, env.dashboard)
	env.tag = NewTagService(env.tagRepo, policy)
	env.user = NewUserService(env.userRepo, security.NewTokenManager("test-secret", "kol-test", 1), security.NewPasswordHasher(bcrypt.MinCost))
	return env
}

func (e *testEnv) seedUser(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Password: "x", Role: role}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedInfluencer(t *testing.T, uid string, owner *model.User) *model.Influencer {
	t.Helper()
	influencer := &model.Influencer{UID: uid, Name: "达人" + uid, PlatformID: "dy-" + uid, CreatedBy: owner.ID}
	require.NoError(t, e.db.Create(influencer).Error)
	return influencer
}

func (e *testEnv) seedMaterial(t *testing.T, materialID string, influencer *model.Influencer, owner *model.User) *model.Material {
	t.Helper()
	material := &model.Material{
		MaterialNo:   materialID,
		InfluencerID: influencer.ID,
		VideoURL:     "https://www.douyin.com/video/" + materialID,
		CreatedBy:    owner.ID,
	}
	require.NoError(t, e.db.Create(material).Error)
	return material
}

func (e *testEnv) countPromotions(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&model.PromotionRecord{}).Count(&count).Error)
	return count
}
