package wire

import (
	"KolAnalytics/internal/api"
	"KolAnalytics/internal/api/config"
	"KolAnalytics/internal/api/handler"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/job"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/cron"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/security"
	"KolAnalytics/internal/repository"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	Metrics *metrics.Metrics
}

// BuildApplication 手工依赖注入，source 为 nil 时按配置创建广告平台数据源
func BuildApplication(db *gorm.DB, cfg *config.Config, source adplatform.Client) (*ApplicationContainer, error) {
	if source == nil {
		var err error
		if source, err = adplatform.NewClient(cfg.AdPlatform); err != nil {
			return nil, err
		}
	}

	policy, err := authz.NewAccessPolicy()
	if err != nil {
		return nil, err
	}
	appMetrics := metrics.NewMetrics()
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)

	userRepo := repository.NewUserRepo(db)
	influencerRepo := repository.NewInfluencerRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	promotionRepo := repository.NewPromotionRepo(db)
	tagRepo := repository.NewTagRepository(db)

	maxRangeDays := cfg.Ingest.MaxRangeDays
	dashboardService := service.NewDashboardService(influencerRepo, materialRepo, promotionRepo)
	userService := service.NewUserService(userRepo, tokenManager, security.NewPasswordHasher(cfg.Password.BcryptCost))
	influencerService := service.NewInfluencerService(influencerRepo, tagRepo, policy, dashboardService)
	materialService := service.NewMaterialService(materialRepo, influencerRepo, tagRepo, policy, source, dashboardService)
	promotionService := service.NewPromotionService(promotionRepo, materialRepo, policy, dashboardService)
	ingestService := service.NewPromotionIngestService(materialRepo, promotionRepo, policy, source, dashboardService, appMetrics, maxRangeDays)
	tagService := service.NewTagService(tagRepo, policy)
	platformService := service.NewPlatformService(source, maxRangeDays)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService),
		InfluencerHandler: handler.NewInfluencerHandler(influencerService),
		MaterialHandler:   handler.NewMaterialHandler(materialService),
		PromotionHandler:  handler.NewPromotionHandler(promotionService, ingestService),
		TagHandler:        handler.NewTagHandler(tagService),
		PlatformHandler:   handler.NewPlatformHandler(platformService),
	}

	router := api.SetupRouter(handlers, api.RouterOptions{
		TokenManager: tokenManager,
		Metrics:      appMetrics,
		AllowOrigins: cfg.Server.AllowOrigins,
		Logstash:     cfg.Logstash,
	})

	batchSize := cfg.Jobs.MaterialBatchSize
	cronMgr := cron.NewCronManager(
		cfg.Jobs,
		job.NewPromotionFetchJob(userRepo, materialRepo, ingestService, appMetrics, batchSize),
		job.NewMaterialSyncJob(materialRepo, source, appMetrics, batchSize),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
		Metrics: appMetrics,
	}, nil
}
