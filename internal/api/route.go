package api

import (
	"KolAnalytics/internal/api/config"
	"KolAnalytics/internal/api/middleware"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/logger"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterOptions 路由依赖的非 Handler 组件
type RouterOptions struct {
	TokenManager *security.TokenManager
	Metrics      *metrics.Metrics
	AllowOrigins []string
	Logstash     config.LogstashConfig
}

func SetupRouter(group *HandlersGroup, opts RouterOptions) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics"))
	r.Use(middleware.CORSMiddleware(opts.AllowOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	logger.SetupGin(r, opts.Logstash)

	auth := middleware.AuthMiddleware(opts.TokenManager)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		apiGroup.GET("/dashboard", auth, group.DashboardHandler.GetDashboard)

		// 行级权限由服务层判定，这里只做角色粗筛
		influencerGroup := apiGroup.Group("/influencers")
		influencerGroup.Use(auth)
		{
			influencerGroup.GET("", group.InfluencerHandler.ListInfluencers)
			influencerGroup.GET("/:id", group.InfluencerHandler.GetInfluencer)

			writeGroup := influencerGroup.Group("")
			writeGroup.Use(middleware.CheckRoles(model.RoleBusiness))
			{
				writeGroup.POST("", group.InfluencerHandler.CreateInfluencer)
				writeGroup.PUT("/:id", group.InfluencerHandler.UpdateInfluencer)
				writeGroup.DELETE("/:id", group.InfluencerHandler.DeleteInfluencer)
				writeGroup.PUT("/:id/tags", group.InfluencerHandler.SetInfluencerTags)
			}
		}

		materialGroup := apiGroup.Group("/materials")
		materialGroup.Use(auth)
		{
			materialGroup.GET("", group.MaterialHandler.ListMaterials)
			materialGroup.GET("/:id", group.MaterialHandler.GetMaterial)

			writeGroup := materialGroup.Group("")
			writeGroup.Use(middleware.CheckRoles(model.RoleBusiness))
			{
				writeGroup.POST("", group.MaterialHandler.CreateMaterial)
				writeGroup.POST("/auto-fetch", group.MaterialHandler.AutoFetchMaterial)
				writeGroup.PUT("/:id", group.MaterialHandler.UpdateMaterial)
				writeGroup.DELETE("/:id", group.MaterialHandler.DeleteMaterial)
				writeGroup.PUT("/:id/tags", group.MaterialHandler.SetMaterialTags)
			}
		}

		promotionGroup := apiGroup.Group("/promotions")
		promotionGroup.Use(auth)
		{
			promotionGroup.GET("", group.PromotionHandler.ListPromotions)
			promotionGroup.GET("/:id", group.PromotionHandler.GetPromotion)

			writeGroup := promotionGroup.Group("")
			writeGroup.Use(middleware.CheckRoles(model.RolePitcher))
			{
				writeGroup.POST("", group.PromotionHandler.CreatePromotion)
				writeGroup.POST("/ingest", group.PromotionHandler.Ingest)
				writeGroup.PUT("/:id", group.PromotionHandler.UpdatePromotion)
				writeGroup.DELETE("/:id", group.PromotionHandler.DeletePromotion)
			}
		}

		tagGroup := apiGroup.Group("/tags")
		tagGroup.Use(auth)
		{
			tagGroup.GET("/influencer", group.TagHandler.ListInfluencerTags)
			tagGroup.GET("/material", group.TagHandler.ListMaterialTags)
			tagGroup.POST("/influencer", middleware.CheckRoles(model.RoleBusiness), group.TagHandler.CreateInfluencerTag)
			tagGroup.POST("/material", middleware.CheckRoles(model.RoleBusiness), group.TagHandler.CreateMaterialTag)
		}

		platformGroup := apiGroup.Group("/platform")
		platformGroup.Use(auth)
		{
			platformGroup.POST("/influencer/from-url", group.PlatformHandler.InfluencerFromURL)
			platformGroup.POST("/material/batch", group.PlatformHandler.MaterialBatch)
			platformGroup.POST("/promotion/data", group.PlatformHandler.PromotionData)
			platformGroup.POST("/influencer/materials", group.PlatformHandler.InfluencerMaterials)
		}
	}

	return r
}
