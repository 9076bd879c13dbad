package api

import "KolAnalytics/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	DashboardHandler  *handler.DashboardHandler
	InfluencerHandler *handler.InfluencerHandler
	MaterialHandler   *handler.MaterialHandler
	PromotionHandler  *handler.PromotionHandler
	TagHandler        *handler.TagHandler
	PlatformHandler   *handler.PlatformHandler
}
