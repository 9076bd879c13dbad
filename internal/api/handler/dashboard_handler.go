package handler

import (
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (s *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := s.dashboardSvc.GetDashboard(c.Request.Context(), currentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}
