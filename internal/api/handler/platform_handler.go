package handler

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

// PlatformHandler 广告平台数据查询，结果不落库
type PlatformHandler struct {
	platformSvc service.PlatformService
}

func NewPlatformHandler(platformSvc service.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformSvc: platformSvc}
}

func (s *PlatformHandler) InfluencerFromURL(c *gin.Context) {
	var req dto.VideoURLDTO
	if !bindJSON(c, &req) {
		return
	}
	info, err := s.platformSvc.GetInfluencerFromURL(c.Request.Context(), req.VideoURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *PlatformHandler) MaterialBatch(c *gin.Context) {
	var req dto.MaterialBatchDTO
	if !bindJSON(c, &req) {
		return
	}
	rows, err := s.platformSvc.GetMaterialBatch(c.Request.Context(), req.MaterialIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

func (s *PlatformHandler) PromotionData(c *gin.Context) {
	var req dto.PromotionDataDTO
	if !bindJSON(c, &req) {
		return
	}
	rows, err := s.platformSvc.GetPromotionData(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

func (s *PlatformHandler) InfluencerMaterials(c *gin.Context) {
	var req dto.InfluencerMaterialsDTO
	if !bindJSON(c, &req) {
		return
	}
	ids, err := s.platformSvc.GetInfluencerMaterialIDs(c.Request.Context(), req.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ids)
}
