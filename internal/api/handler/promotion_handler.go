package handler

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionSvc service.PromotionService
	ingestSvc    service.PromotionIngestService
}

func NewPromotionHandler(promotionSvc service.PromotionService, ingestSvc service.PromotionIngestService) *PromotionHandler {
	return &PromotionHandler{
		promotionSvc: promotionSvc,
		ingestSvc:    ingestSvc,
	}
}

func (s *PromotionHandler) ListPromotions(c *gin.Context) {
	var query dto.PromotionQueryDTO
	if !bindQuery(c, &query) {
		return
	}
	page, err := s.promotionSvc.ListPromotions(c.Request.Context(), currentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req dto.PromotionDTO
	if !bindJSON(c, &req) {
		return
	}
	record, err := s.promotionSvc.CreatePromotion(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

// Ingest 从广告平台抓取推广数据，已存在的日期跳过
func (s *PromotionHandler) Ingest(c *gin.Context) {
	var req dto.IngestDTO
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.ingestSvc.IngestDTO(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := s.promotionSvc.GetPromotion(c.Request.Context(), currentActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

func (s *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PromotionDTO
	if !bindJSON(c, &req) {
		return
	}
	record, err := s.promotionSvc.UpdatePromotion(c.Request.Context(), currentActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

func (s *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.promotionSvc.DeletePromotion(c.Request.Context(), currentActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
