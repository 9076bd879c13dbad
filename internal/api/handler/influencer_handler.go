package handler

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type InfluencerHandler struct {
	influencerSvc service.InfluencerService
}

func NewInfluencerHandler(influencerSvc service.InfluencerService) *InfluencerHandler {
	return &InfluencerHandler{influencerSvc: influencerSvc}
}

func (s *InfluencerHandler) ListInfluencers(c *gin.Context) {
	var query dto.InfluencerQueryDTO
	if !bindQuery(c, &query) {
		return
	}
	page, err := s.influencerSvc.ListInfluencers(c.Request.Context(), currentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *InfluencerHandler) CreateInfluencer(c *gin.Context) {
	var req dto.InfluencerDTO
	if !bindJSON(c, &req) {
		return
	}
	influencer, err := s.influencerSvc.CreateInfluencer(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, influencer)
}

func (s *InfluencerHandler) GetInfluencer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	influencer, err := s.influencerSvc.GetInfluencer(c.Request.Context(), currentActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, influencer)
}

func (s *InfluencerHandler) UpdateInfluencer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.InfluencerDTO
	if !bindJSON(c, &req) {
		return
	}
	influencer, err := s.influencerSvc.UpdateInfluencer(c.Request.Context(), currentActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, influencer)
}

func (s *InfluencerHandler) DeleteInfluencer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.influencerSvc.DeleteInfluencer(c.Request.Context(), currentActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InfluencerHandler) SetInfluencerTags(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TagsDTO
	if !bindJSON(c, &req) {
		return
	}
	influencer, err := s.influencerSvc.SetInfluencerTags(c.Request.Context(), currentActor(c), id, req.Tags)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, influencer)
}
