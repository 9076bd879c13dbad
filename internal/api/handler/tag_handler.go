package handler

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

func (s *TagHandler) ListInfluencerTags(c *gin.Context) {
	tags, err := s.tagSvc.ListInfluencerTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}

func (s *TagHandler) ListMaterialTags(c *gin.Context) {
	tags, err := s.tagSvc.ListMaterialTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}

func (s *TagHandler) CreateInfluencerTag(c *gin.Context) {
	var req dto.TagDTO
	if !bindJSON(c, &req) {
		return
	}
	tag, err := s.tagSvc.CreateInfluencerTag(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tag)
}

func (s *TagHandler) CreateMaterialTag(c *gin.Context) {
	var req dto.TagDTO
	if !bindJSON(c, &req) {
		return
	}
	tag, err := s.tagSvc.CreateMaterialTag(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tag)
}
