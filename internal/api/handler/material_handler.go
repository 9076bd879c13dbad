package handler

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	materialSvc service.MaterialService
}

func NewMaterialHandler(materialSvc service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialSvc: materialSvc}
}

func (s *MaterialHandler) ListMaterials(c *gin.Context) {
	var query dto.MaterialQueryDTO
	if !bindQuery(c, &query) {
		return
	}
	page, err := s.materialSvc.ListMaterials(c.Request.Context(), currentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req dto.MaterialDTO
	if !bindJSON(c, &req) {
		return
	}
	material, err := s.materialSvc.CreateMaterial(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, material)
}

// AutoFetchMaterial 只需视频链接，达人与素材信息从广告平台补全
func (s *MaterialHandler) AutoFetchMaterial(c *gin.Context) {
	var req dto.AutoFetchMaterialDTO
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.materialSvc.AutoCreateFromURL(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MaterialHandler) GetMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	material, err := s.materialSvc.GetMaterial(c.Request.Context(), currentActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, material)
}

func (s *MaterialHandler) UpdateMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MaterialDTO
	if !bindJSON(c, &req) {
		return
	}
	material, err := s.materialSvc.UpdateMaterial(c.Request.Context(), currentActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, material)
}

func (s *MaterialHandler) DeleteMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.materialSvc.DeleteMaterial(c.Request.Context(), currentActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MaterialHandler) SetMaterialTags(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TagsDTO
	if !bindJSON(c, &req) {
		return
	}
	material, err := s.materialSvc.SetMaterialTags(c.Request.Context(), currentActor(c), id, req.Tags)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, material)
}
