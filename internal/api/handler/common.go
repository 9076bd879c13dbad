package handler

import (
	"KolAnalytics/internal/api/middleware"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/response"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentActor 从 AuthMiddleware 注入的信息构造当前操作者
func currentActor(c *gin.Context) *model.Actor {
	userID := c.GetUint64(middleware.UserIDKey)
	if userID == 0 {
		return nil
	}
	return &model.Actor{ID: userID, Role: model.Role(c.GetString(middleware.RoleKey))}
}

// pathID 解析路径中的 :id，失败时直接写回参数错误
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, err)
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return false
	}
	return true
}
