package middleware

import (
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户角色是否在允许范围内，需在 AuthMiddleware 之后使用
func CheckRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(RoleKey))

		hasPermission := false
		for _, r := range allowed {
			if r == role {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
