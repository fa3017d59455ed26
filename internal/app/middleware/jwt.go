package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate 校验令牌并把声明写入上下文；角色表为空表示任意角色
func authenticate(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(allowedRoles) > 0 {
			allowed := false
			for _, role := range allowedRoles {
				if string(role) == claims.Role {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		// 存储claims到上下文
		c.Set("username", claims.Username)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)
		if claims.TeamID != nil {
			c.Set("teamId", *claims.TeamID)
		}
		c.Set("claims", claims)
		c.Next()
	}
}

// AuthenticateUser 验证任意已登录用户
func AuthenticateUser() gin.HandlerFunc {
	return authenticate()
}

// AuthenticateSystemAdmin 验证系统管理员权限
func AuthenticateSystemAdmin() gin.HandlerFunc {
	return authenticate(models.RoleAdmin)
}

// AuthenticateStaff 验证管理员或技工权限
func AuthenticateStaff() gin.HandlerFunc {
	return authenticate(models.RoleAdmin, models.RoleTechnician)
}
