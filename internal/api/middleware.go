package api

import (
	"net/http"
	"strings"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ctxUserKey 鉴权中间件写入gin上下文的用户key
const ctxUserKey = "auth_user"

// AuthRequired Bearer Token鉴权：校验签名→查用户→注入上下文
func AuthRequired(authSvc *service.AuthService, userRepo repository.UserRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "需要登录"})
			return
		}

		userID, err := authSvc.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录态无效"})
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			logger.WithError(err).Warn("鉴权用户查询失败")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录态无效"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// AdminRequired 需先经过AuthRequired
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}

// CurrentUser 取鉴权中间件注入的当前用户，未登录返回nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
