package middleware

import (
	"net/http"
	"strings"

	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/internal/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "user_email"
	CtxRole     = "user_role"
	CtxUser     = "user"
)

// AuthMiddleware verifies the bearer token and resolves the identity it
// names. The token carries only id and role; username and email come from
// the user row so revoked or renamed accounts are reflected immediately.
func AuthMiddleware(jwtSecret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Требуется авторизация",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Неверный формат заголовка авторизации",
			})
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Неверный или просроченный токен",
			})
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Ошибка сервера",
			})
			return
		}
		if user == nil {
			// Token is valid but the account is gone.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Неверный или просроченный токен",
			})
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUsername, user.Username)
		c.Set(CtxEmail, user.Email)
		c.Set(CtxRole, user.Role)
		c.Set(CtxUser, user)

		c.Next()
	}
}

// RequireAdmin passes admin and superadmin roles. Runs strictly after
// AuthMiddleware; a missing role means the identity was never resolved.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Требуется авторизация",
			})
			return
		}

		if r, ok := role.(models.Role); !ok || !r.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Доступ запрещен. Требуются права администратора",
			})
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin passes the superadmin role only.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Требуется авторизация",
			})
			return
		}

		if r, ok := role.(models.Role); !ok || r != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Доступ запрещен. Требуются права суперадминистратора",
			})
			return
		}

		c.Next()
	}
}
