package handler

import (
	"errors"
	"net/http"

	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService      *service.AuthService
	actionLogService *service.ActionLogService
}

func NewAuthHandler(authService *service.AuthService, actionLogService *service.ActionLogService) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		actionLogService: actionLogService,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns a session token for it.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrFieldsRequired.Error()})
		return
	}

	user, token, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired),
			errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Login verifies credentials and returns a session token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrCredentialsRequired.Error()})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired),
			errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// CSRFToken is kept for client compatibility; protection is currently
// disabled, see middleware.CSRFProtection.
// GET /api/auth/csrf-token
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrfToken": ""})
}

// Me returns the identity resolved by the auth middleware.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":       c.GetUint(middleware.CtxUserID),
		"username": c.GetString(middleware.CtxUsername),
		"email":    c.GetString(middleware.CtxEmail),
		"role":     c.MustGet(middleware.CtxRole),
	})
}

// UpdateProfile updates the caller's own username, email, and optionally
// password.
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrProfileFieldsRequired.Error()})
		return
	}

	userID := c.GetUint(middleware.CtxUserID)

	user, err := h.authService.UpdateProfile(userID, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileFieldsRequired),
			errors.Is(err, service.ErrEmailExists),
			errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			logger.Log.Error("Profile update failed",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		}
		return
	}

	h.actionLogService.Record(userID, "update_profile",
		"Обновлен профиль пользователя \""+user.Username+"\"", user.ID, "user")

	c.JSON(http.StatusOK, user)
}
