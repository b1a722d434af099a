package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the superadmin user-management routes.
type UserHandler struct {
	userService      *service.UserService
	actionLogService *service.ActionLogService
}

func NewUserHandler(userService *service.UserService, actionLogService *service.ActionLogService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		actionLogService: actionLogService,
	}
}

// GetAll lists every account, newest first. Password hashes never serialize.
// GET /api/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Delete removes an account.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrUserNotFound.Error()})
		return
	}

	user, err := h.userService.Delete(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "delete_user",
		fmt.Sprintf("Удален пользователь %q", user.Username), id, "user")

	c.JSON(http.StatusOK, gin.H{"message": "Пользователь успешно удален"})
}
