package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService  *service.CategoryService
	actionLogService *service.ActionLogService
}

func NewCategoryHandler(categoryService *service.CategoryService, actionLogService *service.ActionLogService) *CategoryHandler {
	return &CategoryHandler{
		categoryService:  categoryService,
		actionLogService: actionLogService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// parseID extracts the numeric :id route parameter. A malformed id behaves
// like a missing row.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GetAll lists every category, name-ascending. Public route.
// GET /api/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create adds a category.
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrCategoryNameRequired.Error()})
		return
	}

	category, err := h.categoryService.Create(req.Name, req.Description)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "create_category",
		fmt.Sprintf("Создана категория %q", category.Name), category.ID, "category")

	c.JSON(http.StatusCreated, category)
}

// Update renames a category or changes its description.
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrCategoryNotFound.Error()})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrCategoryNameRequired.Error()})
		return
	}

	category, err := h.categoryService.Update(id, req.Name, req.Description)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "update_category",
		fmt.Sprintf("Обновлена категория %q", category.Name), category.ID, "category")

	c.JSON(http.StatusOK, category)
}

// Delete removes a category together with all of its questions.
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrCategoryNotFound.Error()})
		return
	}

	category, err := h.categoryService.Delete(id)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "delete_category",
		fmt.Sprintf("Удалена категория %q и все вопросы в ней", category.Name), id, "category")

	c.JSON(http.StatusOK, gin.H{"message": "Категория и все вопросы в ней успешно удалены"})
}

// GetQuestions lists the questions of one category, newest first.
// GET /api/categories/:id/questions
func (h *CategoryHandler) GetQuestions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrCategoryNotFound.Error()})
		return
	}

	questions, err := h.categoryService.GetQuestions(id)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// DeleteQuestions bulk-deletes the questions of one category.
// DELETE /api/categories/:id/questions
func (h *CategoryHandler) DeleteQuestions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrCategoryNotFound.Error()})
		return
	}

	count, err := h.categoryService.DeleteQuestions(id)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "delete_category_questions",
		fmt.Sprintf("Удалено %d вопросов из категории", count), id, "category")

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("Удалено %d вопросов из категории", count),
		"deletedCount": count,
	})
}

func (h *CategoryHandler) respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNameRequired),
		errors.Is(err, service.ErrCategoryExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
	}
}
