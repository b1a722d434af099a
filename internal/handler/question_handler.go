package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/pagination"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService  *service.QuestionService
	actionLogService *service.ActionLogService
}

func NewQuestionHandler(questionService *service.QuestionService, actionLogService *service.ActionLogService) *QuestionHandler {
	return &QuestionHandler{
		questionService:  questionService,
		actionLogService: actionLogService,
	}
}

type QuestionRequest struct {
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	CategoryID *uint  `json:"categoryId"`
}

// List returns one page of questions, optionally filtered by category and
// text search.
// GET /api/questions?page&limit&categoryId&search
func (h *QuestionHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	filter := repository.QuestionFilter{Search: c.Query("search")}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	questions, total, err := h.questionService.List(filter, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":      questions,
		"totalPages":     p.TotalPages(total),
		"currentPage":    p.Page,
		"totalQuestions": total,
	})
}

// Create adds a question.
// POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrQuestionFieldsRequired.Error()})
		return
	}

	question, err := h.questionService.Create(req.Text, req.Answer, req.CategoryID)
	if err != nil {
		h.respondQuestionError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "create_question",
		fmt.Sprintf("Создан вопрос %q", question.Text), question.ID, "question")

	c.JSON(http.StatusCreated, question)
}

// Update edits a question's text, answer, or category.
// PUT /api/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrQuestionNotFound.Error()})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrQuestionFieldsRequired.Error()})
		return
	}

	question, err := h.questionService.Update(id, req.Text, req.Answer, req.CategoryID)
	if err != nil {
		h.respondQuestionError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "update_question",
		fmt.Sprintf("Обновлен вопрос %q", question.Text), question.ID, "question")

	c.JSON(http.StatusOK, question)
}

// Delete removes a question.
// DELETE /api/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": service.ErrQuestionNotFound.Error()})
		return
	}

	question, err := h.questionService.Delete(id)
	if err != nil {
		h.respondQuestionError(c, err)
		return
	}

	h.actionLogService.Record(c.GetUint(middleware.CtxUserID), "delete_question",
		fmt.Sprintf("Удален вопрос %q", question.Text), id, "question")

	c.JSON(http.StatusOK, gin.H{"message": "Вопрос успешно удален"})
}

// Export downloads the full question table as CSV.
// GET /api/questions/export
func (h *QuestionHandler) Export(c *gin.Context) {
	data, err := h.questionService.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="questions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *QuestionHandler) respondQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionFieldsRequired),
		errors.Is(err, service.ErrQuestionExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
	}
}
