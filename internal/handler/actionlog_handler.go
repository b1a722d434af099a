package handler

import (
	"net/http"

	"github.com/dfr8938/med-qa-new/internal/pagination"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/gin-gonic/gin"
)

type ActionLogHandler struct {
	actionLogService *service.ActionLogService
}

func NewActionLogHandler(actionLogService *service.ActionLogService) *ActionLogHandler {
	return &ActionLogHandler{actionLogService: actionLogService}
}

// List returns one page of the audit trail, newest first, with the acting
// username joined for display.
// GET /api/actionlogs?page&limit
func (h *ActionLogHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.actionLogService.List(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	rows := make([]gin.H, 0, len(logs))
	for _, entry := range logs {
		row := gin.H{
			"id":          entry.ID,
			"userId":      entry.UserID,
			"actionType":  entry.ActionType,
			"description": entry.Description,
			"entityId":    entry.EntityID,
			"entityType":  entry.EntityType,
			"createdAt":   entry.CreatedAt,
		}
		if entry.User != nil {
			row["user"] = gin.H{"username": entry.User.Username}
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"actionLogs":  rows,
		"totalPages":  p.TotalPages(total),
		"currentPage": p.Page,
		"totalLogs":   total,
	})
}

// Export downloads the full audit trail as CSV.
// GET /api/actionlogs/export
func (h *ActionLogHandler) Export(c *gin.Context) {
	data, err := h.actionLogService.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="action_logs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
