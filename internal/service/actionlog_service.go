package service

import (
	"strconv"

	"github.com/dfr8938/med-qa-new/internal/export"
	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/pagination"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"go.uber.org/zap"
)

// ActionLogService is the audit sink plus its read side. Writes are
// best-effort: a lost audit entry must never fail or roll back the admin
// mutation that triggered it.
type ActionLogService struct {
	logRepo *repository.ActionLogRepository
}

func NewActionLogService(logRepo *repository.ActionLogRepository) *ActionLogService {
	return &ActionLogService{logRepo: logRepo}
}

// Record appends an audit entry for a mutating admin action. Failures are
// surfaced to operational logging only.
func (s *ActionLogService) Record(userID uint, actionType, description string, entityID uint, entityType string) {
	entry := &models.ActionLog{
		UserID:      userID,
		ActionType:  actionType,
		Description: description,
		EntityID:    entityID,
		EntityType:  entityType,
	}

	if err := s.logRepo.Create(entry); err != nil {
		logger.Log.Error("Failed to record action log entry",
			zap.Uint("user_id", userID),
			zap.String("action_type", actionType),
			zap.Error(err),
		)
	}
}

// List returns one page of the audit trail, newest first.
func (s *ActionLogService) List(p pagination.Params) ([]models.ActionLog, int64, error) {
	logs, total, err := s.logRepo.GetPage(p.Limit, p.Offset())
	if err != nil {
		logger.Log.Error("Failed to fetch action logs", zap.Error(err))
		return nil, 0, err
	}
	return logs, total, nil
}

// ExportCSV serializes the full audit trail in canonical order.
func (s *ActionLogService) ExportCSV() ([]byte, error) {
	logs, err := s.logRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch action logs for export", zap.Error(err))
		return nil, err
	}

	header := []string{"ID", "Пользователь", "Тип действия", "Описание", "ID сущности", "Тип сущности", "Дата"}
	records := make([][]string, 0, len(logs))
	for _, entry := range logs {
		username := "Неизвестный"
		if entry.User != nil {
			username = entry.User.Username
		}
		records = append(records, []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			username,
			entry.ActionType,
			entry.Description,
			strconv.FormatUint(uint64(entry.EntityID), 10),
			entry.EntityType,
			export.Timestamp(entry.CreatedAt),
		})
	}

	logger.Log.Info("Action logs exported to CSV", zap.Int("count", len(logs)))

	return export.CSV(header, records), nil
}
