package repository

import (
	"github.com/dfr8938/med-qa-new/internal/models"
	"gorm.io/gorm"
)

type ActionLogRepository struct {
	db *gorm.DB
}

func NewActionLogRepository(db *gorm.DB) *ActionLogRepository {
	return &ActionLogRepository{db: db}
}

// Create appends one audit entry. Entries are never updated or deleted by
// the application.
func (r *ActionLogRepository) Create(entry *models.ActionLog) error {
	return r.db.Create(entry).Error
}

// GetPage returns one page of log entries, newest first, with the acting
// user joined for display, plus the total entry count.
func (r *ActionLogRepository) GetPage(limit, offset int) ([]models.ActionLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ActionLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActionLog
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

// GetAll returns the full audit trail in canonical order, for CSV export.
func (r *ActionLogRepository) GetAll() ([]models.ActionLog, error) {
	var logs []models.ActionLog
	err := r.db.Preload("User").Order("created_at DESC").Find(&logs).Error
	return logs, err
}
