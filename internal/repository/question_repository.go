package repository

import (
	"errors"

	"github.com/dfr8938/med-qa-new/internal/models"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// QuestionFilter narrows paginated listings. Zero values mean "no filter".
type QuestionFilter struct {
	CategoryID uint
	Search     string
}

func (f QuestionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where("text LIKE ?", "%"+f.Search+"%")
	}
	return q
}

// GetPage returns one page of questions, newest first, together with the
// total row count under the same filter predicate.
func (r *QuestionRepository) GetPage(filter QuestionFilter, limit, offset int) ([]models.Question, int64, error) {
	var total int64
	if err := filter.apply(r.db.Model(&models.Question{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := filter.apply(r.db).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, total, err
}

// GetAll returns the full result set in canonical order, for CSV export.
func (r *QuestionRepository) GetAll() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Category").Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// GetByCategory returns every question of one category, newest first.
func (r *QuestionRepository) GetByCategory(categoryID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// TextTaken checks whether a different question already uses the exact text.
func (r *QuestionRepository) TextTaken(text string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Question{}).
		Where("text = ? AND id <> ?", text, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *QuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepository) Update(question *models.Question) error {
	return r.db.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByCategory bulk-deletes the questions of one category and reports
// how many rows went away.
func (r *QuestionRepository) DeleteByCategory(categoryID uint) (int64, error) {
	res := r.db.Where("category_id = ?", categoryID).Delete(&models.Question{})
	return res.RowsAffected, res.Error
}
