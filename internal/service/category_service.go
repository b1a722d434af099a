package service

import (
	"errors"

	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameRequired = errors.New("Название категории обязательно для заполнения")
	ErrCategoryExists       = errors.New("Категория с таким названием уже существует")
	ErrCategoryNotFound     = errors.New("Категория не найдена")
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	questionRepo *repository.QuestionRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, questionRepo *repository.QuestionRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
	}
}

func (s *CategoryService) GetAll() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	taken, err := s.categoryRepo.NameTaken(name, 0)
	if err != nil {
		logger.Log.Error("Failed to check category name", zap.Error(err))
		return nil, err
	}
	if taken {
		logger.Log.Warn("Category create rejected: name already exists",
			zap.String("name", name),
		)
		return nil, ErrCategoryExists
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		logger.Log.Error("Failed to create category",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", name),
	)

	return category, nil
}

func (s *CategoryService) Update(id uint, name, description string) (*models.Category, error) {
	if name != "" {
		taken, err := s.categoryRepo.NameTaken(name, id)
		if err != nil {
			logger.Log.Error("Failed to check category name", zap.Error(err))
			return nil, err
		}
		if taken {
			return nil, ErrCategoryExists
		}
	}

	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch category",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if name != "" {
		category.Name = name
	}
	category.Description = description

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		logger.Log.Error("Failed to update category",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Category updated",
		zap.Uint("category_id", id),
		zap.String("name", category.Name),
	)

	return category, nil
}

// Delete removes a category and all of its questions. The repository runs
// both deletes in one transaction, so no orphaned questions survive.
func (s *CategoryService) Delete(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch category",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if err := s.categoryRepo.DeleteWithQuestions(id); err != nil {
		logger.Log.Error("Failed to delete category",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Category deleted with its questions",
		zap.Uint("category_id", id),
		zap.String("name", category.Name),
	)

	return category, nil
}

// GetQuestions lists all questions of one category, newest first.
func (s *CategoryService) GetQuestions(id uint) ([]models.Question, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	questions, err := s.questionRepo.GetByCategory(id)
	if err != nil {
		logger.Log.Error("Failed to fetch category questions",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return questions, nil
}

// DeleteQuestions bulk-deletes the questions of one category, leaving the
// category itself in place. Returns the number of questions removed.
func (s *CategoryService) DeleteQuestions(id uint) (int64, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, ErrCategoryNotFound
	}

	count, err := s.questionRepo.DeleteByCategory(id)
	if err != nil {
		logger.Log.Error("Failed to delete category questions",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return 0, err
	}

	logger.Log.Info("Category questions deleted",
		zap.Uint("category_id", id),
		zap.Int64("count", count),
	)

	return count, nil
}
