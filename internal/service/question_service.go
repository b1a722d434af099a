package service

import (
	"errors"
	"strconv"

	"github.com/dfr8938/med-qa-new/internal/export"
	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/pagination"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrQuestionFieldsRequired = errors.New("Вопрос и ответ обязательны для заполнения")
	ErrQuestionExists         = errors.New("Вопрос с таким текстом уже существует")
	ErrQuestionNotFound       = errors.New("Вопрос не найден")
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	categoryRepo *repository.CategoryRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns one page of questions plus the total count under the filter.
func (s *QuestionService) List(filter repository.QuestionFilter, p pagination.Params) ([]models.Question, int64, error) {
	questions, total, err := s.questionRepo.GetPage(filter, p.Limit, p.Offset())
	if err != nil {
		logger.Log.Error("Failed to fetch questions", zap.Error(err))
		return nil, 0, err
	}
	return questions, total, nil
}

func (s *QuestionService) Create(text, answer string, categoryID *uint) (*models.Question, error) {
	if text == "" || answer == "" {
		return nil, ErrQuestionFieldsRequired
	}

	taken, err := s.questionRepo.TextTaken(text, 0)
	if err != nil {
		logger.Log.Error("Failed to check question text", zap.Error(err))
		return nil, err
	}
	if taken {
		// Expected user mistake: surfaced to the caller with its precise
		// message but kept out of warn/error logs.
		logger.Log.Debug("Question create rejected: duplicate text")
		return nil, ErrQuestionExists
	}

	question := &models.Question{Text: text, Answer: answer, CategoryID: categoryID}
	if err := s.questionRepo.Create(question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuestionExists
		}
		logger.Log.Error("Failed to create question", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Question created", zap.Uint("question_id", question.ID))

	return question, nil
}

func (s *QuestionService) Update(id uint, text, answer string, categoryID *uint) (*models.Question, error) {
	if text == "" || answer == "" {
		return nil, ErrQuestionFieldsRequired
	}

	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch question",
			zap.Uint("question_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	taken, err := s.questionRepo.TextTaken(text, id)
	if err != nil {
		logger.Log.Error("Failed to check question text", zap.Error(err))
		return nil, err
	}
	if taken {
		logger.Log.Debug("Question update rejected: duplicate text")
		return nil, ErrQuestionExists
	}

	question.Text = text
	question.Answer = answer
	question.CategoryID = categoryID

	if err := s.questionRepo.Update(question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuestionExists
		}
		logger.Log.Error("Failed to update question",
			zap.Uint("question_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Question updated", zap.Uint("question_id", id))

	return question, nil
}

func (s *QuestionService) Delete(id uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		logger.Log.Error("Failed to delete question",
			zap.Uint("question_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Question deleted", zap.Uint("question_id", id))

	return question, nil
}

// ExportCSV serializes the full question table in canonical order.
func (s *QuestionService) ExportCSV() ([]byte, error) {
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch questions for export", zap.Error(err))
		return nil, err
	}

	header := []string{"ID", "Вопрос", "Ответ", "Категория", "Дата создания"}
	records := make([][]string, 0, len(questions))
	for _, q := range questions {
		categoryName := "Без категории"
		if q.Category != nil {
			categoryName = q.Category.Name
		}
		records = append(records, []string{
			strconv.FormatUint(uint64(q.ID), 10),
			q.Text,
			q.Answer,
			categoryName,
			export.Timestamp(q.CreatedAt),
		})
	}

	logger.Log.Info("Questions exported to CSV", zap.Int("count", len(questions)))

	return export.CSV(header, records), nil
}
