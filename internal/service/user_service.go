package service

import (
	"errors"

	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("Пользователь не найден")

// UserService backs the superadmin user-management routes.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *UserService) Delete(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch user",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Error("Failed to delete user",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User deleted",
		zap.Uint("user_id", id),
		zap.String("username", user.Username),
	)

	return user, nil
}
