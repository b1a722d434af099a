package service

import (
	"errors"
	"time"

	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/internal/utils"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sentinel errors carry the exact user-facing messages; handlers return
// err.Error() verbatim in the JSON message body.
var (
	ErrFieldsRequired        = errors.New("Все поля обязательны для заполнения")
	ErrEmailExists           = errors.New("Пользователь с таким email уже существует")
	ErrCredentialsRequired   = errors.New("Email и пароль обязательны для заполнения")
	ErrInvalidCredentials    = errors.New("Неверный email или пароль")
	ErrProfileFieldsRequired = errors.New("Имя пользователя и email обязательны для заполнения")
	ErrWeakPassword          = errors.New("Пароль должен содержать минимум 6 символов")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Register creates an account and issues a session token for it.
func (s *AuthService) Register(username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", ErrFieldsRequired
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Warn("Registration rejected: email already exists",
			zap.String("email", email),
		)
		return nil, "", ErrEmailExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin, // column default, see models.User
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index is the atomic backstop behind the pre-check:
		// a concurrent writer losing the race surfaces here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailExists
		}
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", username),
		zap.String("role", string(user.Role)),
	)

	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the identical error so accounts cannot be
// enumerated.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrCredentialsRequired
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.Password) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.Uint("user_id", user.ID),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, token, nil
}

// UpdateProfile changes the caller's own username/email, and password when
// one is supplied. Returns the updated record.
func (s *AuthService) UpdateProfile(userID uint, username, email, password string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, ErrProfileFieldsRequired
	}

	taken, err := s.userRepo.EmailTaken(email, userID)
	if err != nil {
		logger.Log.Error("Failed to check email uniqueness",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if taken {
		logger.Log.Warn("Profile update rejected: email already exists",
			zap.Uint("user_id", userID),
			zap.String("email", email),
		)
		return nil, ErrEmailExists
	}

	values := map[string]interface{}{
		"username": username,
		"email":    email,
	}

	if password != "" {
		if len(password) < 6 {
			return nil, ErrWeakPassword
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			logger.Log.Error("Failed to hash password", zap.Error(err))
			return nil, err
		}
		values["password"] = hash
	}

	if err := s.userRepo.Update(userID, values); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		logger.Log.Error("Failed to update profile",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Profile updated",
		zap.Uint("user_id", userID),
		zap.String("username", username),
	)

	return user, nil
}
