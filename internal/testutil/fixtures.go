package testutil

import (
	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/utils"
)

// CreateTestUser creates a test user with a real bcrypt hash.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}, nil
}

// DefaultAdminUser returns a default admin-tier test user.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// DefaultSuperAdminUser returns a default superadmin test user.
func DefaultSuperAdminUser() (*models.User, error) {
	return CreateTestUser("superadmin", "superadmin@example.com", "Super123456", models.RoleSuperAdmin)
}

// CreateTestCategory returns an unsaved category fixture.
func CreateTestCategory(name, description string) *models.Category {
	return &models.Category{Name: name, Description: description}
}

// CreateTestQuestion returns an unsaved question fixture.
func CreateTestQuestion(text, answer string, categoryID *uint) *models.Question {
	return &models.Question{Text: text, Answer: answer, CategoryID: categoryID}
}
