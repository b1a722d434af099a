package main

import (
	"log"
	"os"

	"github.com/dfr8938/med-qa-new/internal/config"
	"github.com/dfr8938/med-qa-new/internal/database"
	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/utils"
)

// Bootstraps the superadmin account the portal is administered with.
func main() {
	cfg := config.Load()
	database.Connect(cfg.DatabaseURL)
	database.Migrate()

	username := getEnv("SUPERADMIN_USERNAME", "superadmin")
	email := getEnv("SUPERADMIN_EMAIL", "superadmin@example.com")
	password := getEnv("SUPERADMIN_PASSWORD", "superadmin123")

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Superadmin already exists:", existing.Username)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	superadmin := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleSuperAdmin,
	}

	if err := database.DB.Create(&superadmin).Error; err != nil {
		log.Fatal("Failed to create superadmin:", err)
	}

	log.Println("Superadmin created successfully")
	log.Println("   Username:", superadmin.Username)
	log.Println("   Email:", superadmin.Email)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
