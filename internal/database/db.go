package database

import (
	"log"

	"github.com/dfr8938/med-qa-new/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(databaseURL string) {
	var err error

	// TranslateError turns driver-specific unique-index violations into
	// gorm.ErrDuplicatedKey, which backs every check-then-write uniqueness
	// pre-check when two writers race on the same key.
	//
	// Foreign keys stay application-level: action log entries reference
	// their acting user weakly and must outlive account deletion.
	DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Question{},
		&models.ActionLog{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
