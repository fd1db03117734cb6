package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AkademiaSztuki/awa-api/internal/models"
)

// Connect opens the postgres connection used for session and generation
// bookkeeping.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	log.Println("✅ Database connected")
	return db, nil
}

// Migrate runs the schema migrations for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.GenerationRecord{},
		&models.GeneratedImage{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Println("✅ Database migrations complete")
	return nil
}
