package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cekapguard/agency-api/internal/config"
	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.User{},
		&entity.StaffMember{},

		// Front-office entities
		&entity.Customer{},
		&entity.Document{},
		&entity.ActivityLog{},

		// System entities
		&entity.SystemConfig{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the singleton system config row and the owner
// login when the database is empty.
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	var existing entity.SystemConfig
	if err := db.First(&existing, "id = ?", 1).Error; err != nil {
		if err := db.Create(entity.DefaultSystemConfig()).Error; err != nil {
			log.Printf("Warning: failed to create default system config: %v", err)
		}
	}

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		var owner entity.User
		if err := db.Where("email = ?", cfg.Admin.Email).First(&owner).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash owner password: %v", err)
			} else {
				ownerUser := entity.User{
					Email:    cfg.Admin.Email,
					Password: string(hashed),
					Name:     "Owner",
					Role:     enum.UserRoleOwner,
				}
				if err := db.Create(&ownerUser).Error; err != nil {
					log.Printf("Warning: failed to create owner user: %v", err)
				} else {
					log.Printf("Owner user created: %s", cfg.Admin.Email)
				}
			}
		} else {
			log.Printf("Owner user already exists: %s", cfg.Admin.Email)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
