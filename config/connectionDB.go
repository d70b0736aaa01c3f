package config

import (
	"fmt"

	"backoffice/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Permission{},
		&entity.Role{},
		&entity.User{},
		&entity.Session{},
		&entity.MFASecret{},
		&entity.SecurityLog{},
		&entity.ExceptionRecord{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
