package database

import (
	"os"
	"path/filepath"

	"github.com/auklet-oj/auklet/internal/auth"
	"github.com/auklet-oj/auklet/internal/config"
	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Init(dsn string) (*gorm.DB, error) {
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		zap.S().Infof("database file not found at '%s', creating directory for it.", dsn)
		dbDir := filepath.Dir(dsn)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Contest{},
		&models.Problem{},
		&models.Environment{},
		&models.Submission{},
		&models.JudgeResult{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureAdminUser creates the bootstrap administrator when the users table
// is empty. Without it a fresh deployment has no way to log in and create
// contests.
func EnsureAdminUser(db *gorm.DB, cfg config.Admin) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := cfg.Username
	if username == "" {
		username = "admin"
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}
	password := cfg.Password
	if password == "" {
		password = "auklet-admin"
		zap.S().Warn("no bootstrap admin password configured, using the default; change it immediately")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Admin:        true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	zap.S().Infof("bootstrap admin user %q created", username)
	return nil
}
