package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the connection pool. It is constructed once at process
// start and injected into every repository; nothing in the codebase
// opens connections on its own.
type Database struct {
	DB *gorm.DB
}

// New connects to postgres when dsn is non-empty, otherwise to a local
// sqlite file, and runs migrations.
func New(dsn, sqlitePath string) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// Migrate applies the schema.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Class{},
		&models.ClassAttendance{},
		&models.Payment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
	)
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
