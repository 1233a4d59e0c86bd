package infra

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"facturador/internal/model"
)

// NewDatabase opens the SQLite file (created on first run) and migrates the
// schema. busy_timeout covers the brief writer lock SQLite takes during the
// create-document transaction; foreign_keys enables the documento → items
// cascade.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Single local file: one connection avoids SQLITE_BUSY between writers.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Documento{},
		&model.DocumentoItem{},
		&model.Serie{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
