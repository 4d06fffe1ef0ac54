package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if needed) the database file at dbPath and
// applies the embedded migrations. A nil writer logs to stdout.
func OpenSQLite(dbPath string, writer gormlogger.Writer) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(writer),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer; a single connection keeps the
	// load-mutate-save transactions in PersonRepository.Update serialized.
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("open sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := applyEmbeddedMigrations(database); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func newGormLogger(writer gormlogger.Writer) gormlogger.Interface {
	colorful := false
	if writer == nil {
		writer = log.New(os.Stdout, "\r\n", log.LstdFlags)
		colorful = true
	}
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  colorful,
	})
}
