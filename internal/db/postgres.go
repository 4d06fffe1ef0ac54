package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenPostgres connects through the lib/pq driver and hands the pool to the
// GORM postgres dialector, then applies the embedded migrations.
func OpenPostgres(dsn string, writer gormlogger.Writer) (*gorm.DB, error) {
	if !isPostgresDSN(dsn) {
		return nil, errors.New("postgres dsn must start with postgres:// or postgresql://")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: newGormLogger(writer),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func isPostgresDSN(dsn string) bool {
	trimmed := strings.TrimSpace(dsn)
	return strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://")
}
