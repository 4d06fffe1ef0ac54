package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/terraincognita07/habitboard/internal/config"
	"github.com/terraincognita07/habitboard/internal/db"
	"github.com/terraincognita07/habitboard/internal/memstore"
	"github.com/terraincognita07/habitboard/internal/store"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenBackend builds the store selected by cfg.Storage. The returned close
// function releases the database connection, if any.
func OpenBackend(cfg config.Config, logger *log.Logger) (store.Backend, func() error, error) {
	var writer gormlogger.Writer
	if logger != nil {
		writer = logger.WithPrefix("gorm")
	}

	var (
		database *gorm.DB
		err      error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		return memstore.New().Backend(), func() error { return nil }, nil
	case config.StorageSQLite:
		database, err = db.OpenSQLite(cfg.DBPath, writer)
	case config.StoragePostgres:
		database, err = db.OpenPostgres(cfg.DatabaseURL, writer)
	default:
		return store.Backend{}, nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
	if err != nil {
		return store.Backend{}, nil, fmt.Errorf("database init failed: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return store.Backend{}, nil, fmt.Errorf("database handle: %w", err)
	}
	return db.NewRepositories(database).Backend(), sqlDB.Close, nil
}
