// Package config resolves runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port          string
	Storage       string
	DBPath        string
	DatabaseURL   string
	Location      *time.Location
	LogLevel      string
	LogFile       string
	AdminPassword string
	// SecretKey is empty when admin protection is on but no key was
	// configured; the caller generates an ephemeral one.
	SecretKey   string
	WeeklyReset bool
	CORSOrigins string
}

func (cfg Config) AdminProtected() bool {
	return cfg.AdminPassword != ""
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	weeklyReset, err := getEnvBool("WEEKLY_RESET", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Storage:       strings.ToLower(getEnv("STORAGE", StorageSQLite)),
		DBPath:        getEnv("DB_PATH", filepath.Join("data", "habitboard.db")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Location:      loadLocation(getEnv("TZ", "UTC")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SecretKey:     strings.TrimSpace(os.Getenv("SECRET_KEY")),
		WeeklyReset:   weeklyReset,
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.Storage {
	case StorageSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required for sqlite storage")
		}
	case StoragePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for postgres storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE %q (want sqlite, postgres or memory)", cfg.Storage)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	if cfg.SecretKey != "" {
		if err := validateSecretKey(cfg.SecretKey); err != nil {
			return err
		}
	}
	return nil
}

func validateSecretKey(secret string) error {
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
