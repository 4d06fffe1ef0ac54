package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/habitboard/internal/api"
	"github.com/terraincognita07/habitboard/internal/cli"
	"github.com/terraincognita07/habitboard/internal/config"
	"github.com/terraincognita07/habitboard/internal/logger"
	"github.com/terraincognita07/habitboard/internal/security"
	"github.com/terraincognita07/habitboard/internal/services"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

const (
	shutdownTimeout        = 10 * time.Second
	ephemeralSecretKeySize = 48
)

// serveFlags override the matching environment variables when set.
type serveFlags struct {
	port    string
	storage string
	dbPath  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags serveFlags

	root := &cobra.Command{
		Use:          "habitboard",
		Short:        "Shared habit tracker and announcement board",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	bindServeFlags(root, &flags)
	bindServeFlags(serveCmd, &flags)

	resetCmd := &cobra.Command{
		Use:   "reset-week",
		Short: "Clear everyone's weekly progress and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			appLogger, closer, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer closer.Close()
			return cli.RunResetWeekCommand(cmd.Context(), cfg, appLogger, cmd.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "habitboard %s\n", version)
		},
	}

	root.AddCommand(serveCmd, resetCmd, versionCmd)
	return root
}

// bindServeFlags registers the serve flags on cmd. The root command gets them
// too because it serves when run without a subcommand.
func bindServeFlags(cmd *cobra.Command, flags *serveFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.port, "port", "", "Listen port (overrides PORT)")
	f.StringVar(&flags.storage, "storage", "", "Storage backend: sqlite, postgres or memory (overrides STORAGE)")
	f.StringVar(&flags.dbPath, "db-path", "", "SQLite database file (overrides DB_PATH)")
}

func runServe(parent context.Context, flags serveFlags) error {
	cfg, err := loadServeConfig(flags)
	if err != nil {
		return err
	}

	appLogger, closer, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	auth, err := resolveAdminAuth(cfg, appLogger)
	if err != nil {
		return err
	}

	backend, closeBackend, err := cli.OpenBackend(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(); err != nil {
			appLogger.Error("close database", "err", err)
		}
	}()

	handler, err := api.NewHandler(backend, api.HandlerOptions{Auth: auth, Logger: appLogger})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(cfg, appLogger, handler)

	if parent == nil {
		parent = context.Background()
	}
	lifecycleCtx, cancelLifecycle := context.WithCancel(parent)
	defer cancelLifecycle()

	var schedulerDone <-chan struct{}
	if cfg.WeeklyReset {
		scheduler := services.NewWeekResetScheduler(services.NewPersonService(backend.People), cfg.Location, appLogger)
		schedulerDone = scheduler.Start(lifecycleCtx)
	}

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("server shutdown failed", "err", err)
		}
	}()

	appLogger.Info("habitboard listening",
		"addr", "http://0.0.0.0:"+cfg.Port,
		"storage", cfg.Storage,
		"tz", cfg.Location.String(),
		"admin", cfg.AdminProtected(),
		"weekly_reset", cfg.WeeklyReset,
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}

	cancelLifecycle()
	if schedulerDone != nil {
		<-schedulerDone
	}
	return nil
}

func loadServeConfig(flags serveFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if !applyServeFlags(&cfg, flags) {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyServeFlags reports whether any flag changed cfg.
func applyServeFlags(cfg *config.Config, flags serveFlags) bool {
	changed := false
	if flags.port != "" {
		cfg.Port = flags.port
		changed = true
	}
	if flags.storage != "" {
		cfg.Storage = flags.storage
		changed = true
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
		changed = true
	}
	return changed
}

func resolveAdminAuth(cfg config.Config, appLogger *log.Logger) (*security.AdminAuth, error) {
	if !cfg.AdminProtected() {
		return nil, nil
	}

	secretKey := cfg.SecretKey
	if secretKey == "" {
		generated, err := security.GenerateSecretKey(ephemeralSecretKeySize)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		secretKey = generated
		appLogger.Warn("SECRET_KEY is not set; using an ephemeral key, admin sessions end on restart")
	}

	auth, err := security.NewAdminAuth(cfg.AdminPassword, secretKey, security.DefaultAdminTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("admin auth init failed: %w", err)
	}
	return auth, nil
}

func newApp(cfg config.Config, appLogger *log.Logger, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Habitboard",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: api.RequestIDContextKey,
	}))
	app.Use(api.RequestLogger(appLogger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
