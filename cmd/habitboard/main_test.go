package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/api"
	"github.com/terraincognita07/habitboard/internal/config"
	"github.com/terraincognita07/habitboard/internal/memstore"
)

func newTestServer(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	appLogger := log.New(io.Discard)
	handler, err := api.NewHandler(memstore.New().Backend(), api.HandlerOptions{Logger: appLogger})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newApp(cfg, appLogger, handler)
}

func TestNewAppServesHealthWithRequestID(t *testing.T) {
	app := newTestServer(t, config.Config{CORSOrigins: "*"})

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.Header.Set("Origin", "https://board.example.com")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if response.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if origin := response.Header.Get(fiber.HeaderAccessControlAllowOrigin); origin != "*" {
		t.Fatalf("expected CORS allow origin *, got %q", origin)
	}
}

func TestNewAppUnknownRouteReturnsJSON404(t *testing.T) {
	app := newTestServer(t, config.Config{CORSOrigins: "*"})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
	if contentType := response.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		t.Fatalf("expected JSON body, got %q", contentType)
	}
}

func TestApplyServeFlags(t *testing.T) {
	cfg := config.Config{Port: "8080", Storage: config.StorageSQLite, DBPath: "data/habitboard.db"}
	if applyServeFlags(&cfg, serveFlags{}) {
		t.Fatal("expected no change without flags")
	}

	if !applyServeFlags(&cfg, serveFlags{port: "9090", storage: config.StorageMemory}) {
		t.Fatal("expected flags to change config")
	}
	if cfg.Port != "9090" || cfg.Storage != config.StorageMemory || cfg.DBPath != "data/habitboard.db" {
		t.Fatalf("unexpected config after flags: %+v", cfg)
	}
}

func TestLoadServeConfigValidatesFlags(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("PORT", "")
	t.Setenv("SECRET_KEY", "")

	if _, err := loadServeConfig(serveFlags{port: "70000"}); err == nil {
		t.Fatal("expected invalid port flag to fail")
	}

	cfg, err := loadServeConfig(serveFlags{port: "9091"})
	if err != nil {
		t.Fatalf("loadServeConfig() unexpected error: %v", err)
	}
	if cfg.Port != "9091" || cfg.Storage != config.StorageMemory {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestResolveAdminAuth(t *testing.T) {
	var logOutput bytes.Buffer
	appLogger := log.New(&logOutput)

	auth, err := resolveAdminAuth(config.Config{}, appLogger)
	if err != nil || auth != nil {
		t.Fatalf("expected auth disabled without password, got %v / %v", auth, err)
	}

	auth, err = resolveAdminAuth(config.Config{AdminPassword: "pw"}, appLogger)
	if err != nil || auth == nil {
		t.Fatalf("expected ephemeral auth, got %v / %v", auth, err)
	}
	if !strings.Contains(logOutput.String(), "ephemeral") {
		t.Fatalf("expected ephemeral key warning, got %q", logOutput.String())
	}

	auth, err = resolveAdminAuth(config.Config{
		AdminPassword: "pw",
		SecretKey:     "0123456789abcdef0123456789abcdef",
	}, appLogger)
	if err != nil || auth == nil {
		t.Fatalf("expected configured auth, got %v / %v", auth, err)
	}
	token, expiresAt, err := auth.Login("pw")
	if err != nil || token == "" {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if time.Until(expiresAt) < 6*24*time.Hour {
		t.Fatalf("expected default token ttl, got expiry %s", expiresAt)
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var output bytes.Buffer
	root.SetOut(&output)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if strings.TrimSpace(output.String()) != "habitboard dev" {
		t.Fatalf("unexpected version output %q", output.String())
	}
}

func TestRootCommandAcceptsServeFlags(t *testing.T) {
	root := newRootCommand()
	if err := root.ParseFlags([]string{"--port", "9000", "--storage", "memory", "--db-path", "tmp/board.db"}); err != nil {
		t.Fatalf("root command rejected serve flags: %v", err)
	}
	if port := root.Flags().Lookup("port").Value.String(); port != "9000" {
		t.Fatalf("expected port flag 9000, got %q", port)
	}

	serveCmd, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("find serve command: %v", err)
	}
	if serveCmd.Flags().Lookup("db-path") == nil {
		t.Fatal("expected serve command to keep its own flags")
	}
}

func TestRunServeLeavesProcessTimeZoneAlone(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	_ = listener.Close()

	t.Setenv("STORAGE", "memory")
	t.Setenv("PORT", "")
	t.Setenv("TZ", "Pacific/Auckland")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("WEEKLY_RESET", "true")

	hostZone := time.Local
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- runServe(ctx, serveFlags{port: portString(port)})
	}()

	healthURL := "http://127.0.0.1:" + portString(port) + "/healthz"
	deadline := time.Now().Add(5 * time.Second)
	for {
		response, err := http.Get(healthURL)
		if err == nil {
			_ = response.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if time.Local != hostZone {
		t.Fatalf("expected time.Local to stay %s, got %s", hostZone, time.Local)
	}

	cancel()
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("runServe() unexpected error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("runServe did not return after cancellation")
	}
}

func portString(port int) string {
	return strconv.Itoa(port)
}
