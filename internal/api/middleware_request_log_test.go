package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func TestRequestLoggerWritesAccessLine(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	logger := log.NewWithOptions(&output, log.Options{Formatter: log.LogfmtFormatter})

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{
		Generator:  func() string { return "req-123" },
		ContextKey: RequestIDContextKey,
	}))
	app.Use(RequestLogger(logger))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apiError(c, fiber.StatusNotFound, "nope")
	})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.Header.Get(fiber.HeaderXRequestID) != "req-123" {
		t.Fatalf("expected request id header, got %q", response.Header.Get(fiber.HeaderXRequestID))
	}

	line := output.String()
	for _, expected := range []string{"method=GET", "path=/missing", "status=404", "request_id=req-123", "level=warn"} {
		if !strings.Contains(line, expected) {
			t.Fatalf("expected %q in access log %q", expected, line)
		}
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(bearerToken(c))
	})

	tests := map[string]string{
		"Bearer abc.def":  "abc.def",
		"bearer  abc.def": "abc.def",
		"Basic abc":       "",
		"abc":             "",
		"":                "",
	}
	for header, expected := range tests {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		response, err := app.Test(request, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(response.Body)
		_ = response.Body.Close()
		if body.String() != expected {
			t.Fatalf("header %q: expected %q, got %q", header, expected, body.String())
		}
	}
}

func TestErrorHandlerRendersJSON(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("database exploded")
	})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()
	assertStatus(t, response, fiber.StatusTeapot)
	if body := readAPIError(t, response.Body); body.Message != "short and stout" {
		t.Fatalf("unexpected message %q", body.Message)
	}

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()
	assertStatus(t, response, fiber.StatusInternalServerError)
	if body := readAPIError(t, response.Body); strings.Contains(body.Message, "exploded") {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
}
