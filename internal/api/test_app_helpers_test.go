package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/memstore"
	"github.com/terraincognita07/habitboard/internal/security"
	"github.com/terraincognita07/habitboard/internal/store"
)

const (
	testAdminPassword = "board-admin-password"
	testSecretKey     = "0123456789abcdef0123456789abcdef"
)

func newTestApp(t *testing.T) (*fiber.App, store.Backend) {
	t.Helper()
	return newTestAppWithOptions(t, memstore.New().Backend(), HandlerOptions{})
}

func newProtectedTestApp(t *testing.T) (*fiber.App, store.Backend) {
	t.Helper()

	auth, err := security.NewAdminAuth(testAdminPassword, testSecretKey, 0)
	if err != nil {
		t.Fatalf("init admin auth: %v", err)
	}
	return newTestAppWithOptions(t, memstore.New().Backend(), HandlerOptions{Auth: auth})
}

func newTestAppWithOptions(t *testing.T, backend store.Backend, options HandlerOptions) (*fiber.App, store.Backend) {
	t.Helper()

	if options.Logger == nil {
		options.Logger = log.New(io.Discard)
	}
	handler, err := NewHandler(backend, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, backend
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func doRawRequest(t *testing.T, app *fiber.App, method string, path string, rawBody string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, bytes.NewBufferString(rawBody))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func assertStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		payload, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, payload)
	}
}

func decodeJSON[T any](t *testing.T, body io.Reader) T {
	t.Helper()

	var value T
	if err := json.NewDecoder(body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}

type apiErrorBody struct {
	Message string `json:"message"`
	Errors  string `json:"errors"`
}

func readAPIError(t *testing.T, body io.Reader) apiErrorBody {
	t.Helper()
	return decodeJSON[apiErrorBody](t, body)
}

func uintString(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
