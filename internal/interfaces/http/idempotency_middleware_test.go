package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/erp-api/internal/application/ports"
	apphttp "github.com/gestaofacil/erp-api/internal/interfaces/http"
)

// memIdempotencyStore guarda respostas em memória para os testes do guard.
type memIdempotencyStore struct {
	entries map[string]*ports.CachedResponse
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{entries: map[string]*ports.CachedResponse{}}
}

func (s *memIdempotencyStore) Get(_ context.Context, key string) (*ports.CachedResponse, error) {
	return s.entries[key], nil
}

func (s *memIdempotencyStore) Save(_ context.Context, key string, resp *ports.CachedResponse, _ time.Duration) error {
	s.entries[key] = resp
	return nil
}

func buildIdempotencyApp(store ports.IdempotencyStore) (*fiber.App, *int) {
	calls := 0
	app := fiber.New()
	app.Post("/mutate", apphttp.IdempotencyMiddleware(store), func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": calls})
	})
	return app, &calls
}

func postWithKey(t *testing.T, app *fiber.App, key string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mutate", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// Repetir o mesmo Idempotency-Key devolve a resposta original sem executar a
// mutação de novo: mutações financeiras nunca são reaplicadas por retry.
func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	app, calls := buildIdempotencyApp(newMemIdempotencyStore())

	first, firstBody := postWithKey(t, app, "abc-123")
	assert.Equal(t, http.StatusCreated, first.StatusCode)
	assert.Equal(t, 1, *calls)

	second, secondBody := postWithKey(t, app, "abc-123")
	assert.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, 1, *calls, "o handler não pode executar de novo")
	assert.Equal(t, firstBody, secondBody)
	assert.Equal(t, "true", second.Header.Get("X-Idempotent-Replay"))
}

func TestIdempotencyMiddleware_DistinctKeysExecute(t *testing.T) {
	app, calls := buildIdempotencyApp(newMemIdempotencyStore())

	postWithKey(t, app, "key-1")
	postWithKey(t, app, "key-2")
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_NoKeyPassesThrough(t *testing.T) {
	app, calls := buildIdempotencyApp(newMemIdempotencyStore())

	postWithKey(t, app, "")
	postWithKey(t, app, "")
	assert.Equal(t, 2, *calls, "sem Idempotency-Key cada chamada executa")
}

func TestIdempotencyMiddleware_NilStoreIsTransparent(t *testing.T) {
	app, calls := buildIdempotencyApp(nil)

	postWithKey(t, app, "abc")
	postWithKey(t, app, "abc")
	assert.Equal(t, 2, *calls)
}
