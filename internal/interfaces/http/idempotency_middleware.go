package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/ports"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyMiddleware devolve a resposta cacheada quando o cliente repete
// um Idempotency-Key já processado, evitando mutações financeiras duplicadas.
// Com store nulo (Redis desabilitado) o middleware é transparente.
func IdempotencyMiddleware(store ports.IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return c.Next()
		}
		header := c.Get("Idempotency-Key")
		if header == "" {
			return c.Next()
		}
		key := c.Method() + ":" + c.Path() + ":" + header

		cached, err := store.Get(c.UserContext(), key)
		if err == nil && cached != nil {
			c.Set("X-Idempotent-Replay", "true")
			c.Set("Content-Type", "application/json")
			return c.Status(cached.Status).Send(cached.Body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= 200 && status < 300 {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			// falha ao gravar o cache não invalida a resposta já produzida
			_ = store.Save(c.UserContext(), key, &ports.CachedResponse{Status: status, Body: body}, idempotencyTTL)
		}
		return nil
	}
}
