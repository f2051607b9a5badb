package ports

import (
	"context"
	"time"
)

// CachedResponse é a resposta gravada para replay idempotente.
type CachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore guarda respostas por chave de idempotência. Reaplicar uma
// mutação financeira com a mesma chave devolve a resposta original em vez de
// executar a operação de novo.
type IdempotencyStore interface {
	// Get devolve nil, nil em cache miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Save(ctx context.Context, key string, response *CachedResponse, ttl time.Duration) error
}
