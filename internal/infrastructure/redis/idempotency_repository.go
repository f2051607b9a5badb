// Package redis implementa a guarda de idempotência sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/pkg/config"
)

var _ ports.IdempotencyStore = (*IdempotencyRepository)(nil)

// NewClient cria o cliente Redis a partir da configuração.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// IdempotencyRepository guarda respostas por chave de idempotência com TTL.
type IdempotencyRepository struct {
	client *redis.Client
}

// NewIdempotencyRepository constrói o repositório.
func NewIdempotencyRepository(client *redis.Client) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

// Get devolve a resposta gravada para a chave; nil, nil em cache miss.
func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	val, err := r.client.Get(ctx, "idempotency:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	var resp ports.CachedResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal cached response: %w", err)
	}
	return &resp, nil
}

// Save grava a resposta para a chave com o TTL dado.
func (r *IdempotencyRepository) Save(ctx context.Context, key string, response *ports.CachedResponse, ttl time.Duration) error {
	bytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshal cached response: %w", err)
	}
	return r.client.Set(ctx, "idempotency:"+key, bytes, ttl).Err()
}
