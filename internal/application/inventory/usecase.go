// Package inventory implementa o motor de estoque: todo ajuste de quantidade
// passa por aqui, sempre com bloqueio de linha e sempre pareado com um
// movimento imutável no histórico.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
)

// StockDeltaInput entrada para aplicar um delta de estoque.
// Type usa os valores persistidos (entrada/saida); ReferenceID agrupa os
// movimentos de uma mesma operação e é gerado quando vazio.
type StockDeltaInput struct {
	ProductID   int64
	Type        string
	Quantity    decimal.Decimal
	Reason      string
	Branch      string
	ActorID     int64
	ReferenceID string
}

// StockDeltaResult resultado da mutação.
type StockDeltaResult struct {
	NewStock decimal.Decimal
}

// StockUseCase aplica deltas de estoque de forma transacional.
// É também o ponto de entrada in-tx para vendas e recebimentos de compra.
type StockUseCase struct {
	txRunner ports.TxRunner
}

// NewStockUseCase constrói o caso de uso.
func NewStockUseCase(txRunner ports.TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// Validate rejeita entradas malformadas antes de abrir transação ou adquirir
// qualquer bloqueio: sem efeitos colaterais em erro de validação.
func (in *StockDeltaInput) Validate() error {
	if in.ProductID <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementEntrada && in.Type != entity.MovementSaida {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyStockDelta abre a própria transação, aplica o delta e comita.
// Falhas de estoque ou de infraestrutura desfazem tudo (estoque e movimento).
func (uc *StockUseCase) ApplyStockDelta(ctx context.Context, in StockDeltaInput) (StockDeltaResult, error) {
	if err := in.Validate(); err != nil {
		return StockDeltaResult{}, err
	}
	var result StockDeltaResult
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		newStock, err := uc.ApplyDeltaInTx(r, in, time.Now())
		if err != nil {
			return err
		}
		result.NewStock = newStock
		return nil
	})
	return result, err
}

// ApplyDeltaInTx aplica o delta usando os repositórios da transação do caller
// (fechamento de venda, recebimento de compra). Bloqueia a linha do produto
// (SELECT FOR UPDATE), valida a transição e escreve estoque + movimento como
// uma unidade; compete ao caller comitar ou desfazer.
func (uc *StockUseCase) ApplyDeltaInTx(r ports.Repos, in StockDeltaInput, now time.Time) (decimal.Decimal, error) {
	product, err := r.Products.GetForUpdate(in.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil || !product.Ativo {
		return decimal.Zero, domain.ErrProductNotFound
	}

	var newStock decimal.Decimal
	switch in.Type {
	case entity.MovementEntrada:
		newStock = product.Stock.Add(in.Quantity)
	case entity.MovementSaida:
		newStock = product.Stock.Sub(in.Quantity)
		if newStock.IsNegative() {
			return decimal.Zero, &domain.StockError{
				ProductID: product.ID,
				Requested: in.Quantity,
				Available: product.Stock,
			}
		}
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}

	if err := r.Products.UpdateStock(product.ID, newStock); err != nil {
		return decimal.Zero, err
	}

	refID := in.ReferenceID
	if refID == "" {
		refID = uuid.New().String()
	}
	mov := &entity.InventoryMovement{
		ReferenceID: refID,
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Branch:      in.Branch,
		CreatedBy:   in.ActorID,
		CreatedAt:   now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}
