package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(store *memory.Store, stock string) *entity.Product {
	return store.AddProduct(entity.Product{
		Name:  "Café Torrado 500g",
		SKU:   "CAFE-500",
		Cost:  d("12.50"),
		Price: d("24.90"),
		Stock: d(stock),
		Ativo: true,
	})
}

// Entradas malformadas são rejeitadas antes de qualquer bloqueio: nada é
// gravado, nem estoque nem movimento.
func TestApplyStockDelta_Validation(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(store, "10")
	uc := inventory.NewStockUseCase(store)

	cases := []struct {
		name string
		in   inventory.StockDeltaInput
	}{
		{"produto inválido", inventory.StockDeltaInput{ProductID: 0, Type: entity.MovementEntrada, Quantity: d("1")}},
		{"tipo desconhecido", inventory.StockDeltaInput{ProductID: p.ID, Type: "transferencia", Quantity: d("1")}},
		{"quantidade zero", inventory.StockDeltaInput{ProductID: p.ID, Type: entity.MovementEntrada, Quantity: d("0")}},
		{"quantidade negativa", inventory.StockDeltaInput{ProductID: p.ID, Type: entity.MovementSaida, Quantity: d("-3")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyStockDelta(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, store.MovementCount())
	got, err := store.Repos().Products.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(d("10")), "estoque não pode mudar em erro de validação")
}

func TestApplyStockDelta_ProductNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID: 999, Type: entity.MovementEntrada, Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestApplyStockDelta_InactiveProduct(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Descontinuado", Stock: d("5"), Ativo: false})
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID: p.ID, Type: entity.MovementEntrada, Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Toda mutação de estoque sai pareada com um movimento imutável, na mesma
// transação.
func TestApplyStockDelta_EntradaPairsMovement(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(store, "10")
	uc := inventory.NewStockUseCase(store)

	result, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID: p.ID,
		Type:      entity.MovementEntrada,
		Quantity:  d("4"),
		Reason:    "ajuste de inventário",
		Branch:    "matriz",
		ActorID:   7,
	})
	require.NoError(t, err)
	assert.True(t, result.NewStock.Equal(d("14")))

	movements, err := store.Repos().Movements.ListByProduct(p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	m := movements[0]
	assert.Equal(t, entity.MovementEntrada, m.Type)
	assert.True(t, m.Quantity.Equal(d("4")))
	assert.Equal(t, "ajuste de inventário", m.Reason)
	assert.Equal(t, "matriz", m.Branch)
	assert.Equal(t, int64(7), m.CreatedBy)
	assert.NotEmpty(t, m.ReferenceID, "movimento sem referência explícita ganha uma gerada")
}

// Saída além do disponível falha com o produto, o pedido e o disponível no
// erro, e não deixa nenhum efeito para trás.
func TestApplyStockDelta_InsufficientStock(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(store, "3")
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID: p.ID, Type: entity.MovementSaida, Quantity: d("5"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.True(t, stockErr.Requested.Equal(d("5")))
	assert.True(t, stockErr.Available.Equal(d("3")))

	assert.Equal(t, 0, store.MovementCount())
	got, err := store.Repos().Products.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(d("3")))
}

// Duas saídas concorrentes disputando o mesmo saldo: exatamente uma passa e o
// estoque nunca fica negativo.
func TestApplyStockDelta_ConcurrentDrain(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(store, "5")
	uc := inventory.NewStockUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
				ProductID: p.ID, Type: entity.MovementSaida, Quantity: d("5"),
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "apenas uma das saídas concorrentes pode passar")

	got, err := store.Repos().Products.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(decimal.Zero))
	assert.Equal(t, 1, store.MovementCount())
}

// ReferenceID explícito é preservado; é o vínculo entre os movimentos de uma
// mesma operação.
func TestApplyStockDelta_KeepsReferenceID(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(store, "10")
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID:   p.ID,
		Type:        entity.MovementSaida,
		Quantity:    d("1"),
		ReferenceID: "op-123",
	})
	require.NoError(t, err)

	movements, err := store.Repos().Movements.ListByProduct(p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "op-123", movements[0].ReferenceID)
}

func TestApplyStockDelta_InfraErrorIsNotValidation(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewStockUseCase(store)

	_, err := uc.ApplyStockDelta(context.Background(), inventory.StockDeltaInput{
		ProductID: 1, Type: entity.MovementSaida, Quantity: d("1"),
	})
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}
