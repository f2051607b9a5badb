// Package sales implementa o fechamento de venda do PDV: valida e debita o
// estoque de cada linha e persiste cabeçalho, itens e pagamentos, tudo numa
// única transação.
package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

const reasonVenda = "venda"

// SaleLine linha de venda validada.
type SaleLine struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SalePaymentInput pagamento informado no fechamento.
type SalePaymentInput struct {
	Method string
	Amount decimal.Decimal
}

// FinalizeSaleInput entrada do fechamento.
type FinalizeSaleInput struct {
	Items    []SaleLine
	Payments []SalePaymentInput
	Branch   string
	ActorID  int64
}

// FinalizeSaleResult identifica a venda fechada e seu total.
type FinalizeSaleResult struct {
	SaleID int64
	Total  decimal.Decimal
}

// FinalizeSaleUseCase fecha vendas. A venda não tem estado intermediário:
// passa de inexistente a fechada num único Commit, ou nada é gravado.
type FinalizeSaleUseCase struct {
	txRunner ports.TxRunner
	stock    *inventory.StockUseCase
	saleRepo repository.SaleRepository
	// requirePaymentMatch, quando ligado, rejeita fechamentos cuja soma de
	// pagamentos fica abaixo do total (troco acima do total continua aceito).
	requirePaymentMatch bool
}

// NewFinalizeSaleUseCase constrói o caso de uso. saleRepo é a instância ligada
// ao pool, usada apenas no caminho de leitura (GetSale).
func NewFinalizeSaleUseCase(
	txRunner ports.TxRunner,
	stock *inventory.StockUseCase,
	saleRepo repository.SaleRepository,
	requirePaymentMatch bool,
) *FinalizeSaleUseCase {
	return &FinalizeSaleUseCase{
		txRunner:            txRunner,
		stock:               stock,
		saleRepo:            saleRepo,
		requirePaymentMatch: requirePaymentMatch,
	}
}

// FinalizeSale valida as linhas, debita o estoque de cada uma e grava a venda.
// O total é recalculado no servidor a partir das linhas validadas; totais
// pré-calculados pelo cliente são ignorados.
func (uc *FinalizeSaleUseCase) FinalizeSale(ctx context.Context, in FinalizeSaleInput) (FinalizeSaleResult, error) {
	if len(in.Items) == 0 {
		return FinalizeSaleResult{}, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID <= 0 || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.IsNegative() {
			return FinalizeSaleResult{}, domain.ErrInvalidInput
		}
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	paid := decimal.Zero
	for _, p := range in.Payments {
		if p.Method == "" || !p.Amount.GreaterThan(decimal.Zero) {
			return FinalizeSaleResult{}, domain.ErrInvalidInput
		}
		paid = paid.Add(p.Amount)
	}
	if uc.requirePaymentMatch && paid.LessThan(total) {
		return FinalizeSaleResult{}, domain.ErrPaymentMismatch
	}

	// Ordem global de bloqueio: linhas ordenadas por produto para que duas
	// vendas concorrentes com produtos em comum não entrem em deadlock.
	locked := make([]SaleLine, len(in.Items))
	copy(locked, in.Items)
	sort.Slice(locked, func(i, j int) bool { return locked[i].ProductID < locked[j].ProductID })

	now := time.Now()
	refID := uuid.New().String()
	var result FinalizeSaleResult

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		for _, line := range locked {
			_, err := uc.stock.ApplyDeltaInTx(r, inventory.StockDeltaInput{
				ProductID:   line.ProductID,
				Type:        entity.MovementSaida,
				Quantity:    line.Quantity,
				Reason:      reasonVenda,
				Branch:      in.Branch,
				ActorID:     in.ActorID,
				ReferenceID: refID,
			}, now)
			if err != nil {
				return err
			}
		}

		sale := &entity.Sale{
			Status:    entity.SaleStatusFechada,
			Total:     total,
			CreatedBy: in.ActorID,
			CreatedAt: now,
		}
		if err := r.Sales.CreateSale(sale); err != nil {
			return err
		}
		// Itens gravados na ordem enviada pelo caller (a ordenação acima só
		// vale para a aquisição dos bloqueios).
		for _, item := range in.Items {
			if err := r.Sales.CreateItem(&entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}); err != nil {
				return err
			}
		}
		for _, p := range in.Payments {
			if err := r.Sales.CreatePayment(&entity.SalePayment{
				SaleID: sale.ID,
				Method: p.Method,
				Amount: p.Amount,
			}); err != nil {
				return err
			}
		}
		result = FinalizeSaleResult{SaleID: sale.ID, Total: total}
		return nil
	})
	return result, err
}

// GetSale devolve a venda completa para consulta e para o cupom em PDF.
func (uc *FinalizeSaleUseCase) GetSale(ctx context.Context, id int64) (*entity.Sale, []*entity.SaleItem, []*entity.SalePayment, error) {
	sale, items, payments, err := uc.saleRepo.GetSale(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if sale == nil {
		return nil, nil, nil, domain.ErrSaleNotFound
	}
	return sale, items, payments, nil
}
