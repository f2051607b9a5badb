package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

// ReceiptLine linha do comprovante, já resolvida com o nome do produto.
type ReceiptLine struct {
	ProductName string
	SKU         string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator gera o comprovante em PDF de uma venda fechada.
type ReceiptPDFGenerator interface {
	GenerateReceipt(sale *entity.Sale, lines []ReceiptLine, payments []*entity.SalePayment) ([]byte, error)
}

// ReceiptUseCase monta o comprovante de venda: carrega a venda completa,
// resolve os nomes dos produtos e delega a renderização ao gerador.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase constrói o caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, productRepo: productRepo, generator: generator}
}

// DownloadReceipt gera o PDF do comprovante e o nome de arquivo sugerido.
func (uc *ReceiptUseCase) DownloadReceipt(_ context.Context, saleID int64) ([]byte, string, error) {
	sale, items, payments, err := uc.saleRepo.GetSale(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprovante: obter venda: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrSaleNotFound
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		line := ReceiptLine{
			ProductName: fmt.Sprintf("produto #%d", it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Quantity.Mul(it.UnitPrice),
		}
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			line.ProductName = p.Name
			line.SKU = p.SKU
		}
		lines = append(lines, line)
	}

	pdf, err := uc.generator.GenerateReceipt(sale, lines, payments)
	if err != nil {
		return nil, "", fmt.Errorf("comprovante: gerar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("venda_%d.pdf", sale.ID), nil
}
