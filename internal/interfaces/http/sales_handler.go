package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/application/sales"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// SalesHandler trata o fechamento de venda do PDV, a consulta e o comprovante.
type SalesHandler struct {
	finalize *sales.FinalizeSaleUseCase
	receipt  *sales.ReceiptUseCase
	log      *logger.Logger
}

// NewSalesHandler constrói o handler.
func NewSalesHandler(finalize *sales.FinalizeSaleUseCase, receipt *sales.ReceiptUseCase, log *logger.Logger) *SalesHandler {
	return &SalesHandler{finalize: finalize, receipt: receipt, log: log}
}

// Finalize fecha uma venda: debita o estoque de todas as linhas e grava
// cabeçalho, itens e pagamentos numa única transação.
func (h *SalesHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, h.log, domain.ErrInvalidInput)
	}

	input := sales.FinalizeSaleInput{
		Items:    make([]sales.SaleLine, 0, len(in.Items)),
		Payments: make([]sales.SalePaymentInput, 0, len(in.Payments)),
		ActorID:  GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, sales.SaleLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	for _, p := range in.Payments {
		input.Payments = append(input.Payments, sales.SalePaymentInput{
			Method: p.Method,
			Amount: p.Amount,
		})
	}

	result, err := h.finalize.FinalizeSale(c.UserContext(), input)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, dto.FinalizeSaleResponse{SaleID: result.SaleID, Total: result.Total}, "venda fechada")
}

// GetByID devolve a venda completa (cabeçalho, itens e pagamentos).
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	sale, items, payments, err := h.finalize.GetSale(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}

	out := dto.SaleResponse{
		ID:        sale.ID,
		Status:    sale.Status,
		Total:     sale.Total,
		CreatedBy: sale.CreatedBy,
		CreatedAt: sale.CreatedAt.Format(time.RFC3339),
		Items:     make([]dto.SaleItemResponse, 0, len(items)),
		Payments:  make([]dto.SalePaymentResponse, 0, len(payments)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, dto.SalePaymentResponse{Method: p.Method, Amount: p.Amount})
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Receipt devolve o comprovante da venda em PDF.
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}
