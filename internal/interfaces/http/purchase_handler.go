package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/application/purchasing"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// PurchaseHandler trata o ciclo do pedido de compra: criação, envio,
// cancelamento e recebimentos parciais.
type PurchaseHandler struct {
	uc  *purchasing.PurchaseUseCase
	log *logger.Logger
}

// NewPurchaseHandler constrói o handler.
func NewPurchaseHandler(uc *purchasing.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

func orderID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// Create cria um pedido de compra em rascunho.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	input := purchasing.CreateOrderInput{
		SupplierID: in.SupplierID,
		Items:      make([]purchasing.OrderLineInput, 0, len(in.Items)),
		ActorID:    GetUserID(c),
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, purchasing.OrderLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	result, err := h.uc.CreateOrder(c.UserContext(), input)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, dto.OrderResponse{OrderID: result.OrderID, Status: result.Status, Total: result.Total}, "pedido criado")
}

// MarkOrdered transiciona o pedido de rascunho para enviado ao fornecedor.
func (h *PurchaseHandler) MarkOrdered(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	result, err := h.uc.MarkOrdered(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, dto.OrderResponse{OrderID: result.OrderID, Status: result.Status, Total: result.Total}, "pedido enviado")
}

// Cancel cancela um pedido que ainda não teve recebimentos.
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	result, err := h.uc.CancelOrder(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, dto.OrderResponse{OrderID: result.OrderID, Status: result.Status, Total: result.Total}, "pedido cancelado")
}

// Receive registra um recebimento (possivelmente parcial) de um item do
// pedido: dá entrada no estoque e recalcula o status do pedido.
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	result, err := h.uc.Receive(c.UserContext(), purchasing.ReceiveInput{
		OrderID:     id,
		ProductID:   in.ProductID,
		ReceivedQty: in.ReceivedQty,
		Branch:      in.Branch,
		Note:        in.Note,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, dto.ReceivePurchaseResponse{
		ReceiptID:   result.ReceiptID,
		NewStock:    result.NewStock,
		OrderStatus: result.OrderStatus,
	}, "recebimento registrado")
}

// GetByID devolve o cabeçalho do pedido.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	order, err := h.uc.GetOrder(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, dto.OrderResponse{OrderID: order.ID, Status: order.Status, Total: order.Total}, "")
}
