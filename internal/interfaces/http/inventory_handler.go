package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// InventoryHandler trata ajustes manuais de estoque e o histórico de
// movimentos de um produto.
type InventoryHandler struct {
	uc        *inventory.StockUseCase
	movements repository.InventoryMovementRepository
	log       *logger.Logger
}

// NewInventoryHandler constrói o handler. movements é a instância ligada ao
// pool, usada apenas na leitura do histórico.
func NewInventoryHandler(uc *inventory.StockUseCase, movements repository.InventoryMovementRepository, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, movements: movements, log: log}
}

// ApplyDelta aplica um ajuste manual de estoque (entrada ou saída).
func (h *InventoryHandler) ApplyDelta(c *fiber.Ctx) error {
	var in dto.StockDeltaRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	movType, okType := dto.MovementType(in.Type)
	if !okType {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	result, err := h.uc.ApplyStockDelta(c.UserContext(), inventory.StockDeltaInput{
		ProductID: in.ProductID,
		Type:      movType,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Branch:    in.Branch,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, dto.StockDeltaResponse{NewStock: result.NewStock}, "movimento registrado")
}

// ListMovements devolve o histórico de movimentos de um produto, do mais
// recente para o mais antigo.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || productID <= 0 {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	movements, err := h.movements.ListByProduct(productID, limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ReferenceID: m.ReferenceID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			Branch:      m.Branch,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}
	return ok(c, fiber.StatusOK, out, "")
}
