package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/application/finance"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// FinanceHandler trata títulos financeiros (contas a pagar e a receber),
// suas baixas e o saldo de caixa. O tipo do título vem da rota.
type FinanceHandler struct {
	uc  *finance.SettlementUseCase
	log *logger.Logger
}

// NewFinanceHandler constrói o handler.
func NewFinanceHandler(uc *finance.SettlementUseCase, log *logger.Logger) *FinanceHandler {
	return &FinanceHandler{uc: uc, log: log}
}

// CreateTitle cria um título aberto do tipo dado (fixado pela rota).
func (h *FinanceHandler) CreateTitle(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.CreateTitleRequest
		if err := c.BodyParser(&in); err != nil {
			return fail(c, h.log, domain.ErrInvalidInput)
		}
		title, err := h.uc.CreateTitle(c.UserContext(), finance.CreateTitleInput{
			Kind:        kind,
			Description: in.Description,
			PartyID:     in.PartyID,
			AmountTotal: in.AmountTotal,
			DueDate:     in.DueDate,
		})
		if err != nil {
			return fail(c, h.log, err)
		}
		return ok(c, fiber.StatusCreated, dto.TitleResponse{TitleID: title.ID, Status: title.Status}, "título criado")
	}
}

// Settle aplica uma baixa (total ou parcial) num título do tipo dado.
func (h *FinanceHandler) Settle(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil || id <= 0 {
			return fail(c, h.log, domain.ErrInvalidInput)
		}
		var in dto.SettleTitleRequest
		if err := c.BodyParser(&in); err != nil {
			return fail(c, h.log, domain.ErrInvalidInput)
		}
		result, err := h.uc.Settle(c.UserContext(), finance.SettleInput{
			Kind:          kind,
			TitleID:       id,
			Amount:        in.Amount,
			CashAccountID: in.CashAccountID,
			Description:   in.Description,
			Method:        in.Method,
			ActorID:       GetUserID(c),
		})
		if err != nil {
			return fail(c, h.log, err)
		}
		return ok(c, fiber.StatusOK, dto.SettleTitleResponse{NewStatus: result.NewStatus, NewAmount: result.NewAmount}, "baixa aplicada")
	}
}

// CashBalance devolve o saldo corrente de uma conta de caixa, sempre derivado
// na leitura (saldo inicial + soma dos lançamentos).
func (h *FinanceHandler) CashBalance(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	balance, err := h.uc.CashBalance(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, dto.CashBalanceResponse{AccountID: id, Balance: balance}, "")
}
