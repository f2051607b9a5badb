package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// ok responde o envelope uniforme de sucesso.
func ok(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data, Message: message})
}

// fail mapeia erros de domínio para status HTTP + código no envelope.
// Erros de infraestrutura saem opacos (500/INTERNAL) e vão para o log; o
// detalhe nunca vaza para o cliente.
func fail(c *fiber.Ctx, log *logger.Logger, err error) error {
	var code string
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrPaymentMismatch):
		status, code = fiber.StatusBadRequest, "PAYMENT_MISMATCH"
	case errors.Is(err, domain.ErrItemNotInOrder):
		status, code = fiber.StatusBadRequest, "ITEM_NOT_IN_ORDER"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrOrderClosed):
		status, code = fiber.StatusConflict, "ORDER_CLOSED"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrTitleNotFound),
		errors.Is(err, domain.ErrSaleNotFound),
		errors.Is(err, domain.ErrCashAccountNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		// Credenciais erradas e usuário inexistente respondem igual.
		status, code, message = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciais inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	default:
		if log != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
		}
		status, code, message = fiber.StatusInternalServerError, "INTERNAL", "erro interno"
	}

	return c.Status(status).JSON(dto.Envelope{Success: false, Message: message, Error: code})
}
