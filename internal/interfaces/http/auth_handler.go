package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/auth"
	"github.com/gestaofacil/erp-api/internal/application/dto"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// AuthHandler trata o login (rota pública).
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login valida e-mail e senha e devolve o token JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	if in.Email == "" || in.Password == "" {
		return fail(c, h.log, domain.ErrInvalidInput)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out, "login efetuado")
}
