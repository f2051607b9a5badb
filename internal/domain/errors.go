package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências de infraestrutura).
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrOrderNotFound       = errors.New("pedido de compra não encontrado")
	ErrTitleNotFound       = errors.New("título não encontrado")
	ErrSaleNotFound        = errors.New("venda não encontrada")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrCashAccountNotFound = errors.New("conta de caixa não encontrada")
	ErrItemNotInOrder      = errors.New("produto não pertence ao pedido")
	ErrInsufficientStock   = errors.New("estoque insuficiente")
	ErrOrderClosed         = errors.New("pedido já recebido ou cancelado")
	ErrPaymentMismatch     = errors.New("soma dos pagamentos difere do total")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
)

// StockError carrega o contexto de uma falha de estoque: qual produto,
// quanto foi solicitado e quanto havia. Desembrulha para ErrInsufficientStock.
type StockError struct {
	ProductID int64
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *StockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para produto %d: solicitado %s, disponível %s",
		e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
