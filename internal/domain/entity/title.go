package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de título financeiro. Um payable é uma conta a pagar; um receivable,
// uma conta a receber. O mesmo motor de baixa atende os dois.
const (
	TitleKindPayable    = "payable"
	TitleKindReceivable = "receivable"
)

// Title é um título financeiro acompanhado até zerar o saldo.
// AmountPaid (pago ou recebido, conforme o Kind) é monotonicamente não
// decrescente; Status é função pura de (AmountTotal, AmountPaid), ver
// finance.StatusFor, único escritor do campo.
type Title struct {
	ID            int64
	Kind          string // payable | receivable
	Description   string
	PartyID       int64 // fornecedor (payable) ou cliente (receivable)
	AmountTotal   decimal.Decimal
	AmountPaid    decimal.Decimal
	Status        string
	DueDate       time.Time
	Method        string // forma de pagamento da última baixa, se informada
	CashAccountID int64  // conta usada na última baixa, se informada
	Ativo         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
