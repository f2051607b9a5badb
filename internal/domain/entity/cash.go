package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount representa um caixa, conta bancária ou saldo pix.
// O saldo corrente nunca é armazenado: é sempre InitialBalance mais a soma
// assinada dos movimentos, calculado na leitura.
type CashAccount struct {
	ID             int64
	Name           string
	InitialBalance decimal.Decimal
	Ativo          bool
	CreatedAt      time.Time
}

// CashMovement é um lançamento imutável numa conta de caixa, sempre criado na
// mesma transação que a baixa que o originou. OriginType/OriginID apontam o
// título de origem (referência não proprietária).
type CashMovement struct {
	ID          int64
	AccountID   int64
	Type        string // entrada | saida
	Amount      decimal.Decimal
	Description string
	OriginType  string // payable | receivable
	OriginID    int64
	CreatedBy   int64
	CreatedAt   time.Time
}
