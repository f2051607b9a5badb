// Package finance concentra as regras puras do motor financeiro: a função de
// status dos títulos e a soma assinada de movimentos de caixa.
package finance

import (
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Status de título financeiro. O status terminal difere pelo tipo do título:
// "paid" para contas a pagar, "received" para contas a receber.
const (
	StatusOpen     = "open"
	StatusPartial  = "partial"
	StatusPaid     = "paid"
	StatusReceived = "received"
)

// StatusFor é a função pura de status: paid<=0 ⇒ open; 0<paid<total ⇒
// partial; paid>=total ⇒ terminal. Pagamento acima do total ainda mapeia para
// o status terminal (não existe estado "overpaid").
func StatusFor(kind string, total, paid decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusOpen
	case paid.LessThan(total):
		return StatusPartial
	default:
		if kind == entity.TitleKindReceivable {
			return StatusReceived
		}
		return StatusPaid
	}
}

// TerminalStatus devolve o status terminal para o tipo de título.
func TerminalStatus(kind string) string {
	if kind == entity.TitleKindReceivable {
		return StatusReceived
	}
	return StatusPaid
}

// CashMovementType devolve o tipo de lançamento de caixa pareado com a baixa:
// pagar um título sai dinheiro; receber um título entra dinheiro.
func CashMovementType(kind string) string {
	if kind == entity.TitleKindReceivable {
		return entity.MovementEntrada
	}
	return entity.MovementSaida
}

// SignedAmount devolve o valor do movimento com sinal (entrada soma, saída
// subtrai) para o cálculo do saldo de uma conta de caixa.
func SignedAmount(m *entity.CashMovement) decimal.Decimal {
	if m.Type == entity.MovementSaida {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Balance calcula o saldo corrente de uma conta: saldo inicial mais a soma
// assinada dos movimentos. Sempre derivado na leitura, nunca armazenado.
func Balance(account *entity.CashAccount, movements []*entity.CashMovement) decimal.Decimal {
	balance := account.InitialBalance
	for _, m := range movements {
		balance = balance.Add(SignedAmount(m))
	}
	return balance
}
