package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTitleRequest corpo de POST /api/payables e /api/receivables.
// O tipo do título vem da rota, não do corpo.
type CreateTitleRequest struct {
	Description string          `json:"description"`
	PartyID     int64           `json:"party_id"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	DueDate     time.Time       `json:"due_date"`
}

// TitleResponse título após criação.
type TitleResponse struct {
	TitleID int64  `json:"title_id"`
	Status  string `json:"status"`
}

// SettleTitleRequest corpo da baixa (POST .../:id/settle).
type SettleTitleRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	CashAccountID int64           `json:"cash_account_id"`
	Description   string          `json:"description"`
	Method        string          `json:"method"`
}

// SettleTitleResponse resultado da baixa.
type SettleTitleResponse struct {
	NewStatus string          `json:"new_status"`
	NewAmount decimal.Decimal `json:"new_amount"`
}

// CashBalanceResponse saldo corrente de uma conta de caixa (derivado na leitura).
type CashBalanceResponse struct {
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}
