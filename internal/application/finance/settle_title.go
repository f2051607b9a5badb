// Package finance (aplicação) implementa o motor de baixa de títulos:
// acumula o valor pago, deriva o novo status pela função pura do domínio,
// lança o movimento de caixa pareado e grava a trilha de auditoria, tudo na
// mesma transação.
package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	domfinance "github.com/gestaofacil/erp-api/internal/domain/finance"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

// CreateTitleInput entrada de criação de um título aberto.
type CreateTitleInput struct {
	Kind        string
	Description string
	PartyID     int64
	AmountTotal decimal.Decimal
	DueDate     time.Time
}

// SettleInput entrada da baixa.
type SettleInput struct {
	Kind          string
	TitleID       int64
	Amount        decimal.Decimal
	CashAccountID int64
	Description   string
	Method        string
	ActorID       int64
}

// SettleResult resultado da baixa.
type SettleResult struct {
	NewStatus string
	NewAmount decimal.Decimal
}

// SettlementUseCase aplica baixas em contas a pagar e a receber.
type SettlementUseCase struct {
	txRunner ports.TxRunner
	cashRepo repository.CashRepository // ligado ao pool, caminho de leitura
}

// NewSettlementUseCase constrói o caso de uso.
func NewSettlementUseCase(txRunner ports.TxRunner, cashRepo repository.CashRepository) *SettlementUseCase {
	return &SettlementUseCase{txRunner: txRunner, cashRepo: cashRepo}
}

func validKind(kind string) bool {
	return kind == entity.TitleKindPayable || kind == entity.TitleKindReceivable
}

// CreateTitle cria um título aberto. O status nasce da função pura de status
// com valor pago zero.
func (uc *SettlementUseCase) CreateTitle(ctx context.Context, in CreateTitleInput) (*entity.Title, error) {
	if !validKind(in.Kind) || !in.AmountTotal.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	title := &entity.Title{
		Kind:        in.Kind,
		Description: in.Description,
		PartyID:     in.PartyID,
		AmountTotal: in.AmountTotal,
		AmountPaid:  decimal.Zero,
		Status:      domfinance.StatusFor(in.Kind, in.AmountTotal, decimal.Zero),
		DueDate:     in.DueDate,
		Ativo:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		return r.Titles.Create(title)
	})
	if err != nil {
		return nil, err
	}
	return title, nil
}

// Settle aplica uma baixa parcial ou total: bloqueia o título, acumula o
// valor (nunca sobrescreve), deriva o novo status, atualiza o título, lança o
// movimento de caixa e grava a auditoria: quatro escritas, um Commit.
// Pagamento acima do total é aceito e encerra no status terminal.
func (uc *SettlementUseCase) Settle(ctx context.Context, in SettleInput) (SettleResult, error) {
	// Validação antes de qualquer bloqueio: sem efeitos colaterais.
	if !validKind(in.Kind) || in.TitleID <= 0 || in.CashAccountID <= 0 {
		return SettleResult{}, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return SettleResult{}, domain.ErrInvalidInput
	}

	now := time.Now()
	var result SettleResult

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		title, err := r.Titles.GetForUpdate(in.Kind, in.TitleID)
		if err != nil {
			return err
		}
		if title == nil {
			return domain.ErrTitleNotFound
		}
		account, err := r.Cash.GetAccount(in.CashAccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrCashAccountNotFound
		}

		fromStatus := title.Status
		fromAmount := title.AmountPaid
		newAmount := title.AmountPaid.Add(in.Amount)
		newStatus := domfinance.StatusFor(title.Kind, title.AmountTotal, newAmount)

		title.AmountPaid = newAmount
		title.Status = newStatus
		// Forma de pagamento e conta só são sobrescritas quando informadas.
		if in.Method != "" {
			title.Method = in.Method
		}
		title.CashAccountID = account.ID
		title.UpdatedAt = now
		if err := r.Titles.ApplySettlement(title); err != nil {
			return err
		}

		description := in.Description
		if description == "" {
			description = fmt.Sprintf("baixa %s #%d", title.Kind, title.ID)
		}
		if err := r.Cash.CreateMovement(&entity.CashMovement{
			AccountID:   account.ID,
			Type:        domfinance.CashMovementType(title.Kind),
			Amount:      in.Amount,
			Description: description,
			OriginType:  title.Kind,
			OriginID:    title.ID,
			CreatedBy:   in.ActorID,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		changed, err := json.Marshal(map[string]map[string]string{
			"amount_paid": {"from": fromAmount.String(), "to": newAmount.String()},
		})
		if err != nil {
			return err
		}
		if err := r.Audit.Create(&entity.AuditLogEntry{
			EntityType:    title.Kind,
			EntityID:      title.ID,
			Action:        "baixa",
			FromStatus:    fromStatus,
			ToStatus:      newStatus,
			ChangedFields: string(changed),
			UserID:        in.ActorID,
			Timestamp:     now,
		}); err != nil {
			return err
		}

		result = SettleResult{NewStatus: newStatus, NewAmount: newAmount}
		return nil
	})
	return result, err
}

// CashBalance devolve o saldo corrente de uma conta: saldo inicial mais a
// soma assinada dos movimentos, sempre derivado na leitura.
func (uc *SettlementUseCase) CashBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	account, err := uc.cashRepo.GetAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account == nil {
		return decimal.Zero, domain.ErrCashAccountNotFound
	}
	movements, err := uc.cashRepo.ListMovements(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return domfinance.Balance(account, movements), nil
}
