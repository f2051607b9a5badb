package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/erp-api/internal/application/finance"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	domfinance "github.com/gestaofacil/erp-api/internal/domain/finance"
	"github.com/gestaofacil/erp-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newSettlementUC(store *memory.Store) *finance.SettlementUseCase {
	return finance.NewSettlementUseCase(store, store.Repos().Cash)
}

func seedPayable(store *memory.Store, total string) *entity.Title {
	return store.AddTitle(entity.Title{
		Kind:        entity.TitleKindPayable,
		Description: "energia elétrica",
		PartyID:     9,
		AmountTotal: d(total),
		AmountPaid:  decimal.Zero,
		Status:      domfinance.StatusOpen,
		DueDate:     time.Now().AddDate(0, 1, 0),
		Ativo:       true,
	})
}

func TestCreateTitle(t *testing.T) {
	store := memory.NewStore()
	uc := newSettlementUC(store)

	title, err := uc.CreateTitle(context.Background(), finance.CreateTitleInput{
		Kind:        entity.TitleKindReceivable,
		Description: "venda a prazo",
		PartyID:     4,
		AmountTotal: d("150.00"),
		DueDate:     time.Now().AddDate(0, 0, 30),
	})
	require.NoError(t, err)
	assert.NotZero(t, title.ID)
	assert.Equal(t, domfinance.StatusOpen, title.Status)
	assert.True(t, title.AmountPaid.IsZero())
}

func TestCreateTitle_Validation(t *testing.T) {
	store := memory.NewStore()
	uc := newSettlementUC(store)

	_, err := uc.CreateTitle(context.Background(), finance.CreateTitleInput{
		Kind: "boleto", AmountTotal: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateTitle(context.Background(), finance.CreateTitleInput{
		Kind: entity.TitleKindPayable, AmountTotal: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Baixas parciais acumulam: 200 de um título de 500 deixa partial; os 300
// restantes encerram em paid. Cada baixa lança seu movimento de caixa e sua
// entrada de auditoria, e o saldo da conta reflete os lançamentos na leitura.
func TestSettle_PartialThenFull(t *testing.T) {
	store := memory.NewStore()
	title := seedPayable(store, "500.00")
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", InitialBalance: d("1000.00"), Ativo: true})
	uc := newSettlementUC(store)

	first, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: title.Kind, TitleID: title.ID, Amount: d("200.00"),
		CashAccountID: account.ID, Method: "pix", ActorID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domfinance.StatusPartial, first.NewStatus)
	assert.True(t, first.NewAmount.Equal(d("200.00")))

	second, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: title.Kind, TitleID: title.ID, Amount: d("300.00"),
		CashAccountID: account.ID, ActorID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domfinance.StatusPaid, second.NewStatus)
	assert.True(t, second.NewAmount.Equal(d("500.00")))

	got, err := store.Repos().Titles.GetByID(title.Kind, title.ID)
	require.NoError(t, err)
	assert.Equal(t, domfinance.StatusPaid, got.Status)
	assert.Equal(t, "pix", got.Method, "forma informada na primeira baixa é preservada")

	// Dois lançamentos de saída somando 500
	assert.Equal(t, 2, store.CashMovementCount())
	movements, err := store.Repos().Cash.ListMovements(account.ID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, m := range movements {
		assert.Equal(t, entity.MovementSaida, m.Type)
		assert.Equal(t, title.Kind, m.OriginType)
		assert.Equal(t, title.ID, m.OriginID)
		sum = sum.Add(m.Amount)
	}
	assert.True(t, sum.Equal(d("500.00")))

	// Saldo derivado na leitura: 1000 - 500
	balance, err := uc.CashBalance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("500.00")))

	// Uma entrada de auditoria por baixa, com a transição de status
	entries, err := store.Repos().Audit.ListByEntity(title.Kind, title.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "baixa", entries[0].Action)
	assert.Equal(t, domfinance.StatusOpen, entries[0].FromStatus)
	assert.Equal(t, domfinance.StatusPartial, entries[0].ToStatus)
	assert.Equal(t, domfinance.StatusPartial, entries[1].FromStatus)
	assert.Equal(t, domfinance.StatusPaid, entries[1].ToStatus)
	assert.Contains(t, entries[1].ChangedFields, "amount_paid")
}

// Baixa de recebível lança entrada no caixa e encerra em received.
func TestSettle_ReceivableCreditsCash(t *testing.T) {
	store := memory.NewStore()
	title := store.AddTitle(entity.Title{
		Kind:        entity.TitleKindReceivable,
		Description: "cliente João",
		PartyID:     11,
		AmountTotal: d("80.00"),
		AmountPaid:  decimal.Zero,
		Status:      domfinance.StatusOpen,
		Ativo:       true,
	})
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", InitialBalance: d("0"), Ativo: true})
	uc := newSettlementUC(store)

	result, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: title.Kind, TitleID: title.ID, Amount: d("80.00"),
		CashAccountID: account.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domfinance.StatusReceived, result.NewStatus)

	movements, err := store.Repos().Cash.ListMovements(account.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementEntrada, movements[0].Type)

	balance, err := uc.CashBalance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("80.00")))
}

// Pagar acima do saldo restante ainda encerra o título; o status é função
// pura de (total, pago) e não há estado além de paid.
func TestSettle_OverpaymentStillPaid(t *testing.T) {
	store := memory.NewStore()
	title := seedPayable(store, "100.00")
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", Ativo: true})
	uc := newSettlementUC(store)

	result, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: title.Kind, TitleID: title.ID, Amount: d("130.00"),
		CashAccountID: account.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domfinance.StatusPaid, result.NewStatus)
	assert.True(t, result.NewAmount.Equal(d("130.00")))
}

func TestSettle_TitleNotFound(t *testing.T) {
	store := memory.NewStore()
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", Ativo: true})
	uc := newSettlementUC(store)

	_, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: entity.TitleKindPayable, TitleID: 77, Amount: d("10"),
		CashAccountID: account.ID,
	})
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)
	assert.Equal(t, 0, store.CashMovementCount())
	assert.Equal(t, 0, store.AuditCount())
}

func TestSettle_CashAccountNotFound(t *testing.T) {
	store := memory.NewStore()
	title := seedPayable(store, "100.00")
	uc := newSettlementUC(store)

	_, err := uc.Settle(context.Background(), finance.SettleInput{
		Kind: title.Kind, TitleID: title.ID, Amount: d("10"),
		CashAccountID: 55,
	})
	assert.ErrorIs(t, err, domain.ErrCashAccountNotFound)

	// Nada muda no título quando a conta não existe
	got, err := store.Repos().Titles.GetByID(title.Kind, title.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.IsZero())
	assert.Equal(t, domfinance.StatusOpen, got.Status)
}

// Validação acontece antes de qualquer bloqueio ou escrita.
func TestSettle_Validation(t *testing.T) {
	store := memory.NewStore()
	title := seedPayable(store, "100.00")
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", Ativo: true})
	uc := newSettlementUC(store)

	cases := []struct {
		name string
		in   finance.SettleInput
	}{
		{"tipo inválido", finance.SettleInput{Kind: "outro", TitleID: title.ID, Amount: d("10"), CashAccountID: account.ID}},
		{"valor zero", finance.SettleInput{Kind: title.Kind, TitleID: title.ID, Amount: d("0"), CashAccountID: account.ID}},
		{"valor negativo", finance.SettleInput{Kind: title.Kind, TitleID: title.ID, Amount: d("-5"), CashAccountID: account.ID}},
		{"sem conta", finance.SettleInput{Kind: title.Kind, TitleID: title.ID, Amount: d("10")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Settle(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, store.CashMovementCount())
	assert.Equal(t, 0, store.AuditCount())
}

func TestCashBalance_AccountNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := newSettlementUC(store)

	_, err := uc.CashBalance(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrCashAccountNotFound)
}
