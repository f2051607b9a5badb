package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/erp-api/internal/application/auth"
	"github.com/gestaofacil/erp-api/internal/application/finance"
	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/application/purchasing"
	"github.com/gestaofacil/erp-api/internal/application/sales"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	domfinance "github.com/gestaofacil/erp-api/internal/domain/finance"
	"github.com/gestaofacil/erp-api/internal/infrastructure/memory"
	apphttp "github.com/gestaofacil/erp-api/internal/interfaces/http"
	"github.com/gestaofacil/erp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// buildAPI monta a API completa sobre o store em memória.
func buildAPI(store *memory.Store) *fiber.App {
	repos := store.Repos()
	stockUC := inventory.NewStockUseCase(store)
	finalizeUC := sales.NewFinalizeSaleUseCase(store, stockUC, repos.Sales, false)
	receiptUC := sales.NewReceiptUseCase(repos.Sales, repos.Products, nil)
	purchaseUC := purchasing.NewPurchaseUseCase(store, stockUC, repos.Purchases)
	settlementUC := finance.NewSettlementUseCase(store, repos.Cash)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:      stockUC,
		FinalizeUC:   finalizeUC,
		ReceiptUC:    receiptUC,
		PurchaseUC:   purchaseUC,
		SettlementUC: settlementUC,
		AuthUC:       authUC,
		Movements:    repos.Movements,
		Idempotency:  nil,
		JWTSecret:    testJWTSecret,
		Log:          logger.New(logger.Config{Env: "development", Level: "error"}),
	})
	return app
}

func apiRequest(t *testing.T, app *fiber.App, method, path, role string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp, envelope
}

// Toda resposta carrega o envelope uniforme {success, data, message, error}.
func TestAPI_FinalizeSale_Envelope(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Sabão em Pó", Stock: dec("10"), Ativo: true})
	app := buildAPI(store)

	resp, env := apiRequest(t, app, http.MethodPost, "/api/sales/", entity.RoleOperador, map[string]any{
		"items": []map[string]any{
			{"product_id": p.ID, "quantity": "2", "unit_price": "8.90"},
		},
		"payments": []map[string]any{
			{"method": "dinheiro", "amount": "20.00"},
		},
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.NotZero(t, data["sale_id"])
	assert.Equal(t, "17.8", data["total"])
}

// Estoque insuficiente sai como 409 com código estável e o produto culpado na
// mensagem; nada é gravado.
func TestAPI_FinalizeSale_InsufficientStock(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Detergente", Stock: dec("1"), Ativo: true})
	app := buildAPI(store)

	resp, env := apiRequest(t, app, http.MethodPost, "/api/sales/", entity.RoleOperador, map[string]any{
		"items": []map[string]any{
			{"product_id": p.ID, "quantity": "5", "unit_price": "3.00"},
		},
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "INSUFFICIENT_STOCK", env["error"])
	assert.Equal(t, 0, store.SaleCount())
}

// Ajuste manual de estoque usa o vocabulário externo in/out e é restrito a
// admin.
func TestAPI_StockDelta_RolesAndTypeMapping(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Farinha", Stock: dec("5"), Ativo: true})
	app := buildAPI(store)

	payload := map[string]any{
		"product_id": p.ID, "type": "in", "quantity": "3", "reason": "ajuste",
	}

	// Operador não pode
	resp, _ := apiRequest(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleOperador, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin pode; "in" vira entrada persistida
	resp, env := apiRequest(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := env["data"].(map[string]any)
	assert.Equal(t, "8", data["new_stock"])

	movements, err := store.Repos().Movements.ListByProduct(p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementEntrada, movements[0].Type)

	// Tipo desconhecido é rejeitado na borda
	resp, env = apiRequest(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, map[string]any{
		"product_id": p.ID, "type": "sideways", "quantity": "1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env["error"])
}

// O tipo do título vem da rota: a baixa em /payables debita o caixa.
func TestAPI_SettlePayable(t *testing.T) {
	store := memory.NewStore()
	title := store.AddTitle(entity.Title{
		Kind:        entity.TitleKindPayable,
		Description: "aluguel",
		AmountTotal: dec("900.00"),
		AmountPaid:  decimal.Zero,
		Status:      domfinance.StatusOpen,
		Ativo:       true,
	})
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", InitialBalance: dec("1000"), Ativo: true})
	app := buildAPI(store)

	resp, env := apiRequest(t, app, http.MethodPost,
		"/api/payables/"+itoa(title.ID)+"/settle", entity.RoleOperador, map[string]any{
			"amount": "900.00", "cash_account_id": account.ID, "method": "transferencia",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := env["data"].(map[string]any)
	assert.Equal(t, domfinance.StatusPaid, data["new_status"])

	// Saldo derivado na leitura
	resp, env = apiRequest(t, app, http.MethodGet, "/api/cash/"+itoa(account.ID)+"/balance", entity.RoleOperador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = env["data"].(map[string]any)
	assert.Equal(t, "100", data["balance"])
}

func TestAPI_TitleNotFound(t *testing.T) {
	store := memory.NewStore()
	account := store.AddCashAccount(entity.CashAccount{Name: "caixa", Ativo: true})
	app := buildAPI(store)

	resp, env := apiRequest(t, app, http.MethodPost, "/api/receivables/999/settle", entity.RoleOperador, map[string]any{
		"amount": "10.00", "cash_account_id": account.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env["error"])
}

func TestAPI_RequiresAuth(t *testing.T) {
	store := memory.NewStore()
	app := buildAPI(store)

	resp, env := apiRequest(t, app, http.MethodPost, "/api/sales/", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env["error"])
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
