package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaofacil/erp-api/internal/application/auth"
	"github.com/gestaofacil/erp-api/internal/application/finance"
	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/application/purchasing"
	"github.com/gestaofacil/erp-api/internal/application/sales"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	StockUC      *inventory.StockUseCase
	FinalizeUC   *sales.FinalizeSaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	SettlementUC *finance.SettlementUseCase
	AuthUC       *auth.AuthUseCase
	Movements    repository.InventoryMovementRepository
	Idempotency  ports.IdempotencyStore // nulo desabilita o guard
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mutações financeiras e de estoque passam pelo guard de idempotência:
	// repetir um Idempotency-Key já processado devolve a resposta original
	// em vez de aplicar a mutação de novo.
	idem := IdempotencyMiddleware(deps.Idempotency)

	// Estoque: ajuste manual restrito a admin; histórico aberto a autenticados
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Movements, deps.Log)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin), idem, inventoryHandler.ApplyDelta)
	protected.Get("/products/:id/movements", inventoryHandler.ListMovements)

	// Vendas (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.FinalizeUC, deps.ReceiptUC, deps.Log)
	salesGroup.Post("/", idem, salesHandler.Finalize)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Compras (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.Log)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/order", purchaseHandler.MarkOrdered)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)
	purchases.Post("/:id/receipts", idem, purchaseHandler.Receive)

	// Financeiro (protegido): contas a pagar, a receber e caixa.
	// O tipo do título vem da rota, nunca do corpo.
	financeHandler := NewFinanceHandler(deps.SettlementUC, deps.Log)
	payables := protected.Group("/payables")
	payables.Post("/", financeHandler.CreateTitle(entity.TitleKindPayable))
	payables.Post("/:id/settle", idem, financeHandler.Settle(entity.TitleKindPayable))

	receivables := protected.Group("/receivables")
	receivables.Post("/", financeHandler.CreateTitle(entity.TitleKindReceivable))
	receivables.Post("/:id/settle", idem, financeHandler.Settle(entity.TitleKindReceivable))

	protected.Get("/cash/:id/balance", financeHandler.CashBalance)
}
