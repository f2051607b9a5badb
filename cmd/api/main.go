package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestaofacil/erp-api/internal/application/auth"
	"github.com/gestaofacil/erp-api/internal/application/finance"
	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/application/purchasing"
	"github.com/gestaofacil/erp-api/internal/application/sales"
	infrapdf "github.com/gestaofacil/erp-api/internal/infrastructure/pdf"
	"github.com/gestaofacil/erp-api/internal/infrastructure/postgres"
	infraredis "github.com/gestaofacil/erp-api/internal/infrastructure/redis"
	httpRouter "github.com/gestaofacil/erp-api/internal/interfaces/http"
	"github.com/gestaofacil/erp-api/pkg/config"
	"github.com/gestaofacil/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	// Repositórios ligados ao pool (caminhos de leitura); as mutações correm
	// dentro do TxRunner, com repositórios ligados à transação.
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	cashRepo := postgres.NewCashRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := inventory.NewStockUseCase(txRunner)
	finalizeUC := sales.NewFinalizeSaleUseCase(txRunner, stockUC, saleRepo, cfg.Sales.RequirePaymentMatch)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, stockUC, purchaseRepo)
	settlementUC := finance.NewSettlementUseCase(txRunner, cashRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Guarda de idempotência via Redis; sem REDIS_ADDR o guard fica inativo.
	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		redisClient := infraredis.NewClient(cfg.Redis)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexão ao Redis")
		}
		defer redisClient.Close()
		idempotency = infraredis.NewIdempotencyRepository(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR vazio: guarda de idempotência desabilitada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		FinalizeUC:   finalizeUC,
		ReceiptUC:    receiptUC,
		PurchaseUC:   purchaseUC,
		SettlementUC: settlementUC,
		AuthUC:       authUC,
		Movements:    movementRepo,
		Idempotency:  idempotency,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("servidor encerrado")
}
