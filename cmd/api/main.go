package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/minatoent/backoffice-api/internal/application/analytics"
	"github.com/minatoent/backoffice-api/internal/application/auth"
	appbilling "github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/application/extraction"
	"github.com/minatoent/backoffice-api/internal/application/inventory"
	infraai "github.com/minatoent/backoffice-api/internal/infrastructure/ai"
	infracounter "github.com/minatoent/backoffice-api/internal/infrastructure/counter"
	infraexcel "github.com/minatoent/backoffice-api/internal/infrastructure/excel"
	"github.com/minatoent/backoffice-api/internal/infrastructure/fsstore"
	infrapdf "github.com/minatoent/backoffice-api/internal/infrastructure/pdf"
	httpRouter "github.com/minatoent/backoffice-api/internal/interfaces/http"
	"github.com/minatoent/backoffice-api/pkg/config"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	// Storage adapters
	inventoryStore := infraexcel.NewInventoryStore(cfg.Storage.ChassisFile, cfg.Storage.BatteryFile, log)
	ledgerStore := infraexcel.NewLedgerStore(cfg.Storage.LedgerFile, log)
	counters := infracounter.NewFileCounter(cfg.Storage.CounterDir, cfg.Company.InvoicePrefix, log)
	folders := fsstore.NewCustomerFolders(cfg.Storage.DataDir, log)

	registry, err := inventory.NewRegistry(inventoryStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load inventory workbooks")
	}

	// Outbound services
	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, log)
	billRenderer := infrapdf.NewMarotoBillRenderer()

	// Use cases
	authUC := auth.NewUseCase(auth.Config{
		OperatorName:         cfg.Auth.OperatorName,
		OperatorPasswordHash: cfg.Auth.OperatorPasswordHash,
		JWTSecret:            cfg.JWT.Secret,
		JWTIssuer:            cfg.JWT.Issuer,
		JWTExpirationMinutes: cfg.JWT.Expiration,
	}, log)

	extractionUC := extraction.NewUseCase(folders, geminiSvc,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second, log)

	generateBillUC := appbilling.NewGenerateBillUseCase(
		registry, counters, ledgerStore, billRenderer,
		appbilling.Config{
			Seller: appbilling.SellerInfo{
				Name:      cfg.Company.Name,
				GSTIN:     cfg.Company.GSTIN,
				Address:   cfg.Company.Address,
				Phone:     cfg.Company.Phone,
				Email:     cfg.Company.Email,
				StateCode: cfg.Company.StateCode,
			},
			HSNCode:  cfg.Company.HSNCode,
			BillsDir: cfg.Storage.BillsDir,
		}, log)

	dashboardUC := analytics.NewDashboardUseCase(ledgerStore, registry, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // extraction calls can take a while
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name}
		if _, err := os.Stat(cfg.Storage.DataDir); err != nil {
			status["status"] = "degraded"
			status["data_dir"] = "missing"
		}
		return c.JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ExtractionUC: extractionUC,
		Registry:     registry,
		GenerateBill: generateBillUC,
		DashboardUC:  dashboardUC,
		BillsDir:     cfg.Storage.BillsDir,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
