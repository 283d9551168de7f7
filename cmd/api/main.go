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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/restock-api/internal/application/catalog"
	"github.com/jhoicas/restock-api/internal/application/inventory"
	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/application/purchasing"
	"github.com/jhoicas/restock-api/internal/application/reports"
	infraai "github.com/jhoicas/restock-api/internal/infrastructure/ai"
	infraexport "github.com/jhoicas/restock-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/restock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restock-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/restock-api/internal/interfaces/http"
	"github.com/jhoicas/restock-api/pkg/config"
	"github.com/jhoicas/restock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	stockRepo := postgres.NewStockRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	statusLogRepo := postgres.NewStatusLogRepository(pool)
	spendingRepo := postgres.NewSpendingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Asesor IA opcional: sin proveedor configurado la generación usa solo la regla de déficit.
	var advisor ports.OrderAdvisor
	switch cfg.AI.Provider {
	case "anthropic":
		advisor = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	case "gemini":
		advisor = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	if advisor != nil {
		log.Info().Str("provider", cfg.AI.Provider).Msg("asesor IA habilitado")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	issuer := ports.Issuer{Name: cfg.Restaurant.Name, Address: cfg.Restaurant.Address}

	stockUC := inventory.NewStockUseCase(stockRepo, catalogRepo, log.Component("stock"))
	catalogUC := catalog.NewCatalogUseCase(catalogRepo)
	workflow := purchasing.NewStatusWorkflow(invoiceRepo, statusLogRepo, txRunner, log.Component("workflow"))
	generator := purchasing.NewGenerateInvoiceUseCase(stockRepo, catalogRepo, advisor, log.Component("generate"))
	sessions := purchasing.NewSessionStore()
	editorUC := purchasing.NewEditorUseCase(generator, catalogRepo, invoiceRepo, workflow, sessions)
	pdfUC := purchasing.NewPDFUseCase(invoiceRepo, pdfGenerator, issuer)
	spendingUC := reports.NewSpendingUseCase(spendingRepo, pdfGenerator, infraexport.NewExcelExporter())

	var rollover *scheduler.RolloverJob
	if cfg.Scheduler.Enabled {
		rollover = scheduler.NewRolloverJob(stockRepo, log.Component("scheduler"), nil)
		if err := rollover.Start(cfg.Scheduler.RolloverCron); err != nil {
			log.Fatal().Err(err).Msg("programar rollover de stock")
		}
		if err := rollover.ScheduleSessionSweep(cfg.Scheduler.SessionSweepCron, sessions, cfg.Scheduler.SessionIdle); err != nil {
			log.Fatal().Err(err).Msg("programar barrido de sesiones")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // la generación con IA consulta un producto a la vez
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), "/health"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		CatalogUC:  catalogUC,
		EditorUC:   editorUC,
		PDFUC:      pdfUC,
		SpendingUC: spendingUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if rollover != nil {
		rollover.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
