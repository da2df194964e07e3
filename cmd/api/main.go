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
	"github.com/jhoicas/barstock-api/internal/application/auth"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/barstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/barstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/barstock-api/internal/interfaces/http"
	"github.com/jhoicas/barstock-api/pkg/config"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	tz := cfg.App.Location()
	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout())
	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)

	// Saldos en cero para cada par (bar, producto) nuevo, después del commit.
	provisioner := inventory.NewProvisioner(repos.Balances)
	hooks := inventory.NewHooks(provisioner, log.Component("provisioning"))

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	locationUC := usecase.NewLocationUseCase(repos.Locations, tenantRepo, hooks)
	productUC := usecase.NewProductUseCase(repos.Products, hooks)
	foodUC := usecase.NewFoodUseCase(repos.Foods)
	userUC := usecase.NewUserUseCase(userRepo, tenantRepo, repos.Locations)
	capabilitySvc := usecase.NewCapabilityService(userRepo)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, repos.Locations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	receiptUC := inventory.NewReceiptUseCase(txRunner, repos, log.Component("receipts"))
	transferUC := inventory.NewTransferUseCase(txRunner, repos)
	countUC := inventory.NewCountUseCase(txRunner, repos, log.Component("counts"))
	requisitionUC := inventory.NewRequisitionUseCase(txRunner, repos, log.Component("requisitions"))
	lossUC := inventory.NewLossUseCase(txRunner, repos, tz)
	eventUC := inventory.NewEventUseCase(txRunner, repos)
	reportUC := inventory.NewReportUseCase(repos, tz)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Barstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TenantUC:      tenantUC,
		LocationUC:    locationUC,
		ProductUC:     productUC,
		FoodUC:        foodUC,
		UserUC:        userUC,
		Capabilities:  capabilitySvc,
		Provisioner:   provisioner,
		ReceiptUC:     receiptUC,
		TransferUC:    transferUC,
		CountUC:       countUC,
		RequisitionUC: requisitionUC,
		LossUC:        lossUC,
		EventUC:       eventUC,
		ReportUC:      reportUC,
		EventPDF:      infrapdf.NewEventReportGenerator(),
		Timezone:      tz,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Component("http"),
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
	// Esperar los aprovisionamientos en curso antes de cerrar el pool.
	hooks.Wait()

	log.Info().Msg("aplicación detenida")
}
