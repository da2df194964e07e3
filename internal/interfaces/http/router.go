package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/auth"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/internal/domain/access"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TenantUC      *usecase.TenantUseCase
	LocationUC    *usecase.LocationUseCase
	ProductUC     *usecase.ProductUseCase
	FoodUC        *usecase.FoodUseCase
	UserUC        *usecase.UserUseCase
	Capabilities  principalLoader
	Provisioner   *inventory.Provisioner
	ReceiptUC     *inventory.ReceiptUseCase
	TransferUC    *inventory.TransferUseCase
	CountUC       *inventory.CountUseCase
	RequisitionUC *inventory.RequisitionUseCase
	LossUC        *inventory.LossUseCase
	EventUC       *inventory.EventUseCase
	ReportUC      *inventory.ReportUseCase
	EventPDF      eventReportGenerator
	Timezone      *time.Location
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	tz := deps.Timezone
	if tz == nil {
		tz = time.UTC
	}
	can := func(c access.Capability) fiber.Handler {
		return RequireCapability(c, deps.Capabilities, log)
	}
	withLocation := RequireScope(true)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/scopes", authHandler.Scopes)
	protected.Post("/auth/scope", authHandler.SelectScope)

	// Administración (capacidad admin)
	catalog := NewCatalogHandler(deps.TenantUC, deps.LocationUC, deps.ProductUC, deps.FoodUC, log)
	admin := NewAdminHandler(deps.UserUC, deps.Provisioner, log)
	isAdmin := can(access.CapAdmin)
	protected.Post("/tenants", isAdmin, catalog.CreateTenant)
	protected.Get("/tenants", isAdmin, catalog.ListTenants)
	protected.Post("/locations", isAdmin, catalog.CreateLocation)
	protected.Get("/locations", isAdmin, catalog.ListLocations)
	protected.Post("/products", isAdmin, catalog.CreateProduct)
	protected.Get("/products", isAdmin, catalog.ListProducts)
	protected.Get("/products/:id", isAdmin, catalog.GetProduct)
	protected.Put("/products/:id", isAdmin, catalog.UpdateProduct)
	protected.Post("/foods", isAdmin, catalog.CreateFood)
	protected.Get("/foods", isAdmin, catalog.ListFoods)
	protected.Post("/users", isAdmin, admin.CreateUser)
	protected.Put("/users/:id/access", isAdmin, admin.SetAccess)
	protected.Put("/users/:id/capabilities", isAdmin, admin.SetCapabilities)
	protected.Post("/admin/provision", isAdmin, admin.Provision)

	// Stock del bar actual (alcance con bar)
	stock := NewStockHandler(deps.ReportUC, deps.ReceiptUC, deps.TransferUC, deps.CountUC, log)
	stockGroup := protected.Group("/stock", withLocation)
	stockGroup.Get("/", stock.Balances)
	stockGroup.Post("/receipts", can(access.CapGoodsReceipt), stock.RegisterReceipt)
	stockGroup.Get("/receipts", can(access.CapGoodsReceipt), stock.ListReceipts)
	stockGroup.Post("/transfers", can(access.CapTransfers), stock.Transfer)
	stockGroup.Get("/transfers", can(access.CapTransferHistory), stock.TransferHistory)
	stockGroup.Post("/counts", can(access.CapCount), stock.SubmitCount)
	stockGroup.Get("/counts", can(access.CapCountHistory), stock.CountHistory)

	// Requisiciones
	reqs := NewRequisitionHandler(deps.RequisitionUC, tz, log)
	reqGroup := protected.Group("/requisitions", withLocation)
	reqGroup.Post("/", can(access.CapRequisitions), reqs.Create)
	reqGroup.Get("/", can(access.CapRequisitionHistory), reqs.History)
	reqGroup.Get("/pending", can(access.CapApproval), reqs.Pending)
	reqGroup.Post("/decisions", can(access.CapApproval), reqs.Decide)

	// Pérdidas
	losses := NewLossHandler(deps.LossUC, tz, log)
	lossGroup := protected.Group("/losses", withLocation)
	lossGroup.Post("/", can(access.CapLosses), losses.Register)
	lossGroup.Get("/", can(access.CapLosses), losses.ListDay)
	lossGroup.Delete("/:id", can(access.CapLosses), losses.Reverse)
	lossGroup.Post("/:id/write-off", can(access.CapReports), losses.MarkWrittenOff)
	lossGroup.Delete("/:id/write-off", can(access.CapReports), losses.UnmarkWrittenOff)

	// Reportes
	reports := NewReportHandler(deps.ReportUC, tz, log)
	repGroup := protected.Group("/reports", withLocation, can(access.CapReports))
	repGroup.Get("/count-differences", reports.CountDifferences)
	repGroup.Get("/losses", reports.Losses)
	repGroup.Get("/losses/export", reports.ExportLosses)
	repGroup.Get("/current-counts", reports.CurrentCounts)
	repGroup.Get("/stock-outflow", reports.StockOutflow)
	repGroup.Get("/requisitions-vs-counts", reports.RequisitionsVsCounts)

	// Eventos (sin alcance de bar). La baja va antes del grupo: pide reportes, no eventos.
	events := NewEventHandler(deps.EventUC, deps.TenantUC, deps.EventPDF, tz, log)
	protected.Post("/events/:id/write-off", can(access.CapReports), events.MarkWrittenOff)
	protected.Delete("/events/:id/write-off", can(access.CapReports), events.UnmarkWrittenOff)
	evGroup := protected.Group("/events", can(access.CapEvents))
	evGroup.Get("/consolidated", events.Consolidated)
	evGroup.Get("/consolidated/export", events.ExportConsolidated)
	evGroup.Post("/", events.Create)
	evGroup.Get("/", events.ListOpen)
	evGroup.Get("/:id", events.Get)
	evGroup.Put("/:id", events.Update)
	evGroup.Delete("/:id", events.Delete)
	evGroup.Post("/:id/finalize", events.Finalize)
}
