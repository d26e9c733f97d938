package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/internal/application/auth"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/sale"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/pkg/jwt"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	CommitUC        *sale.CommitUseCase
	SaleUC          *sale.SaleUseCase
	ReceiptUC       *sale.ReceiptUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	LowStock        *alerts.LowStockChecker
	Expiry          *alerts.ExpiryChecker
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	CronSecret      string
	Location        *time.Location
	Logger          *logger.Logger
}

// Router registra las rutas de la API.
//
// El caixa (catálogo, estoque, checkout, ventas) es público dentro de la red de la tienda;
// las operaciones destructivas y de gestión exigen JWT de admin y los endpoints
// del scheduler exigen CRON_SECRET.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	adminOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin)}
	cron := CronAuth(deps.CronSecret)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	app.Post("/auth/login", authHandler.Login)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC, log)
	app.Post("/products/sku", productHandler.LookupSKU)
	app.Post("/sku", productHandler.LookupSKU)
	app.Post("/products", productHandler.Create)
	app.Get("/products", productHandler.List)
	app.Put("/products", productHandler.Update)
	app.Patch("/products", productHandler.AdjustStock)
	app.Delete("/products", productHandler.Delete)
	app.Get("/products/:id", productHandler.GetByID)

	// Estoque
	stockHandler := NewStockHandler(deps.StockUC, deps.ReplenishmentUC, log)
	app.Post("/decrement-stock", stockHandler.Decrement)
	app.Get("/replenishment-list", append(adminOnly, stockHandler.GetReplenishmentList)...)

	// Vendas
	saleHandler := NewSaleHandler(deps.CommitUC, deps.SaleUC, deps.ReceiptUC, deps.Location, log)
	app.Post("/checkout", saleHandler.Checkout)
	app.Post("/sales", saleHandler.Create)
	app.Get("/sales", saleHandler.List)
	app.Delete("/sales", append(adminOnly, saleHandler.DeleteAll)...)
	app.Get("/sales/export", saleHandler.Export)
	app.Get("/sales/:id/receipt", saleHandler.Receipt)
	app.Get("/sales/:id", saleHandler.GetByID)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	app.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Scheduler externo
	alertsHandler := NewAlertsHandler(deps.LowStock, deps.Expiry, log)
	app.Get("/check-expiry", cron, alertsHandler.CheckExpiry)
	app.Get("/check-low-stock", cron, alertsHandler.CheckLowStock)
}
