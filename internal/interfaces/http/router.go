package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restock-api/internal/application/catalog"
	"github.com/jhoicas/restock-api/internal/application/inventory"
	"github.com/jhoicas/restock-api/internal/application/purchasing"
	"github.com/jhoicas/restock-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *inventory.StockUseCase
	CatalogUC  *catalog.CatalogUseCase
	EditorUC   *purchasing.EditorUseCase
	PDFUC      *purchasing.PDFUseCase
	SpendingUC *reports.SpendingUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Stock: cualquier rol autenticado cuenta y consulta stock
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	api.Get("/stock-status", inventoryHandler.GetStockStatus)
	api.Post("/stock", inventoryHandler.UpdateStock)
	api.Post("/stock/movements", inventoryHandler.RecordMovement)
	api.Get("/stock/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Catálogo (solo lectura)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/vendors", catalogHandler.ListVendors)
	api.Get("/vendors/:id/products", catalogHandler.VendorProducts)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)

	// Facturas de compra y sesiones de edición (compras/admin)
	purchasingOnly := RequireRole(RoleCompras)
	invoiceHandler := NewInvoiceHandler(deps.EditorUC, deps.PDFUC)

	invoices := api.Group("/invoices", purchasingOnly)
	invoices.Post("/generate", invoiceHandler.Generate)
	invoices.Post("/load/:invoiceID", invoiceHandler.Load)
	invoices.Get("/:invoiceID/status-log", invoiceHandler.StatusLog)
	invoices.Get("/:invoiceID/pdf", invoiceHandler.DownloadPDF)

	sessions := api.Group("/sessions", purchasingOnly)
	sessions.Get("/:id", invoiceHandler.GetSession)
	sessions.Delete("/:id", invoiceHandler.CloseSession)
	sessions.Post("/:id/vendors/:vendorID/items", invoiceHandler.AddItem)
	sessions.Put("/:id/vendors/:vendorID/items/:productID", invoiceHandler.SetQuantity)
	sessions.Delete("/:id/vendors/:vendorID/items/:productID", invoiceHandler.RemoveItem)
	sessions.Post("/:id/vendors/:vendorID/save", invoiceHandler.Save)
	sessions.Post("/:id/vendors/:vendorID/status", invoiceHandler.ChangeStatus)

	// Reportes (compras/admin)
	reportHandler := NewReportHandler(deps.SpendingUC)
	reportsGroup := api.Group("/reports", purchasingOnly)
	reportsGroup.Get("/daily-spending", reportHandler.DailySpending)
	reportsGroup.Get("/spending-breakdown", reportHandler.SpendingBreakdown)
}
