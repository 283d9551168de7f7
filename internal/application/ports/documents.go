package ports

import (
	"context"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// Issuer datos del restaurante que emite la orden de compra (bloque "Emitida por" del PDF).
type Issuer struct {
	Name    string
	Address string
}

// InvoicePDFGenerator genera documentos PDF imprimibles.
type InvoicePDFGenerator interface {
	GenerateVendorOrderPDF(ctx context.Context, order *entity.VendorOrder, issuer Issuer) ([]byte, error)
	GenerateSpendingPDF(ctx context.Context, date time.Time, rows []entity.SpendingSummary) ([]byte, error)
}

// SpendingExporter exporta el desglose de gasto a una hoja de cálculo.
type SpendingExporter interface {
	ExportBreakdownXLSX(ctx context.Context, date time.Time, rows []entity.SpendingSummary) ([]byte, error)
}
