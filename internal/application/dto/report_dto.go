package dto

import (
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DailySpendingResponse gasto aprobado de un día.
type DailySpendingResponse struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// SpendingRowResponse orden aprobada dentro del desglose.
type SpendingRowResponse struct {
	InvoiceID    string          `json:"invoice_id"`
	VendorID     string          `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"item_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
}

// SpendingBreakdownResponse respuesta JSON de GET /api/reports/spending-breakdown.
type SpendingBreakdownResponse struct {
	Date         string                `json:"date"`
	Rows         []SpendingRowResponse `json:"rows"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	Total        decimal.Decimal       `json:"total"`
}

// ToDailySpendingResponse mapea el gasto diario.
func ToDailySpendingResponse(rows []entity.DailySpending) []DailySpendingResponse {
	out := make([]DailySpendingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailySpendingResponse{Date: r.Date.Format(time.DateOnly), Total: r.Total})
	}
	return out
}

// ToSpendingRows mapea las filas del desglose.
func ToSpendingRows(rows []entity.SpendingSummary) []SpendingRowResponse {
	out := make([]SpendingRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SpendingRowResponse{
			InvoiceID:    r.InvoiceID,
			VendorID:     r.VendorID,
			VendorName:   r.VendorName,
			Status:       string(r.Status),
			ItemCount:    r.ItemCount,
			Subtotal:     r.Subtotal,
			ShippingCost: r.ShippingCost,
			Total:        r.Total,
		})
	}
	return out
}
