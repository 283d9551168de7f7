package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySpending gasto total aprobado en un día.
type DailySpending struct {
	Date  time.Time
	Total decimal.Decimal
}

// SpendingSummary resumen de una orden aprobada para el desglose de gasto diario.
type SpendingSummary struct {
	InvoiceID    string
	VendorID     string
	VendorName   string
	OrderDate    time.Time
	Status       InvoiceStatus
	ItemCount    int
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}
