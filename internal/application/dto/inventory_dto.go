package dto

import (
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock/movements.
type RecordMovementRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity    int    `json:"quantity" validate:"ne=0"`
	Description string `json:"description" validate:"max=255"`
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

// UpdateStockRequest body para POST /api/stock (conteo del día).
type UpdateStockRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	RemainingStock *int   `json:"remaining_stock" validate:"required"`
	Date           string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// StockStatusResponse respuesta de GET /api/stock-status.
type StockStatusResponse struct {
	Date   string              `json:"date"`
	Levels []entity.StockLevel `json:"levels"`
	Alerts []entity.StockAlert `json:"alerts"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un producto con déficit.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	VendorID           string          `json:"vendor_id"`
	ProductName        string          `json:"product_name"`
	Unit               string          `json:"unit"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	MaxStock           int             `json:"max_stock"`
	Prediction         int             `json:"prediction"`
	Status             string          `json:"status"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // con bundles aplicados
	BundleSavings      decimal.Decimal `json:"bundle_savings"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
