package entity

import "time"

// Estados de stock derivados (nunca se persisten).
type StockStatus string

const (
	StockUnderstock StockStatus = "understock"
	StockOverstock  StockStatus = "overstock"
	StockOptimal    StockStatus = "optimal"
)

// Tipos de alerta de stock.
const (
	AlertLow  = "low"
	AlertHigh = "high"
)

// StockSnapshot nivel de stock de un producto en una fecha calendario (uno por producto y día).
// RemainingStock puede quedar negativo temporalmente por ajustes manuales.
type StockSnapshot struct {
	ProductID      string
	Date           time.Time
	RemainingStock int
	DailyIn        int
	DailyOut       int
}

// StockLevel vista del snapshot unida con los umbrales del producto (lo que muestra la página en vivo).
type StockLevel struct {
	ProductID          string      `json:"product_id"`
	VendorID           string      `json:"vendor_id"`
	Name               string      `json:"name"`
	Unit               string      `json:"unit"`
	RemainingStock     int         `json:"remaining_stock"`
	DailyIn            int         `json:"daily_in"`
	DailyOut           int         `json:"daily_out"`
	MinStock           int         `json:"min_stock"`
	MaxStock           int         `json:"max_stock"`
	LastYearPrediction int         `json:"last_year_prediction"`
	Status             StockStatus `json:"status"`
}

// StockAlert aviso por producto fuera de rango (low/high); solo se usa para notificaciones.
type StockAlert struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}

// DailyConsumption consumo agregado de un producto en un día (salidas y ajustes).
type DailyConsumption struct {
	Date     time.Time
	Quantity int
}
