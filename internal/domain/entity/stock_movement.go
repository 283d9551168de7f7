package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"
	MovementTypeOUT        = "OUT"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
)

// StockMovement movimiento de inventario. Quantity es el delta con signo
// (positivo para IN, negativo para OUT, cualquiera para ADJUSTMENT).
type StockMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int
	Description string
	Reference   string // invoice_id cuando proviene de una aprobación
	CreatedBy   string
	CreatedAt   time.Time
}
