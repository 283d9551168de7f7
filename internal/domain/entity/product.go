package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bundle es una presentación por volumen: Quantity unidades a un precio total fijo.
type Bundle struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Product representa un insumo del restaurante tal como lo vende su proveedor.
// Cada producto pertenece a un único proveedor (la elección de proveedor se resuelve antes).
// Price inválido (NULL) significa "sin precio": la calculadora lo trata como cero.
type Product struct {
	ID                 string
	VendorID           string
	Name               string
	Unit               string
	Price              decimal.NullDecimal
	Bundles            []Bundle
	MinStock           int
	MaxStock           int
	LastYearPrediction int // nivel objetivo de stock usado para calcular el déficit
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UnitPrice devuelve el precio unitario o cero si el producto no tiene precio.
func (p Product) UnitPrice() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}
