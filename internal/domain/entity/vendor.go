package entity

import "github.com/shopspring/decimal"

// Vendor proveedor con su política de envío: ShippingCost fijo, exonerado si el subtotal
// de la orden alcanza FreeShippingThreshold.
type Vendor struct {
	ID                    string
	Name                  string
	ShippingCost          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}
