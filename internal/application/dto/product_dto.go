package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// VendorResponse salida de un proveedor con su política de envío.
type VendorResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	ShippingCost          decimal.Decimal `json:"shipping_cost"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
}

// ProductResponse salida de un producto del catálogo. Price nil = sin precio.
type ProductResponse struct {
	ID                 string           `json:"id"`
	VendorID           string           `json:"vendor_id"`
	Name               string           `json:"name"`
	Unit               string           `json:"unit"`
	Price              *decimal.Decimal `json:"price"`
	Bundles            []entity.Bundle  `json:"bundles"`
	MinStock           int              `json:"min_stock"`
	MaxStock           int              `json:"max_stock"`
	LastYearPrediction int              `json:"last_year_prediction"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToVendorResponse mapea un proveedor.
func ToVendorResponse(v entity.Vendor) VendorResponse {
	return VendorResponse{
		ID:                    v.ID,
		Name:                  v.Name,
		ShippingCost:          v.ShippingCost,
		FreeShippingThreshold: v.FreeShippingThreshold,
	}
}

// ToProductResponse mapea un producto.
func ToProductResponse(p entity.Product) ProductResponse {
	r := ProductResponse{
		ID:                 p.ID,
		VendorID:           p.VendorID,
		Name:               p.Name,
		Unit:               p.Unit,
		Bundles:            p.Bundles,
		MinStock:           p.MinStock,
		MaxStock:           p.MaxStock,
		LastYearPrediction: p.LastYearPrediction,
	}
	if p.Price.Valid {
		price := p.Price.Decimal
		r.Price = &price
	}
	if r.Bundles == nil {
		r.Bundles = []entity.Bundle{}
	}
	return r
}
