package purchasing

import (
	"fmt"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// OrderRequest cantidad a pedir de un producto (normalmente su déficit).
type OrderRequest struct {
	Product  entity.Product
	Quantity int
}

// Aggregate agrupa los pedidos por proveedor, costea cada línea con bundles, aplica la
// exoneración de envío y arma la factura en estado Pending.
//
// vendorFilter, si no está vacío, limita la salida a esos proveedores sin cambiar el cálculo
// por línea. Un producto cuyo proveedor no existe se omite y queda una advertencia en
// Invoice.Warnings: un resultado parcial sigue siendo útil. Pedidos con cantidad <= 0 se omiten.
// Misma entrada, misma factura (salvo GeneratedAt, que fija el llamador).
func Aggregate(requests []OrderRequest, vendors map[string]entity.Vendor, vendorFilter []string) *entity.Invoice {
	inv := &entity.Invoice{
		VendorOrders: make(map[string]*entity.VendorOrder),
		Warnings:     []string{},
	}

	var allowed map[string]struct{}
	if len(vendorFilter) > 0 {
		allowed = make(map[string]struct{}, len(vendorFilter))
		for _, id := range vendorFilter {
			allowed[id] = struct{}{}
		}
	}

	for _, req := range requests {
		if req.Quantity <= 0 {
			continue
		}
		p := req.Product
		if allowed != nil {
			if _, ok := allowed[p.VendorID]; !ok {
				continue
			}
		}
		vendor, ok := vendors[p.VendorID]
		if !ok {
			inv.Warnings = append(inv.Warnings,
				fmt.Sprintf("producto %s (%s) omitido: proveedor %q desconocido", p.ID, p.Name, p.VendorID))
			continue
		}

		order, ok := inv.VendorOrders[vendor.ID]
		if !ok {
			order = NewVendorOrder(vendor)
			inv.VendorOrders[vendor.ID] = order
		}
		order.Items = append(order.Items, NewLineItem(p, req.Quantity))
	}

	RecomputeInvoice(inv)
	return inv
}

// NewVendorOrder crea una orden vacía en estado Pending con la política de envío del proveedor.
func NewVendorOrder(v entity.Vendor) *entity.VendorOrder {
	return &entity.VendorOrder{
		VendorID:              v.ID,
		VendorName:            v.Name,
		Items:                 []entity.LineItem{},
		FreeShippingThreshold: v.FreeShippingThreshold,
		FlatShippingCost:      v.ShippingCost,
		ShippingCost:          v.ShippingCost,
		Status:                entity.StatusPending,
	}
}

// NewLineItem crea la línea de un producto (Cost/Savings se calculan en el recompute).
func NewLineItem(p entity.Product, quantity int) entity.LineItem {
	return entity.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  quantity,
		UnitPrice: p.UnitPrice(),
		Bundles:   append([]entity.Bundle(nil), p.Bundles...),
	}
}
