// Package purchasing contiene el agregador de órdenes por proveedor y el motor de edición
// de la factura de compra. Todo es lógica pura en memoria: la persistencia vive en la capa
// de aplicación.
package purchasing

import (
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// RecomputeItem recalcula Cost y Savings de la línea desde Quantity y Bundles.
func RecomputeItem(it *entity.LineItem) {
	res := inventory.BundleCost(it.Quantity, it.UnitPrice, it.Bundles)
	it.Cost = res.Cost
	it.Savings = res.Savings
}

// RecomputeOrder recalcula desde cero líneas, subtotal, ahorro por bundles y envío.
// El envío se exonera cuando subtotal >= umbral (la igualdad exonera).
func RecomputeOrder(o *entity.VendorOrder) {
	subtotal := decimal.Zero
	savings := decimal.Zero
	for i := range o.Items {
		RecomputeItem(&o.Items[i])
		subtotal = subtotal.Add(o.Items[i].Cost)
		savings = savings.Add(o.Items[i].Savings)
	}
	o.Subtotal = subtotal
	o.BundleSavings = savings
	if subtotal.GreaterThanOrEqual(o.FreeShippingThreshold) {
		o.ShippingCost = decimal.Zero
	} else {
		o.ShippingCost = o.FlatShippingCost
	}
}

// RecomputeInvoice recalcula todas las órdenes y los totales de la factura.
// No hay actualización incremental: los totales nunca se tratan como caché.
func RecomputeInvoice(inv *entity.Invoice) {
	total := decimal.Zero
	bundleSavings := decimal.Zero
	shippingSavings := decimal.Zero
	for _, id := range inv.VendorIDs() {
		o := inv.VendorOrders[id]
		RecomputeOrder(o)
		total = total.Add(o.Total())
		bundleSavings = bundleSavings.Add(o.BundleSavings)
		shippingSavings = shippingSavings.Add(o.ShippingWaived())
	}
	inv.TotalCost = total
	inv.TotalBundleSavings = bundleSavings
	inv.TotalShippingSavings = shippingSavings
	inv.TotalSavings = bundleSavings.Add(shippingSavings)
}
