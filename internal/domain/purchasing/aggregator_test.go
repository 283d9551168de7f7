package purchasing_test

import (
	"testing"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func price(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures: dos proveedores y un catálogo pequeño de insumos
// ──────────────────────────────────────────────────────────────────────────────

func testVendors() map[string]entity.Vendor {
	return map[string]entity.Vendor{
		"meat": {ID: "meat", Name: "Carnes del Norte", ShippingCost: d("15"), FreeShippingThreshold: d("150")},
		"dry":  {ID: "dry", Name: "Secos SAS", ShippingCost: d("8"), FreeShippingThreshold: d("500")},
	}
}

func chicken() entity.Product {
	return entity.Product{
		ID: "chicken", VendorID: "meat", Name: "Pollo", Unit: "kg", Price: price("10"),
		Bundles: []entity.Bundle{{Quantity: 12, Price: d("100")}},
	}
}

func oil() entity.Product {
	return entity.Product{ID: "oil", VendorID: "dry", Name: "Aceite", Unit: "l", Price: price("4")}
}

func flour() entity.Product {
	return entity.Product{ID: "flour", VendorID: "dry", Name: "Harina", Unit: "kg", Price: price("2")}
}

func TestAggregate_AgrupaPorProveedor(t *testing.T) {
	inv := purchasing.Aggregate([]purchasing.OrderRequest{
		{Product: chicken(), Quantity: 14},
		{Product: oil(), Quantity: 5},
		{Product: flour(), Quantity: 10},
	}, testVendors(), nil)

	require.Len(t, inv.VendorOrders, 2)
	assert.Empty(t, inv.Warnings)

	meat := inv.VendorOrders["meat"]
	require.Len(t, meat.Items, 1)
	assert.True(t, meat.Subtotal.Equal(d("120")))
	assert.True(t, meat.BundleSavings.Equal(d("20")))
	assert.True(t, meat.ShippingCost.Equal(d("15")), "120 < 150: se cobra envío")
	assert.Equal(t, entity.StatusPending, meat.Status)

	dry := inv.VendorOrders["dry"]
	require.Len(t, dry.Items, 2)
	assert.Equal(t, "oil", dry.Items[0].ProductID, "las líneas conservan el orden de entrada")
	assert.True(t, dry.Subtotal.Equal(d("40")))
	assert.True(t, dry.ShippingCost.Equal(d("8")))

	assert.True(t, inv.TotalCost.Equal(d("183")), "120+15+40+8, obtenido %s", inv.TotalCost)
	assert.True(t, inv.TotalSavings.Equal(d("20")))
}

func TestAggregate_UmbralExactoExoneraEnvio(t *testing.T) {
	p := entity.Product{ID: "wings", VendorID: "meat", Name: "Alitas", Unit: "kg", Price: price("15")}
	inv := purchasing.Aggregate([]purchasing.OrderRequest{{Product: p, Quantity: 10}}, testVendors(), nil)

	meat := inv.VendorOrders["meat"]
	assert.True(t, meat.Subtotal.Equal(d("150.00")))
	assert.True(t, meat.ShippingCost.IsZero(), "subtotal == umbral exonera el envío")
	assert.True(t, inv.TotalShippingSavings.Equal(d("15")))
	assert.True(t, inv.TotalSavings.Equal(d("15")))
	assert.True(t, inv.TotalCost.Equal(d("150")))
}

func TestAggregate_ProveedorDesconocidoGeneraAdvertencia(t *testing.T) {
	ghost := entity.Product{ID: "salt", VendorID: "deleted", Name: "Sal", Price: price("1")}
	inv := purchasing.Aggregate([]purchasing.OrderRequest{
		{Product: ghost, Quantity: 3},
		{Product: oil(), Quantity: 2},
	}, testVendors(), nil)

	require.Len(t, inv.Warnings, 1)
	assert.Contains(t, inv.Warnings[0], "salt")
	assert.Len(t, inv.VendorOrders, 1, "el resto de la factura se genera igual")
}

func TestAggregate_FiltroDeProveedores(t *testing.T) {
	reqs := []purchasing.OrderRequest{
		{Product: chicken(), Quantity: 14},
		{Product: oil(), Quantity: 5},
	}
	all := purchasing.Aggregate(reqs, testVendors(), nil)
	onlyMeat := purchasing.Aggregate(reqs, testVendors(), []string{"meat"})

	require.Len(t, onlyMeat.VendorOrders, 1)
	_, ok := onlyMeat.VendorOrders["dry"]
	assert.False(t, ok)
	assert.True(t, onlyMeat.VendorOrders["meat"].Subtotal.Equal(all.VendorOrders["meat"].Subtotal),
		"el filtro no cambia el cálculo por línea")
}

func TestAggregate_OmiteCantidadesNoPositivas(t *testing.T) {
	inv := purchasing.Aggregate([]purchasing.OrderRequest{
		{Product: oil(), Quantity: 0},
		{Product: flour(), Quantity: -2},
	}, testVendors(), nil)
	assert.Empty(t, inv.VendorOrders)
	assert.True(t, inv.TotalCost.IsZero())
}

func TestAggregate_Determinista(t *testing.T) {
	reqs := []purchasing.OrderRequest{
		{Product: chicken(), Quantity: 30},
		{Product: flour(), Quantity: 7},
		{Product: oil(), Quantity: 3},
	}
	a := purchasing.Aggregate(reqs, testVendors(), nil)
	b := purchasing.Aggregate(reqs, testVendors(), nil)
	assert.Equal(t, a, b)
}
