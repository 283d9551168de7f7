package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──── Tests helpers de formato ────

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0,00", money(decimal.Zero))
	assert.Equal(t, "$1.234,50", money(d("1234.5")))
	assert.Equal(t, "$1.000.000,00", money(d("1000000")))
	assert.Equal(t, "-$15,00", money(d("-15")))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "999", formatThousands("999"))
	assert.Equal(t, "25.000", formatThousands("25000"))
}

// ──── Tests generación ────

func TestGenerateVendorOrderPDF(t *testing.T) {
	order := &entity.VendorOrder{
		VendorID:              "meat",
		VendorName:            "Carnes del Valle",
		FreeShippingThreshold: d("150"),
		FlatShippingCost:      d("15"),
		Subtotal:              d("130"),
		BundleSavings:         d("20"),
		ShippingCost:          d("15"),
		Status:                entity.StatusReviewed,
		InvoiceID:             "inv-1",
		OrderDate:             time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Items: []entity.LineItem{
			{ProductID: "chicken", Name: "Pollo", Unit: "kg", Quantity: 14, UnitPrice: d("10"), Cost: d("120"), Savings: d("20")},
			{ProductID: "beef", Name: "Res", Unit: "kg", Quantity: 0, UnitPrice: d("20")},
			{ProductID: "pork", Name: "Cerdo", Unit: "kg", Quantity: 1, UnitPrice: d("10"), Cost: d("10")},
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateVendorOrderPDF(
		context.Background(), order, ports.Issuer{Name: "La Cocina", Address: "Calle 1"},
	)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF válido")
}

func TestGenerateVendorOrderPDF_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateVendorOrderPDF(context.Background(), nil, ports.Issuer{})
	assert.Error(t, err)
}

func TestGenerateSpendingPDF(t *testing.T) {
	rows := []entity.SpendingSummary{
		{InvoiceID: "inv-1", VendorName: "Carnes", Status: entity.StatusApproved, ItemCount: 2,
			Subtotal: d("130"), ShippingCost: d("15"), Total: d("145")},
	}
	out, err := NewMarotoPDFGenerator().GenerateSpendingPDF(context.Background(), time.Now(), rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := NewMarotoPDFGenerator().GenerateSpendingPDF(context.Background(), time.Now(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}

func TestItemRows_OmiteCantidadCero(t *testing.T) {
	rows := itemRows([]entity.LineItem{
		{Name: "a", Quantity: 0},
		{Name: "b", Quantity: 2},
	})
	assert.Len(t, rows, 1)
}
