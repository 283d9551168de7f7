// Package pdf genera los documentos imprimibles del restaurante: la orden de
// compra por proveedor y el resumen de gasto diario.
//
// Layout de la orden de compra (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante           │  ORDEN DE COMPRA + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMITIDA POR: dirección del restaurante                     │
//	│  PROVEEDOR: nombre + estado de la orden                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Unidad | P.Unit | Ahorro | Costo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Ahorro paquetes / Envío / TOTAL        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la orden para la recepción         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// GenerateVendorOrderPDF genera la orden de compra de un proveedor y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVendorOrderPDF(
	_ context.Context,
	order *entity.VendorOrder,
	issuer ports.Issuer,
) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	m := newDocument("Orden de compra "+order.VendorName, issuer.Name)

	m.AddRows(headerRow(issuer.Name, "ORDEN DE COMPRA", order.OrderDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(issuer))
	m.AddRows(vendorRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		headerCell{"Cant.", 1, align.Center},
		headerCell{"Producto", 4, align.Left},
		headerCell{"Unidad", 1, align.Center},
		headerCell{"Precio Unit.", 2, align.Right},
		headerCell{"Ahorro", 2, align.Right},
		headerCell{"Costo", 2, align.Right},
	))
	m.AddRows(itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(orderTotalsRow(order))

	if order.InvoiceID != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(receivingFooterRow(order.InvoiceID))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateSpendingPDF genera el resumen de gasto aprobado de un día.
func (g *MarotoPDFGenerator) GenerateSpendingPDF(
	_ context.Context,
	date time.Time,
	rows []entity.SpendingSummary,
) ([]byte, error) {
	m := newDocument("Gasto diario "+date.Format(time.DateOnly), "restock-api")

	m.AddRows(headerRow("Resumen de gasto", "ÓRDENES APROBADAS", date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(
		headerCell{"Proveedor", 4, align.Left},
		headerCell{"Ítems", 1, align.Center},
		headerCell{"Estado", 1, align.Center},
		headerCell{"Subtotal", 2, align.Right},
		headerCell{"Envío", 2, align.Right},
		headerCell{"Total", 2, align.Right},
	))

	subtotal, shipping := decimal.Zero, decimal.Zero
	for _, r := range rows {
		subtotal = subtotal.Add(r.Subtotal)
		shipping = shipping.Add(r.ShippingCost)
		m.AddRows(row.New(7).Add(
			col.New(4).Add(text.New(r.VendorName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(r.ItemCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(string(r.Status), props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(money(r.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(r.ShippingCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(r.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay órdenes aprobadas para este día.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsBlock(
		totalLine{"Subtotal:", money(subtotal), false},
		totalLine{"Envío:", money(shipping), false},
		totalLine{"GASTO TOTAL:", money(subtotal.Add(shipping)), true},
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y tipo de documento + fecha (der).
func headerRow(title, kind string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(title, "Restaurante"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func issuerRow(issuer ports.Issuer) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMITIDA POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s",
				nonEmpty(issuer.Name, "-"),
				nonEmpty(issuer.Address, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func vendorRow(order *entity.VendorOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.VendorName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Envío gratis desde: %s",
				string(order.Status),
				money(order.FreeShippingThreshold),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

type headerCell struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de la tabla en negrita con el color primario.
func tableHeaderRow(cells ...headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// itemRows: una fila por línea de la orden; las líneas en cero no se imprimen.
func itemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		if it.Quantity == 0 {
			continue
		}
		savings := "-"
		if it.Savings.GreaterThan(decimal.Zero) {
			savings = money(it.Savings)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(savings, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGreen})),
			col.New(2).Add(text.New(money(it.Cost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func orderTotalsRow(order *entity.VendorOrder) core.Row {
	shipping := money(order.ShippingCost)
	if order.ShippingWaived().GreaterThan(decimal.Zero) {
		shipping = "Gratis"
	}
	return totalsBlock(
		totalLine{"Subtotal:", money(order.Subtotal), false},
		totalLine{"Ahorro paquetes:", money(order.BundleSavings), false},
		totalLine{"Envío:", shipping, false},
		totalLine{"TOTAL:", money(order.Total()), true},
	)
}

type totalLine struct {
	label string
	value string
	grand bool
}

// totalsBlock: bloque de totales alineado a la derecha.
func totalsBlock(lines ...totalLine) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, l := range lines {
		top := float64(i * 6)
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		vp := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if l.grand {
			lp.Size, lp.Color = 10, colorPrimary
			vp.Size, vp.Color, vp.Style = 10, colorPrimary, fontstyle.Bold
		}
		labels.Add(text.New(l.label, lp))
		values.Add(text.New(l.value, vp))
	}
	return row.New(float64(len(lines)*6+2)).Add(col.New(3), labels, values, col.New(3))
}

// receivingFooterRow: QR con el ID de la orden para conciliarla al recibir la mercancía.
func receivingFooterRow(invoiceID string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(invoiceID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escanea el código al recibir la mercancía.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Orden: "+invoiceID, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 12, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto con dos decimales y puntos de miles. Ej: 1234.5 → "$1.234,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "$" + formatThousands(intPart) + "," + frac
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
