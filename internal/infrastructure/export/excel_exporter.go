// Package export genera hojas de cálculo con excelize.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

var _ ports.SpendingExporter = (*ExcelExporter)(nil)

const spendingSheet = "Gasto"

var spendingHeaders = []string{"Orden", "Proveedor", "Fecha orden", "Estado", "Ítems", "Subtotal", "Envío", "Total"}

// ExcelExporter implementa ports.SpendingExporter.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportBreakdownXLSX escribe una fila por orden aprobada y una fila final de totales.
func (e *ExcelExporter) ExportBreakdownXLSX(_ context.Context, date time.Time, rows []entity.SpendingSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", spendingSheet); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	moneyFmt := "#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}

	title := fmt.Sprintf("Gasto aprobado %s", date.Format(time.DateOnly))
	if err := f.SetCellValue(spendingSheet, "A1", title); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(spendingSheet, "A1", "A1", bold)

	for i, h := range spendingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(spendingSheet, cell, h); err != nil {
			return nil, err
		}
	}
	_ = f.SetCellStyle(spendingSheet, "A3", "H3", bold)

	rowIdx := 4
	for _, r := range rows {
		values := []any{
			r.InvoiceID,
			r.VendorName,
			r.OrderDate.Format(time.DateOnly),
			string(r.Status),
			r.ItemCount,
			r.Subtotal.InexactFloat64(),
			r.ShippingCost.InexactFloat64(),
			r.Total.InexactFloat64(),
		}
		start, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(spendingSheet, start, &values); err != nil {
			return nil, fmt.Errorf("export: fila %d: %w", rowIdx, err)
		}
		rowIdx++
	}

	// Totales con fórmulas para que la hoja siga siendo editable.
	totalRow := rowIdx
	_ = f.SetCellValue(spendingSheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
	for _, c := range []string{"F", "G", "H"} {
		cell := fmt.Sprintf("%s%d", c, totalRow)
		if len(rows) == 0 {
			_ = f.SetCellValue(spendingSheet, cell, 0)
			continue
		}
		formula := fmt.Sprintf("SUM(%s4:%s%d)", c, c, totalRow-1)
		if err := f.SetCellFormula(spendingSheet, cell, formula); err != nil {
			return nil, err
		}
	}
	_ = f.SetCellStyle(spendingSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), bold)
	_ = f.SetCellStyle(spendingSheet, "F4", fmt.Sprintf("H%d", totalRow), money)
	_ = f.SetColWidth(spendingSheet, "A", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
