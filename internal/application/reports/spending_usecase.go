package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Breakdown desglose del gasto aprobado de un día.
type Breakdown struct {
	Date         time.Time
	Rows         []entity.SpendingSummary
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// SpendingUseCase reportes de gasto en compras aprobadas.
type SpendingUseCase struct {
	spendingRepo repository.SpendingRepository
	pdf          ports.InvoicePDFGenerator
	exporter     ports.SpendingExporter
}

// NewSpendingUseCase construye el caso de uso.
func NewSpendingUseCase(
	spendingRepo repository.SpendingRepository,
	pdf ports.InvoicePDFGenerator,
	exporter ports.SpendingExporter,
) *SpendingUseCase {
	return &SpendingUseCase{
		spendingRepo: spendingRepo,
		pdf:          pdf,
		exporter:     exporter,
	}
}

// DailySpending devuelve el gasto aprobado por día; con date != nil, solo ese día.
func (uc *SpendingUseCase) DailySpending(ctx context.Context, date *time.Time) ([]entity.DailySpending, error) {
	if date != nil {
		d := dayOf(*date)
		date = &d
	}
	rows, err := uc.spendingRepo.GetDailySpending(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("gasto diario: %w", err)
	}
	if rows == nil {
		rows = []entity.DailySpending{}
	}
	return rows, nil
}

// Breakdown devuelve las órdenes aprobadas del día con sus totales.
func (uc *SpendingUseCase) Breakdown(ctx context.Context, date time.Time) (*Breakdown, error) {
	date = dayOf(date)
	rows, err := uc.spendingRepo.GetSpendingBreakdown(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("desglose de gasto: %w", err)
	}
	b := &Breakdown{Date: date, Rows: rows}
	if b.Rows == nil {
		b.Rows = []entity.SpendingSummary{}
	}
	for _, r := range b.Rows {
		b.Subtotal = b.Subtotal.Add(r.Subtotal)
		b.ShippingCost = b.ShippingCost.Add(r.ShippingCost)
		b.Total = b.Total.Add(r.Total)
	}
	return b, nil
}

// ExportBreakdownXLSX devuelve (xlsxBytes, filename) del desglose del día.
func (uc *SpendingUseCase) ExportBreakdownXLSX(ctx context.Context, date time.Time) ([]byte, string, error) {
	b, err := uc.Breakdown(ctx, date)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportBreakdownXLSX(ctx, b.Date, b.Rows)
	if err != nil {
		return nil, "", fmt.Errorf("exportar xlsx: %w", err)
	}
	return data, fmt.Sprintf("gasto_%s.xlsx", b.Date.Format("20060102")), nil
}

// BreakdownPDF devuelve (pdfBytes, filename) del desglose del día.
func (uc *SpendingUseCase) BreakdownPDF(ctx context.Context, date time.Time) ([]byte, string, error) {
	b, err := uc.Breakdown(ctx, date)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateSpendingPDF(ctx, b.Date, b.Rows)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return data, fmt.Sprintf("gasto_%s.pdf", b.Date.Format("20060102")), nil
}

func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
