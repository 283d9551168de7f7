package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

var _ repository.SpendingRepository = (*SpendingRepo)(nil)

// SpendingRepo consultas de gasto sobre órdenes aprobadas. El día del gasto es el de
// approved_at: una orden cuenta desde su primera aprobación aunque luego cambie de estado.
type SpendingRepo struct {
	q Querier
}

// NewSpendingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSpendingRepository(q Querier) *SpendingRepo {
	return &SpendingRepo{q: q}
}

// GetDailySpending total aprobado por día; con date != nil solo ese día.
func (r *SpendingRepo) GetDailySpending(ctx context.Context, date *time.Time) ([]entity.DailySpending, error) {
	query := `
		SELECT approved_at::date AS day, SUM(total)
		FROM purchase_invoices
		WHERE approved_at IS NOT NULL
		  AND ($1::date IS NULL OR approved_at::date = $1::date)
		GROUP BY day
		ORDER BY day`
	var arg *time.Time
	if date != nil {
		d := dateOnly(*date)
		arg = &d
	}
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("daily spending: %w", err)
	}
	defer rows.Close()

	list := make([]entity.DailySpending, 0)
	for rows.Next() {
		var s entity.DailySpending
		if err := rows.Scan(&s.Date, &s.Total); err != nil {
			return nil, fmt.Errorf("scan daily spending: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetSpendingBreakdown órdenes aprobadas en la fecha con su conteo de líneas.
func (r *SpendingRepo) GetSpendingBreakdown(ctx context.Context, date time.Time) ([]entity.SpendingSummary, error) {
	query := `
		SELECT i.id, i.vendor_id, i.vendor_name, i.order_date, i.status,
		       (SELECT COUNT(*) FROM purchase_invoice_items it WHERE it.invoice_id = i.id),
		       i.subtotal, i.shipping_cost, i.total
		FROM purchase_invoices i
		WHERE i.approved_at IS NOT NULL AND i.approved_at::date = $1
		ORDER BY i.vendor_name, i.id`
	rows, err := r.q.Query(ctx, query, dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("spending breakdown: %w", err)
	}
	defer rows.Close()

	list := make([]entity.SpendingSummary, 0)
	for rows.Next() {
		var s entity.SpendingSummary
		var status string
		if err := rows.Scan(&s.InvoiceID, &s.VendorID, &s.VendorName, &s.OrderDate, &status,
			&s.ItemCount, &s.Subtotal, &s.ShippingCost, &s.Total); err != nil {
			return nil, fmt.Errorf("scan spending row: %w", err)
		}
		s.Status = entity.InvoiceStatus(status)
		list = append(list, s)
	}
	return list, rows.Err()
}
