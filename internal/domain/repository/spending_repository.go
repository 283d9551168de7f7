package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// SpendingRepository consultas de gasto sobre facturas aprobadas (approved_at).
type SpendingRepository interface {
	// GetDailySpending devuelve el total por día; con date != nil solo ese día.
	GetDailySpending(ctx context.Context, date *time.Time) ([]entity.DailySpending, error)
	GetSpendingBreakdown(ctx context.Context, date time.Time) ([]entity.SpendingSummary, error)
}
