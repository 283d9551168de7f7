package repository

import (
	"context"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// StatusLogRepository bitácora append-only de cambios de estado.
type StatusLogRepository interface {
	AppendStatusLog(ctx context.Context, entry *entity.StatusLogEntry) error
	// GetStatusLog devuelve las entradas de la factura en orden cronológico.
	GetStatusLog(ctx context.Context, invoiceID string) ([]entity.StatusLogEntry, error)
}
