package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

var _ repository.StatusLogRepository = (*StatusLogRepo)(nil)

// StatusLogRepo bitácora de estados sobre PostgreSQL (usable con pool o tx). Solo inserta.
type StatusLogRepo struct {
	q Querier
}

// NewStatusLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusLogRepository(q Querier) *StatusLogRepo {
	return &StatusLogRepo{q: q}
}

// AppendStatusLog inserta la entrada. La llave foránea exige que la factura ya exista.
func (r *StatusLogRepo) AppendStatusLog(ctx context.Context, e *entity.StatusLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_status_log (id, invoice_id, old_status, new_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.InvoiceID, string(e.OldStatus), string(e.NewStatus), e.ChangedBy, e.Timestamp,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, e.InvoiceID)
		}
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}

// GetStatusLog devuelve las entradas de la factura en orden cronológico.
func (r *StatusLogRepo) GetStatusLog(ctx context.Context, invoiceID string) ([]entity.StatusLogEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, old_status, new_status, changed_by, changed_at
		FROM invoice_status_log WHERE invoice_id = $1
		ORDER BY changed_at, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list status log: %w", err)
	}
	defer rows.Close()

	list := make([]entity.StatusLogEntry, 0)
	for rows.Next() {
		var e entity.StatusLogEntry
		var oldStatus, newStatus string
		if err := rows.Scan(&e.ID, &e.InvoiceID, &oldStatus, &newStatus, &e.ChangedBy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status log: %w", err)
		}
		e.OldStatus = entity.InvoiceStatus(oldStatus)
		e.NewStatus = entity.InvoiceStatus(newStatus)
		list = append(list, e)
	}
	return list, rows.Err()
}
