package ports

import (
	"context"

	"github.com/jhoicas/restock-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn retorna error se hace rollback: estado, movimientos de stock, approved_at y
// bitácora quedan todos o ninguno.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		stockRepo repository.StockRepository,
		logRepo repository.StatusLogRepository,
	) error) error
}
