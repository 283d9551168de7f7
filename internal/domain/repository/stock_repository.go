package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// StockRepository define el puerto para snapshots diarios y movimientos de stock.
type StockRepository interface {
	// GetStockSnapshot devuelve los snapshots de la fecha (un registro por producto).
	GetStockSnapshot(ctx context.Context, date time.Time) ([]entity.StockSnapshot, error)
	UpsertSnapshot(ctx context.Context, snap entity.StockSnapshot) error
	// RecordStockMovement aplica el delta al snapshot del día y guarda el movimiento.
	// Devuelve domain.ErrNotFound si el producto no existe.
	RecordStockMovement(ctx context.Context, mov *entity.StockMovement) error
	GetConsumptionHistory(ctx context.Context, productID string, since time.Time) ([]entity.DailyConsumption, error)
	// RollOver copia el stock restante de from como punto de partida de to (sin pisar snapshots existentes).
	RollOver(ctx context.Context, from, to time.Time) (int, error)
}
