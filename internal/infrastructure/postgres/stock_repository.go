package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetStockSnapshot devuelve los snapshots de la fecha.
func (r *StockRepo) GetStockSnapshot(ctx context.Context, date time.Time) ([]entity.StockSnapshot, error) {
	query := `
		SELECT product_id, date, remaining_stock, daily_in, daily_out
		FROM stock_snapshots WHERE date = $1
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	list := make([]entity.StockSnapshot, 0)
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.ProductID, &s.Date, &s.RemainingStock, &s.DailyIn, &s.DailyOut); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpsertSnapshot inserta o reemplaza el snapshot del producto en su fecha.
func (r *StockRepo) UpsertSnapshot(ctx context.Context, snap entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (product_id, date, remaining_stock, daily_in, daily_out)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, date)
		DO UPDATE SET remaining_stock = EXCLUDED.remaining_stock,
		              daily_in        = EXCLUDED.daily_in,
		              daily_out       = EXCLUDED.daily_out`
	_, err := r.q.Exec(ctx, query, snap.ProductID, dateOnly(snap.Date), snap.RemainingStock, snap.DailyIn, snap.DailyOut)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, snap.ProductID)
		}
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// RecordStockMovement guarda el movimiento y aplica el delta al snapshot de su día en una
// sola sentencia. Si el día aún no tiene snapshot parte del último stock conocido.
func (r *StockRepo) RecordStockMovement(ctx context.Context, mov *entity.StockMovement) error {
	if mov.CreatedAt.IsZero() {
		mov.CreatedAt = time.Now()
	}
	var in, out int
	switch mov.Type {
	case entity.MovementTypeIN:
		in = mov.Quantity
	case entity.MovementTypeOUT:
		out = -mov.Quantity
	}

	query := `
		WITH mov AS (
			INSERT INTO stock_movements (id, product_id, type, quantity, description, reference, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING product_id
		)
		INSERT INTO stock_snapshots (product_id, date, remaining_stock, daily_in, daily_out)
		SELECT mov.product_id, $9::date,
		       COALESCE((SELECT s.remaining_stock FROM stock_snapshots s
		                 WHERE s.product_id = mov.product_id AND s.date < $9::date
		                 ORDER BY s.date DESC LIMIT 1), 0) + $4,
		       $10, $11
		FROM mov
		ON CONFLICT (product_id, date)
		DO UPDATE SET remaining_stock = stock_snapshots.remaining_stock + $4,
		              daily_in        = stock_snapshots.daily_in + EXCLUDED.daily_in,
		              daily_out       = stock_snapshots.daily_out + EXCLUDED.daily_out`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.ProductID, mov.Type, mov.Quantity, mov.Description, mov.Reference, mov.CreatedBy, mov.CreatedAt,
		dateOnly(mov.CreatedAt), in, out,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ProductID)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetConsumptionHistory devuelve las salidas diarias del producto desde since (inclusive).
func (r *StockRepo) GetConsumptionHistory(ctx context.Context, productID string, since time.Time) ([]entity.DailyConsumption, error) {
	query := `
		SELECT date, daily_out
		FROM stock_snapshots
		WHERE product_id = $1 AND date >= $2
		ORDER BY date`
	rows, err := r.q.Query(ctx, query, productID, dateOnly(since))
	if err != nil {
		return nil, fmt.Errorf("consumption history: %w", err)
	}
	defer rows.Close()

	list := make([]entity.DailyConsumption, 0)
	for rows.Next() {
		var c entity.DailyConsumption
		if err := rows.Scan(&c.Date, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// RollOver crea el snapshot de to con el stock restante de from (entradas/salidas en 0).
// Los productos que ya tienen snapshot en to no se tocan. Devuelve cuántos se crearon.
func (r *StockRepo) RollOver(ctx context.Context, from, to time.Time) (int, error) {
	query := `
		INSERT INTO stock_snapshots (product_id, date, remaining_stock, daily_in, daily_out)
		SELECT product_id, $2, remaining_stock, 0, 0
		FROM stock_snapshots WHERE date = $1
		ON CONFLICT (product_id, date) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, dateOnly(from), dateOnly(to))
	if err != nil {
		return 0, fmt.Errorf("rollover snapshots: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
