package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Cabecera y líneas se escriben en una transacción propia (savepoint si ya hay una).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// PersistInvoice inserta la orden (versión 1) con sus líneas y devuelve el nuevo ID.
func (r *InvoiceRepo) PersistInvoice(ctx context.Context, order *entity.VendorOrder) (string, error) {
	id := uuid.New().String()
	orderDate := order.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	tx, err := r.q.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO purchase_invoices (id, vendor_id, vendor_name, order_date, status, modified_by,
			subtotal, bundle_savings, shipping_cost, flat_shipping_cost, free_shipping_threshold, total,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, now(), now())`
	_, err = tx.Exec(ctx, query,
		id, order.VendorID, order.VendorName, dateOnly(orderDate), string(order.Status), order.ModifiedBy,
		order.Subtotal, order.BundleSavings, order.ShippingCost, order.FlatShippingCost, order.FreeShippingThreshold,
		order.Total(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, order.VendorID)
		}
		return "", fmt.Errorf("insert purchase invoice: %w", err)
	}
	if err := insertItems(ctx, tx, id, order.Items); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// UpdateInvoice reemplaza cabecera y líneas si la versión coincide e incrementa la versión.
// El estado no se toca aquí: solo cambia por UpdateStatus.
func (r *InvoiceRepo) UpdateInvoice(ctx context.Context, id string, order *entity.VendorOrder) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE purchase_invoices
		SET modified_by    = $3,
		    subtotal       = $4,
		    bundle_savings = $5,
		    shipping_cost  = $6,
		    total          = $7,
		    version        = version + 1,
		    updated_at     = now()
		WHERE id = $1 AND version = $2`
	tag, err := tx.Exec(ctx, query, id, order.Version,
		order.ModifiedBy, order.Subtotal, order.BundleSavings, order.ShippingCost, order.Total(),
	)
	if err != nil {
		return fmt.Errorf("update purchase invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current int
		err := tx.QueryRow(ctx, `SELECT version FROM purchase_invoices WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("check version: %w", err)
		}
		return fmt.Errorf("%w: factura %s en versión %d, se intentó guardar sobre %d",
			domain.ErrConflict, id, current, order.Version)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if err := insertItems(ctx, tx, id, order.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetInvoice obtiene la orden con sus líneas (nil si no existe).
func (r *InvoiceRepo) GetInvoice(ctx context.Context, id string) (*entity.VendorOrder, error) {
	query := `
		SELECT id, vendor_id, vendor_name, order_date, status, modified_by,
		       subtotal, bundle_savings, shipping_cost, flat_shipping_cost, free_shipping_threshold,
		       version, approved_at
		FROM purchase_invoices WHERE id = $1`
	var o entity.VendorOrder
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.InvoiceID, &o.VendorID, &o.VendorName, &o.OrderDate, &status, &o.ModifiedBy,
		&o.Subtotal, &o.BundleSavings, &o.ShippingCost, &o.FlatShippingCost, &o.FreeShippingThreshold,
		&o.Version, &o.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	o.Status = entity.InvoiceStatus(status)

	rows, err := r.q.Query(ctx, `
		SELECT product_id, name, unit, quantity, unit_price, bundles, cost, savings
		FROM purchase_invoice_items WHERE invoice_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	o.Items = make([]entity.LineItem, 0)
	for rows.Next() {
		var it entity.LineItem
		var bundles []byte
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Unit, &it.Quantity, &it.UnitPrice, &bundles, &it.Cost, &it.Savings); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.Bundles, err = decodeBundles(bundles); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, modifiedBy string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_invoices SET status = $2, modified_by = $3, updated_at = now()
		WHERE id = $1`, id, string(status), modifiedBy)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return nil
}

// MarkApproved fija approved_at solo si estaba en NULL. El UPDATE bloquea la fila, así que
// dos aprobaciones concurrentes no pueden realizarse ambas.
func (r *InvoiceRepo) MarkApproved(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_invoices SET approved_at = $2
		WHERE id = $1 AND approved_at IS NULL`, id, at)
	if err != nil {
		return false, fmt.Errorf("mark approved: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM purchase_invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return false, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, it := range items {
		bundles, err := encodeBundles(it.Bundles)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO purchase_invoice_items (invoice_id, position, product_id, name, unit, quantity, unit_price, bundles, cost, savings)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			invoiceID, i, it.ProductID, it.Name, it.Unit, it.Quantity, it.UnitPrice, bundles, it.Cost, it.Savings,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}
	return nil
}
