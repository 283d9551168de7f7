package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia de órdenes por proveedor.
// Cada VendorOrder guardada es una factura con su propio invoice_id.
type InvoiceRepository interface {
	// PersistInvoice inserta la orden con version 1 y devuelve el nuevo ID.
	PersistInvoice(ctx context.Context, order *entity.VendorOrder) (string, error)
	// UpdateInvoice reemplaza cabecera y líneas si order.Version coincide con la guardada;
	// si no, domain.ErrConflict. Incrementa la versión.
	UpdateInvoice(ctx context.Context, id string, order *entity.VendorOrder) error
	GetInvoice(ctx context.Context, id string) (*entity.VendorOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, modifiedBy string) error
	// MarkApproved fija approved_at solo si estaba en NULL. Devuelve false si la orden ya
	// había sido aprobada antes (la aprobación se realiza una sola vez).
	MarkApproved(ctx context.Context, id string, at time.Time) (bool, error)
}
