package purchasing

import (
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// Engine mantiene una factura editable como estado de trabajo. Toda mutación pasa por sus
// métodos y termina en un recompute completo, de modo que subtotales, ahorros y envío
// siempre coinciden con las líneas actuales.
//
// Un Engine pertenece a una sola sesión: no es seguro para uso concurrente.
type Engine struct {
	invoice *entity.Invoice
	dirty   map[string]bool // órdenes editadas desde su último guardado
}

// NewEngine crea el motor a partir de una factura generada o cargada (se copia).
func NewEngine(seed *entity.Invoice) *Engine {
	inv := &entity.Invoice{VendorOrders: map[string]*entity.VendorOrder{}}
	if seed != nil {
		inv = seed.Clone()
		if inv.VendorOrders == nil {
			inv.VendorOrders = map[string]*entity.VendorOrder{}
		}
	}
	RecomputeInvoice(inv)
	return &Engine{invoice: inv, dirty: make(map[string]bool)}
}

// Invoice devuelve una copia del estado actual.
func (e *Engine) Invoice() *entity.Invoice {
	return e.invoice.Clone()
}

// VendorOrder devuelve una copia de la orden del proveedor.
func (e *Engine) VendorOrder(vendorID string) (*entity.VendorOrder, error) {
	o, err := e.order(vendorID)
	if err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

// SetQuantity fija la cantidad de una línea y recalcula. Cantidades negativas se rechazan
// con ErrInvalidInput sin tocar el estado. Repetir la misma cantidad no produce deriva.
// Las órdenes ya aprobadas no admiten ediciones de líneas (ErrConflict), igual que
// RemoveItem y AddItem.
func (e *Engine) SetQuantity(vendorID, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: cantidad %d negativa", domain.ErrInvalidInput, quantity)
	}
	o, err := e.editable(vendorID)
	if err != nil {
		return err
	}
	idx := o.ItemIndex(productID)
	if idx < 0 {
		return fmt.Errorf("%w: producto %s no está en la orden de %s", domain.ErrNotFound, productID, vendorID)
	}
	if o.Items[idx].Quantity != quantity {
		o.Items[idx].Quantity = quantity
		e.dirty[vendorID] = true
	}
	RecomputeInvoice(e.invoice)
	return nil
}

// RemoveItem elimina la línea y recalcula. Si era la última, la orden queda con subtotal 0
// y el envío vuelve a aplicarse si el umbral es mayor que cero.
func (e *Engine) RemoveItem(vendorID, productID string) error {
	o, err := e.editable(vendorID)
	if err != nil {
		return err
	}
	idx := o.ItemIndex(productID)
	if idx < 0 {
		return fmt.Errorf("%w: producto %s no está en la orden de %s", domain.ErrNotFound, productID, vendorID)
	}
	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
	e.dirty[vendorID] = true
	RecomputeInvoice(e.invoice)
	return nil
}

// AddItem agrega el producto con cantidad 1. Si ya existe devuelve ErrDuplicateItem
// y la orden no cambia.
func (e *Engine) AddItem(vendorID string, product entity.Product) error {
	if product.ID == "" {
		return fmt.Errorf("%w: producto sin ID", domain.ErrInvalidInput)
	}
	o, err := e.editable(vendorID)
	if err != nil {
		return err
	}
	if o.ItemIndex(product.ID) >= 0 {
		return fmt.Errorf("%w (%s)", domain.ErrDuplicateItem, product.ID)
	}
	o.Items = append(o.Items, NewLineItem(product, 1))
	e.dirty[vendorID] = true
	RecomputeInvoice(e.invoice)
	return nil
}

// ── Hooks del flujo de estados ────────────────────────────────────────────────

// MarkPersisted registra el invoice_id y la versión tras un guardado exitoso.
func (e *Engine) MarkPersisted(vendorID, invoiceID string, version int) error {
	o, err := e.order(vendorID)
	if err != nil {
		return err
	}
	o.InvoiceID = invoiceID
	o.Version = version
	delete(e.dirty, vendorID)
	return nil
}

// SetStatus actualiza el estado de trabajo de la orden.
func (e *Engine) SetStatus(vendorID string, status entity.InvoiceStatus, modifiedBy string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	o, err := e.order(vendorID)
	if err != nil {
		return err
	}
	o.Status = status
	o.ModifiedBy = modifiedBy
	return nil
}

// MarkApproved fija ApprovedAt si aún no estaba fijado.
func (e *Engine) MarkApproved(vendorID string, at time.Time) error {
	o, err := e.order(vendorID)
	if err != nil {
		return err
	}
	if o.ApprovedAt == nil {
		o.ApprovedAt = &at
	}
	return nil
}

// IsDirty indica si la orden tiene ediciones sin guardar.
func (e *Engine) IsDirty(vendorID string) bool {
	return e.dirty[vendorID]
}

func (e *Engine) order(vendorID string) (*entity.VendorOrder, error) {
	o, ok := e.invoice.VendorOrders[vendorID]
	if !ok {
		return nil, fmt.Errorf("%w: proveedor %s no está en la factura", domain.ErrNotFound, vendorID)
	}
	return o, nil
}

// editable devuelve la orden solo si aún no se realizó su aprobación: sus entradas de
// stock ya se registraron y el total debe seguir coincidiendo con ellas.
func (e *Engine) editable(vendorID string) (*entity.VendorOrder, error) {
	o, err := e.order(vendorID)
	if err != nil {
		return nil, err
	}
	if o.ApprovedAt != nil {
		return nil, fmt.Errorf("%w: la orden de %s ya fue aprobada", domain.ErrConflict, vendorID)
	}
	return o, nil
}
