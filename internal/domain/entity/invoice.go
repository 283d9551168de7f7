package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de revisión de una orden por proveedor.
// El flujo no impone orden: cualquier transición es válida pero siempre queda registrada.
type InvoiceStatus string

const (
	StatusPending  InvoiceStatus = "Pending"
	StatusReviewed InvoiceStatus = "Reviewed"
	StatusApproved InvoiceStatus = "Approved"
	StatusModified InvoiceStatus = "Modified"
)

// Valid indica si el estado pertenece al conjunto conocido.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusModified:
		return true
	}
	return false
}

// LineItem línea de una orden. Cost y Savings siempre se recalculan desde Quantity y Bundles.
type LineItem struct {
	ProductID string
	Name      string
	Unit      string
	Quantity  int
	UnitPrice decimal.Decimal
	Bundles   []Bundle
	Cost      decimal.Decimal
	Savings   decimal.Decimal
}

// VendorOrder subconjunto de la factura que corresponde a un proveedor.
// InvoiceID queda vacío hasta el primer guardado; Version es el token de concurrencia optimista.
type VendorOrder struct {
	VendorID              string
	VendorName            string
	Items                 []LineItem
	FreeShippingThreshold decimal.Decimal
	FlatShippingCost      decimal.Decimal
	Subtotal              decimal.Decimal
	BundleSavings         decimal.Decimal
	ShippingCost          decimal.Decimal
	Status                InvoiceStatus
	ModifiedBy            string
	InvoiceID             string
	Version               int
	OrderDate             time.Time
	ApprovedAt            *time.Time // se fija una sola vez, al realizar la primera aprobación
}

// ShippingWaived monto de envío exonerado (FlatShippingCost si se alcanzó el umbral).
func (o *VendorOrder) ShippingWaived() decimal.Decimal {
	if o.ShippingCost.IsZero() && o.FlatShippingCost.GreaterThan(decimal.Zero) {
		return o.FlatShippingCost
	}
	return decimal.Zero
}

// Total subtotal más envío.
func (o *VendorOrder) Total() decimal.Decimal {
	return o.Subtotal.Add(o.ShippingCost)
}

// ItemIndex devuelve la posición del producto en la orden o -1.
func (o *VendorOrder) ItemIndex(productID string) int {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone copia profunda de la orden (líneas, bundles y ApprovedAt).
func (o *VendorOrder) Clone() *VendorOrder {
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	for i, it := range o.Items {
		it.Bundles = append([]Bundle(nil), it.Bundles...)
		c.Items[i] = it
	}
	if o.ApprovedAt != nil {
		t := *o.ApprovedAt
		c.ApprovedAt = &t
	}
	return &c
}

// Invoice factura de compra del día: una orden por proveedor más los totales globales.
type Invoice struct {
	VendorOrders         map[string]*VendorOrder
	TotalCost            decimal.Decimal
	TotalBundleSavings   decimal.Decimal
	TotalShippingSavings decimal.Decimal
	TotalSavings         decimal.Decimal
	Warnings             []string
	GeneratedAt          time.Time
}

// VendorIDs devuelve los IDs de proveedor ordenados (iteración determinista).
func (inv *Invoice) VendorIDs() []string {
	ids := make([]string, 0, len(inv.VendorOrders))
	for id := range inv.VendorOrders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone copia profunda de la factura.
func (inv *Invoice) Clone() *Invoice {
	c := *inv
	c.VendorOrders = make(map[string]*VendorOrder, len(inv.VendorOrders))
	for id, o := range inv.VendorOrders {
		c.VendorOrders[id] = o.Clone()
	}
	c.Warnings = append([]string(nil), inv.Warnings...)
	return &c
}
