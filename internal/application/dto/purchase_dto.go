package dto

import (
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest body para POST /api/invoices/generate.
type GenerateInvoiceRequest struct {
	Date           string         `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VendorIDs      []string       `json:"vendor_ids,omitempty" validate:"omitempty,dive,required"`
	StockOverrides map[string]int `json:"stock_overrides,omitempty"`
	UseAI          bool           `json:"use_ai"`
}

// SetQuantityRequest body para PUT /api/sessions/:id/vendors/:vendorID/items/:productID.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// AddItemRequest body para POST /api/sessions/:id/vendors/:vendorID/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ChangeStatusRequest body para POST /api/sessions/:id/vendors/:vendorID/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Reviewed Approved Modified"`
}

// LineItemResponse línea de una orden.
type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Bundles   []entity.Bundle `json:"bundles"`
	Cost      decimal.Decimal `json:"cost"`
	Savings   decimal.Decimal `json:"savings"`
}

// VendorOrderResponse orden de un proveedor dentro de la factura.
type VendorOrderResponse struct {
	VendorID              string             `json:"vendor_id"`
	VendorName            string             `json:"vendor_name"`
	InvoiceID             string             `json:"invoice_id,omitempty"`
	Status                string             `json:"status"`
	ModifiedBy            string             `json:"modified_by,omitempty"`
	Version               int                `json:"version"`
	OrderDate             string             `json:"order_date,omitempty"`
	ApprovedAt            *time.Time         `json:"approved_at,omitempty"`
	Items                 []LineItemResponse `json:"items"`
	Subtotal              decimal.Decimal    `json:"subtotal"`
	BundleSavings         decimal.Decimal    `json:"bundle_savings"`
	ShippingCost          decimal.Decimal    `json:"shipping_cost"`
	FlatShippingCost      decimal.Decimal    `json:"flat_shipping_cost"`
	FreeShippingThreshold decimal.Decimal    `json:"free_shipping_threshold"`
	Total                 decimal.Decimal    `json:"total"`
}

// InvoiceResponse factura de compra completa.
type InvoiceResponse struct {
	VendorOrders         []VendorOrderResponse `json:"vendor_orders"`
	TotalCost            decimal.Decimal       `json:"total_cost"`
	TotalBundleSavings   decimal.Decimal       `json:"total_bundle_savings"`
	TotalShippingSavings decimal.Decimal       `json:"total_shipping_savings"`
	TotalSavings         decimal.Decimal       `json:"total_savings"`
	Warnings             []string              `json:"warnings"`
	GeneratedAt          time.Time             `json:"generated_at"`
}

// SessionResponse sesión de edición con su factura.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	InvoiceID string          `json:"invoice_id,omitempty"` // solo en respuestas de guardado
	Invoice   InvoiceResponse `json:"invoice"`
}

// StatusLogEntryResponse entrada de la bitácora de estados.
type StatusLogEntryResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// ToInvoiceResponse mapea la factura a su forma JSON; las órdenes salen ordenadas por vendor_id.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	out := InvoiceResponse{
		VendorOrders:         make([]VendorOrderResponse, 0, len(inv.VendorOrders)),
		TotalCost:            inv.TotalCost,
		TotalBundleSavings:   inv.TotalBundleSavings,
		TotalShippingSavings: inv.TotalShippingSavings,
		TotalSavings:         inv.TotalSavings,
		Warnings:             inv.Warnings,
		GeneratedAt:          inv.GeneratedAt,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	for _, id := range inv.VendorIDs() {
		out.VendorOrders = append(out.VendorOrders, ToVendorOrderResponse(inv.VendorOrders[id]))
	}
	return out
}

// ToVendorOrderResponse mapea una orden por proveedor.
func ToVendorOrderResponse(o *entity.VendorOrder) VendorOrderResponse {
	r := VendorOrderResponse{
		VendorID:              o.VendorID,
		VendorName:            o.VendorName,
		InvoiceID:             o.InvoiceID,
		Status:                string(o.Status),
		ModifiedBy:            o.ModifiedBy,
		Version:               o.Version,
		ApprovedAt:            o.ApprovedAt,
		Items:                 make([]LineItemResponse, 0, len(o.Items)),
		Subtotal:              o.Subtotal,
		BundleSavings:         o.BundleSavings,
		ShippingCost:          o.ShippingCost,
		FlatShippingCost:      o.FlatShippingCost,
		FreeShippingThreshold: o.FreeShippingThreshold,
		Total:                 o.Total(),
	}
	if !o.OrderDate.IsZero() {
		r.OrderDate = o.OrderDate.Format(time.DateOnly)
	}
	for _, it := range o.Items {
		bundles := it.Bundles
		if bundles == nil {
			bundles = []entity.Bundle{}
		}
		r.Items = append(r.Items, LineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Bundles:   bundles,
			Cost:      it.Cost,
			Savings:   it.Savings,
		})
	}
	return r
}

// ToStatusLogResponse mapea la bitácora.
func ToStatusLogResponse(entries []entity.StatusLogEntry) []StatusLogEntryResponse {
	out := make([]StatusLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, StatusLogEntryResponse{
			ID:        e.ID,
			InvoiceID: e.InvoiceID,
			OldStatus: string(e.OldStatus),
			NewStatus: string(e.NewStatus),
			ChangedBy: e.ChangedBy,
			Timestamp: e.Timestamp,
		})
	}
	return out
}
