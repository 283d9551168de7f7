package http_test

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restock-api/internal/application/catalog"
	"github.com/jhoicas/restock-api/internal/application/inventory"
	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/application/purchasing"
	"github.com/jhoicas/restock-api/internal/application/reports"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	apphttp "github.com/jhoicas/restock-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para levantar el router completo
// ──────────────────────────────────────────────────────────────────────────────

type memStock struct {
	snapshots map[string]entity.StockSnapshot
	movements []entity.StockMovement
}

func (r *memStock) GetStockSnapshot(_ context.Context, date time.Time) ([]entity.StockSnapshot, error) {
	out := make([]entity.StockSnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		s.Date = date
		out = append(out, s)
	}
	return out, nil
}

func (r *memStock) UpsertSnapshot(_ context.Context, s entity.StockSnapshot) error {
	r.snapshots[s.ProductID] = s
	return nil
}

func (r *memStock) RecordStockMovement(_ context.Context, m *entity.StockMovement) error {
	s := r.snapshots[m.ProductID]
	s.ProductID = m.ProductID
	s.RemainingStock += m.Quantity
	r.snapshots[m.ProductID] = s
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memStock) GetConsumptionHistory(context.Context, string, time.Time) ([]entity.DailyConsumption, error) {
	return nil, nil
}

func (r *memStock) RollOver(context.Context, time.Time, time.Time) (int, error) { return 0, nil }

type memCatalog struct {
	vendors  []entity.Vendor
	products []entity.Product
}

func (c *memCatalog) ListVendors(context.Context) ([]entity.Vendor, error) { return c.vendors, nil }

func (c *memCatalog) ListVendorProducts(_ context.Context, vendorID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range c.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *memCatalog) ListProducts(context.Context) ([]entity.Product, error) { return c.products, nil }

func (c *memCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) GetVendor(_ context.Context, id string) (*entity.Vendor, error) {
	for _, v := range c.vendors {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, nil
}

type memInvoices struct {
	seq      int
	orders   map[string]*entity.VendorOrder
	approved map[string]time.Time
}

func (r *memInvoices) PersistInvoice(_ context.Context, o *entity.VendorOrder) (string, error) {
	r.seq++
	id := fmt.Sprintf("inv-%d", r.seq)
	c := o.Clone()
	c.InvoiceID, c.Version = id, 1
	r.orders[id] = c
	return id, nil
}

func (r *memInvoices) UpdateInvoice(_ context.Context, id string, o *entity.VendorOrder) error {
	cur, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != o.Version {
		return domain.ErrConflict
	}
	c := o.Clone()
	c.Version, c.Status = cur.Version+1, cur.Status
	r.orders[id] = c
	return nil
}

func (r *memInvoices) GetInvoice(_ context.Context, id string) (*entity.VendorOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *memInvoices) UpdateStatus(_ context.Context, id string, s entity.InvoiceStatus, by string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status, o.ModifiedBy = s, by
	return nil
}

func (r *memInvoices) MarkApproved(_ context.Context, id string, at time.Time) (bool, error) {
	if _, ok := r.approved[id]; ok {
		return false, nil
	}
	r.approved[id] = at
	return true, nil
}

type memLogs struct{ entries []entity.StatusLogEntry }

func (r *memLogs) AppendStatusLog(_ context.Context, e *entity.StatusLogEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memLogs) GetStatusLog(_ context.Context, invoiceID string) ([]entity.StatusLogEntry, error) {
	out := []entity.StatusLogEntry{}
	for _, e := range r.entries {
		if e.InvoiceID == invoiceID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memTx struct {
	invoices *memInvoices
	stock    *memStock
	logs     *memLogs
}

func (t *memTx) RunInTx(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.StockRepository,
	repository.StatusLogRepository,
) error) error {
	return fn(t.invoices, t.stock, t.logs)
}

type memSpending struct {
	rows []entity.SpendingSummary
	err  error
}

func (r *memSpending) GetDailySpending(context.Context, *time.Time) ([]entity.DailySpending, error) {
	if r.err != nil {
		return nil, r.err
	}
	total := decimal.Zero
	for _, row := range r.rows {
		total = total.Add(row.Total)
	}
	return []entity.DailySpending{{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Total: total}}, nil
}

func (r *memSpending) GetSpendingBreakdown(context.Context, time.Time) ([]entity.SpendingSummary, error) {
	return r.rows, nil
}

type stubDocuments struct{}

func (stubDocuments) GenerateVendorOrderPDF(context.Context, *entity.VendorOrder, ports.Issuer) ([]byte, error) {
	return []byte("%PDF-1.3 orden"), nil
}

func (stubDocuments) GenerateSpendingPDF(context.Context, time.Time, []entity.SpendingSummary) ([]byte, error) {
	return []byte("%PDF-1.3 gasto"), nil
}

func (stubDocuments) ExportBreakdownXLSX(context.Context, time.Time, []entity.SpendingSummary) ([]byte, error) {
	return []byte("PK\x03\x04"), nil
}

// testEnv agrupa el app y los fakes para inspeccionarlos desde los tests.
type testEnv struct {
	app      *fiber.App
	stock    *memStock
	invoices *memInvoices
	logs     *memLogs
	spending *memSpending
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEnv() *testEnv {
	stock := &memStock{snapshots: map[string]entity.StockSnapshot{
		"chicken": {ProductID: "chicken", RemainingStock: 4},
	}}
	cat := &memCatalog{
		vendors: []entity.Vendor{
			{ID: "meat", Name: "Carnes del Norte", ShippingCost: dec("15"), FreeShippingThreshold: dec("150")},
		},
		products: []entity.Product{
			{ID: "chicken", VendorID: "meat", Name: "Pollo", Unit: "kg", Price: decimal.NewNullDecimal(dec("10")),
				Bundles: []entity.Bundle{{Quantity: 12, Price: dec("100")}}, MinStock: 10, MaxStock: 30, LastYearPrediction: 20},
			{ID: "beef", VendorID: "meat", Name: "Res", Unit: "kg", Price: decimal.NewNullDecimal(dec("20")),
				MinStock: 0, MaxStock: 10},
		},
	}
	invoices := &memInvoices{orders: map[string]*entity.VendorOrder{}, approved: map[string]time.Time{}}
	logs := &memLogs{}
	spending := &memSpending{rows: []entity.SpendingSummary{
		{InvoiceID: "inv-9", VendorID: "meat", VendorName: "Carnes del Norte", Status: entity.StatusApproved,
			ItemCount: 1, Subtotal: dec("100"), ShippingCost: dec("15"), Total: dec("115")},
	}}
	log := zerolog.Nop()

	workflow := purchasing.NewStatusWorkflow(invoices, logs, &memTx{invoices: invoices, stock: stock, logs: logs}, log)
	generator := purchasing.NewGenerateInvoiceUseCase(stock, cat, nil, log)
	editor := purchasing.NewEditorUseCase(generator, cat, invoices, workflow, purchasing.NewSessionStore())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:    inventory.NewStockUseCase(stock, cat, log),
		CatalogUC:  catalog.NewCatalogUseCase(cat),
		EditorUC:   editor,
		PDFUC:      purchasing.NewPDFUseCase(invoices, stubDocuments{}, ports.Issuer{Name: "La Cocina"}),
		SpendingUC: reports.NewSpendingUseCase(spending, stubDocuments{}, stubDocuments{}),
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, stock: stock, invoices: invoices, logs: logs, spending: spending}
}
