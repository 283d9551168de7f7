package purchasing_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

// events registra el orden de las escrituras para verificar persist → log.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

type fakeInvoiceRepo struct {
	ev       *events
	seq      int
	orders   map[string]*entity.VendorOrder
	approved map[string]time.Time
}

func newFakeInvoiceRepo(ev *events) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{ev: ev, orders: map[string]*entity.VendorOrder{}, approved: map[string]time.Time{}}
}

func (r *fakeInvoiceRepo) PersistInvoice(_ context.Context, o *entity.VendorOrder) (string, error) {
	r.seq++
	id := fmt.Sprintf("inv-%d", r.seq)
	c := o.Clone()
	c.InvoiceID = id
	c.Version = 1
	r.orders[id] = c
	r.ev.add("persist:" + id)
	return id, nil
}

func (r *fakeInvoiceRepo) UpdateInvoice(_ context.Context, id string, o *entity.VendorOrder) error {
	cur, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != o.Version {
		return domain.ErrConflict
	}
	c := o.Clone()
	c.Version = cur.Version + 1
	c.Status = cur.Status
	r.orders[id] = c
	r.ev.add("update:" + id)
	return nil
}

func (r *fakeInvoiceRepo) GetInvoice(_ context.Context, id string) (*entity.VendorOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id string, s entity.InvoiceStatus, by string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = s
	o.ModifiedBy = by
	r.ev.add("status:" + id + ":" + string(s))
	return nil
}

func (r *fakeInvoiceRepo) MarkApproved(_ context.Context, id string, at time.Time) (bool, error) {
	if _, ok := r.approved[id]; ok {
		return false, nil
	}
	r.approved[id] = at
	return true, nil
}

type fakeLogRepo struct {
	ev         *events
	entries    []entity.StatusLogEntry
	failAppend error
}

func (r *fakeLogRepo) AppendStatusLog(_ context.Context, e *entity.StatusLogEntry) error {
	if r.failAppend != nil {
		return r.failAppend
	}
	r.entries = append(r.entries, *e)
	r.ev.add("log:" + e.InvoiceID)
	return nil
}

func (r *fakeLogRepo) GetStatusLog(_ context.Context, invoiceID string) ([]entity.StatusLogEntry, error) {
	out := []entity.StatusLogEntry{}
	for _, e := range r.entries {
		if e.InvoiceID == invoiceID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStockRepo struct {
	snapshots []entity.StockSnapshot
	movements []entity.StockMovement
	history   []entity.DailyConsumption
	failMove  error
}

func (r *fakeStockRepo) GetStockSnapshot(context.Context, time.Time) ([]entity.StockSnapshot, error) {
	return r.snapshots, nil
}

func (r *fakeStockRepo) UpsertSnapshot(_ context.Context, s entity.StockSnapshot) error {
	r.snapshots = append(r.snapshots, s)
	return nil
}

func (r *fakeStockRepo) RecordStockMovement(_ context.Context, m *entity.StockMovement) error {
	if r.failMove != nil {
		return r.failMove
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeStockRepo) GetConsumptionHistory(context.Context, string, time.Time) ([]entity.DailyConsumption, error) {
	return r.history, nil
}

func (r *fakeStockRepo) RollOver(context.Context, time.Time, time.Time) (int, error) { return 0, nil }

type fakeCatalog struct {
	vendors  []entity.Vendor
	products []entity.Product
}

func (c *fakeCatalog) ListVendors(context.Context) ([]entity.Vendor, error) { return c.vendors, nil }

func (c *fakeCatalog) ListVendorProducts(_ context.Context, vendorID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range c.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListProducts(context.Context) ([]entity.Product, error) { return c.products, nil }

func (c *fakeCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) GetVendor(_ context.Context, id string) (*entity.Vendor, error) {
	for _, v := range c.vendors {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

// fakeTx ejecuta fn con los mismos repos; si fn falla restaura órdenes, aprobaciones,
// movimientos y entradas a como estaban al iniciar la transacción.
type fakeTx struct {
	invoices *fakeInvoiceRepo
	stock    *fakeStockRepo
	logs     *fakeLogRepo
}

func (t *fakeTx) RunInTx(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.StockRepository,
	repository.StatusLogRepository,
) error) error {
	movs, entries := len(t.stock.movements), len(t.logs.entries)
	orders := make(map[string]*entity.VendorOrder, len(t.invoices.orders))
	for k, o := range t.invoices.orders {
		orders[k] = o.Clone()
	}
	approved := make(map[string]time.Time, len(t.invoices.approved))
	for k, v := range t.invoices.approved {
		approved[k] = v
	}
	if err := fn(t.invoices, t.stock, t.logs); err != nil {
		t.stock.movements = t.stock.movements[:movs]
		t.logs.entries = t.logs.entries[:entries]
		t.invoices.orders = orders
		t.invoices.approved = approved
		return err
	}
	return nil
}

type fakeAdvisor struct {
	qty int
	err error
}

func (a *fakeAdvisor) SuggestOrderQuantity(context.Context, entity.StockLevel, []entity.DailyConsumption) (int, error) {
	return a.qty, a.err
}

var errAdvisor = errors.New("modelo no disponible")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		vendors: []entity.Vendor{
			{ID: "meat", Name: "Carnes del Norte", ShippingCost: d("15"), FreeShippingThreshold: d("150")},
			{ID: "dry", Name: "Secos SAS", ShippingCost: d("8"), FreeShippingThreshold: d("500")},
		},
		products: []entity.Product{
			{ID: "chicken", VendorID: "meat", Name: "Pollo", Unit: "kg", Price: decimal.NewNullDecimal(d("10")),
				Bundles: []entity.Bundle{{Quantity: 12, Price: d("100")}}, MinStock: 10, MaxStock: 30, LastYearPrediction: 20},
			{ID: "oil", VendorID: "dry", Name: "Aceite", Unit: "l", Price: decimal.NewNullDecimal(d("4")),
				MinStock: 2, MaxStock: 10, LastYearPrediction: 6},
			{ID: "sugar", VendorID: "dry", Name: "Azúcar", Unit: "kg", Price: decimal.NewNullDecimal(d("3")),
				MinStock: 0, MaxStock: 5},
		},
	}
}

func sortedMovementProducts(ms []entity.StockMovement) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ProductID)
	}
	sort.Strings(out)
	return out
}
