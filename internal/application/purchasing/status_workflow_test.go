package purchasing_test

import (
	"context"
	"errors"
	"testing"

	apppurchasing "github.com/jhoicas/restock-api/internal/application/purchasing"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBitacora = errors.New("bitácora no disponible")

type workflowFixture struct {
	ev       *events
	invoices *fakeInvoiceRepo
	logs     *fakeLogRepo
	stock    *fakeStockRepo
	workflow *apppurchasing.StatusWorkflow
	engine   *purchasing.Engine
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	ev := &events{}
	f := &workflowFixture{
		ev:       ev,
		invoices: newFakeInvoiceRepo(ev),
		logs:     &fakeLogRepo{ev: ev},
		stock:    &fakeStockRepo{},
	}
	tx := &fakeTx{invoices: f.invoices, stock: f.stock, logs: f.logs}
	f.workflow = apppurchasing.NewStatusWorkflow(f.invoices, f.logs, tx, zerolog.Nop())

	cat := testCatalog()
	vendors := map[string]entity.Vendor{}
	for _, v := range cat.vendors {
		vendors[v.ID] = v
	}
	inv := purchasing.Aggregate([]purchasing.OrderRequest{
		{Product: cat.products[0], Quantity: 16},
		{Product: cat.products[1], Quantity: 5},
	}, vendors, nil)
	f.engine = purchasing.NewEngine(inv)
	return f
}

// ──── Tests RecordTransition ────

func TestRecordTransition_SinInvoiceIDFalla(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.workflow.RecordTransition(context.Background(), "", entity.StatusPending, entity.StatusReviewed, "ana")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, f.logs.entries, "no se escribe nada en la bitácora")
}

func TestRecordTransition_AgregaUnaEntrada(t *testing.T) {
	f := newWorkflowFixture(t)

	entry, err := f.workflow.RecordTransition(context.Background(), "inv-9", entity.StatusPending, entity.StatusReviewed, "ana")

	require.NoError(t, err)
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, entry, f.logs.entries[0])
	assert.Equal(t, entity.StatusPending, entry.OldStatus)
	assert.Equal(t, entity.StatusReviewed, entry.NewStatus)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
}

// ──── Tests Transition ────

func TestTransition_PersisteAntesDeRegistrar(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	entry, err := f.workflow.Transition(ctx, f.engine, "meat", entity.StatusReviewed, "ana")

	require.NoError(t, err)
	assert.Equal(t, "inv-1", entry.InvoiceID)
	assert.Equal(t, []string{"persist:inv-1", "status:inv-1:Reviewed", "log:inv-1"}, f.ev.log)

	o, err := f.engine.VendorOrder("meat")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", o.InvoiceID)
	assert.Equal(t, entity.StatusReviewed, o.Status)
	assert.Equal(t, "ana", o.ModifiedBy)
}

func TestTransition_EstadoInvalido(t *testing.T) {
	f := newWorkflowFixture(t)
	_, err := f.workflow.Transition(context.Background(), f.engine, "meat", "Shipped", "ana")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, f.ev.log)
}

func TestTransition_AprobacionSeRealizaUnaSolaVez(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := f.workflow.Transition(ctx, f.engine, "meat", entity.StatusApproved, "ana")
	require.NoError(t, err)
	require.Len(t, f.stock.movements, 1)
	mov := f.stock.movements[0]
	assert.Equal(t, "chicken", mov.ProductID)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 16, mov.Quantity)
	assert.Equal(t, "inv-1", mov.Reference)

	// Pending → Approved → Reviewed → Approved: la segunda aprobación no duplica entradas.
	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusReviewed, "ana")
	require.NoError(t, err)
	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusApproved, "luis")
	require.NoError(t, err)

	assert.Len(t, f.stock.movements, 1, "entradas de stock solo en la primera aprobación")
	assert.Len(t, f.logs.entries, 3, "cada transición queda registrada")
	o, _ := f.engine.VendorOrder("meat")
	require.NotNil(t, o.ApprovedAt)
	assert.Equal(t, f.invoices.approved["inv-1"], *o.ApprovedAt)
}

func TestTransition_AprobacionFallidaHaceRollback(t *testing.T) {
	f := newWorkflowFixture(t)
	f.stock.failMove = domain.ErrNotFound

	_, err := f.workflow.Transition(context.Background(), f.engine, "dry", entity.StatusApproved, "ana")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, f.logs.entries)
	assert.Empty(t, f.invoices.approved)
	o, _ := f.engine.VendorOrder("dry")
	assert.Equal(t, entity.StatusPending, o.Status, "el estado de trabajo no cambia")
	assert.Nil(t, o.ApprovedAt)
}

func TestTransition_AprobarGuardaEdicionesPendientes(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	_, err := f.workflow.Save(ctx, f.engine, "dry", "ana")
	require.NoError(t, err)
	require.NoError(t, f.engine.SetQuantity("dry", "oil", 9))

	_, err = f.workflow.Transition(ctx, f.engine, "dry", entity.StatusApproved, "ana")

	require.NoError(t, err)
	require.Len(t, f.stock.movements, 1)
	assert.Equal(t, 9, f.stock.movements[0].Quantity, "se aprueba la cantidad editada")
	history, err := f.workflow.History(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.StatusModified, history[0].NewStatus)
	assert.Equal(t, entity.StatusModified, history[1].OldStatus)
	assert.Equal(t, entity.StatusApproved, history[1].NewStatus)
}

func TestTransition_FallaBitacoraRevierteEstado(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	_, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)
	f.logs.failAppend = errBitacora

	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusReviewed, "ana")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errBitacora))
	assert.Equal(t, entity.StatusPending, f.invoices.orders["inv-1"].Status, "el estado guardado no cambia sin su entrada")
	o, _ := f.engine.VendorOrder("meat")
	assert.Equal(t, entity.StatusPending, o.Status)
	assert.Empty(t, f.logs.entries)

	f.logs.failAppend = nil
	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusReviewed, "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReviewed, f.invoices.orders["inv-1"].Status)
	assert.Len(t, f.logs.entries, 1)
}

func TestTransition_OrdenAprobadaNoAdmiteEdiciones(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	_, err := f.workflow.Transition(ctx, f.engine, "meat", entity.StatusApproved, "ana")
	require.NoError(t, err)

	err = f.engine.SetQuantity("meat", "chicken", 40)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)
	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusReviewed, "ana")
	require.NoError(t, err)
	_, err = f.workflow.Transition(ctx, f.engine, "meat", entity.StatusApproved, "ana")
	require.NoError(t, err)

	stored := f.invoices.orders["inv-1"]
	assert.Equal(t, 16, stored.Items[0].Quantity, "lo guardado coincide con lo recibido")
	require.Len(t, f.stock.movements, 1)
	assert.Equal(t, 16, f.stock.movements[0].Quantity)
}

// ──── Tests Save ────

func TestSave_PrimerGuardadoYActualizacion(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	id, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", id)
	assert.Empty(t, f.logs.entries, "el primer guardado no es una transición")

	// Guardar sin cambios actualiza pero no cambia el estado.
	id2, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.Empty(t, f.logs.entries)

	o, _ := f.engine.VendorOrder("meat")
	assert.Equal(t, 2, o.Version)
	assert.Equal(t, entity.StatusPending, o.Status)
}

func TestSave_EdicionPasaAModified(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	_, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)

	require.NoError(t, f.engine.SetQuantity("meat", "chicken", 24))
	_, err = f.workflow.Save(ctx, f.engine, "meat", "luis")
	require.NoError(t, err)

	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, entity.StatusPending, f.logs.entries[0].OldStatus)
	assert.Equal(t, entity.StatusModified, f.logs.entries[0].NewStatus)
	assert.Equal(t, "luis", f.logs.entries[0].ChangedBy)
	assert.False(t, f.engine.IsDirty("meat"))
	stored := f.invoices.orders["inv-1"]
	assert.Equal(t, 24, stored.Items[0].Quantity)
	assert.Equal(t, entity.StatusModified, stored.Status)
}

func TestSave_VersionDesactualizadaDevuelveConflicto(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	id, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)

	// Otro editor guardó la misma orden.
	f.invoices.orders[id].Version = 5
	require.NoError(t, f.engine.SetQuantity("meat", "chicken", 1))

	_, err = f.workflow.Save(ctx, f.engine, "meat", "ana")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, f.engine.IsDirty("meat"), "las ediciones siguen pendientes")
	assert.Empty(t, f.logs.entries)
}

func TestSave_FallaBitacoraRevierteGuardado(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	_, err := f.workflow.Save(ctx, f.engine, "meat", "ana")
	require.NoError(t, err)
	require.NoError(t, f.engine.SetQuantity("meat", "chicken", 24))
	f.logs.failAppend = errBitacora

	_, err = f.workflow.Save(ctx, f.engine, "meat", "luis")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errBitacora))
	stored := f.invoices.orders["inv-1"]
	assert.Equal(t, 16, stored.Items[0].Quantity, "la actualización se revierte")
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, entity.StatusPending, stored.Status)
	o, _ := f.engine.VendorOrder("meat")
	assert.Equal(t, 1, o.Version)
	assert.Equal(t, entity.StatusPending, o.Status)
	assert.True(t, f.engine.IsDirty("meat"), "las ediciones siguen pendientes")

	// Reintentar con la bitácora disponible guarda con la versión original.
	f.logs.failAppend = nil
	_, err = f.workflow.Save(ctx, f.engine, "meat", "luis")
	require.NoError(t, err)
	assert.Equal(t, 2, f.invoices.orders["inv-1"].Version)
	assert.Equal(t, entity.StatusModified, f.invoices.orders["inv-1"].Status)
	assert.Len(t, f.logs.entries, 1)
}

func TestHistory_SinIDFalla(t *testing.T) {
	f := newWorkflowFixture(t)
	_, err := f.workflow.History(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
