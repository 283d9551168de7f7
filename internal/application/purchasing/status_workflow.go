package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// StatusWorkflow gestiona guardado y cambios de estado de las órdenes por proveedor.
// Cualquier transición está permitida (también salir de Approved), pero cada una deja
// exactamente una entrada en la bitácora, siempre después de que la factura existe en BD.
type StatusWorkflow struct {
	invoiceRepo repository.InvoiceRepository
	logRepo     repository.StatusLogRepository
	txRunner    ports.TxRunner
	log         zerolog.Logger
}

// NewStatusWorkflow construye el flujo inyectando sus dependencias.
func NewStatusWorkflow(
	invoiceRepo repository.InvoiceRepository,
	logRepo repository.StatusLogRepository,
	txRunner ports.TxRunner,
	log zerolog.Logger,
) *StatusWorkflow {
	return &StatusWorkflow{
		invoiceRepo: invoiceRepo,
		logRepo:     logRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// RecordTransition agrega una entrada a la bitácora. invoiceID vacío → ErrInvalidInput
// (una orden sin guardar no puede tener historial).
func (w *StatusWorkflow) RecordTransition(
	ctx context.Context,
	invoiceID string,
	oldStatus, newStatus entity.InvoiceStatus,
	changedBy string,
) (entity.StatusLogEntry, error) {
	if invoiceID == "" {
		return entity.StatusLogEntry{}, fmt.Errorf("%w: la orden no ha sido guardada", domain.ErrInvalidInput)
	}
	if !newStatus.Valid() {
		return entity.StatusLogEntry{}, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, newStatus)
	}
	entry := newLogEntry(invoiceID, oldStatus, newStatus, changedBy, time.Now())
	if err := w.logRepo.AppendStatusLog(ctx, &entry); err != nil {
		return entity.StatusLogEntry{}, fmt.Errorf("bitácora: %w", err)
	}
	return entry, nil
}

// Save persiste la orden del proveedor. El primer guardado inserta (versión 1) y asigna
// InvoiceID; los siguientes actualizan con chequeo de versión (ErrConflict si otro guardó
// antes). Si la orden ya guardada tenía ediciones pendientes pasa a Modified en la misma
// transacción que la actualización.
func (w *StatusWorkflow) Save(ctx context.Context, engine *purchasing.Engine, vendorID, userID string) (string, error) {
	order, err := engine.VendorOrder(vendorID)
	if err != nil {
		return "", err
	}
	order.ModifiedBy = userID

	if order.InvoiceID == "" {
		id, err := w.invoiceRepo.PersistInvoice(ctx, order)
		if err != nil {
			return "", fmt.Errorf("guardar orden %s: %w", vendorID, err)
		}
		if err := engine.MarkPersisted(vendorID, id, 1); err != nil {
			return "", err
		}
		w.log.Info().Str("invoice_id", id).Str("vendor_id", vendorID).Str("user_id", userID).Msg("orden de compra guardada")
		return id, nil
	}

	dirty := engine.IsDirty(vendorID)
	if dirty && order.ApprovedAt != nil {
		return "", fmt.Errorf("%w: orden %s ya aprobada", domain.ErrConflict, order.InvoiceID)
	}
	toModified := dirty && order.Status != entity.StatusModified
	entry := newLogEntry(order.InvoiceID, order.Status, entity.StatusModified, userID, time.Now())

	err = w.txRunner.RunInTx(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.StockRepository,
		logRepo repository.StatusLogRepository,
	) error {
		if err := invoiceRepo.UpdateInvoice(ctx, order.InvoiceID, order); err != nil {
			return fmt.Errorf("actualizar orden %s: %w", order.InvoiceID, err)
		}
		if !toModified {
			return nil
		}
		return applyStatus(ctx, invoiceRepo, logRepo, &entry)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			w.log.Warn().Str("invoice_id", order.InvoiceID).Int("version", order.Version).Msg("guardado con versión desactualizada")
		}
		return "", err
	}

	if err := engine.MarkPersisted(vendorID, order.InvoiceID, order.Version+1); err != nil {
		return "", err
	}
	if toModified {
		if err := engine.SetStatus(vendorID, entity.StatusModified, userID); err != nil {
			return "", err
		}
	}
	return order.InvoiceID, nil
}

// Transition cambia el estado de la orden y lo registra en una sola transacción. Si la
// orden nunca se guardó, primero la persiste. Al pasar a Approved por primera vez registra
// además un movimiento IN por línea (referencia = invoice_id) y fija approved_at;
// aprobaciones posteriores de la misma orden solo cambian el estado.
func (w *StatusWorkflow) Transition(
	ctx context.Context,
	engine *purchasing.Engine,
	vendorID string,
	newStatus entity.InvoiceStatus,
	changedBy string,
) (entity.StatusLogEntry, error) {
	if !newStatus.Valid() {
		return entity.StatusLogEntry{}, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, newStatus)
	}
	order, err := engine.VendorOrder(vendorID)
	if err != nil {
		return entity.StatusLogEntry{}, err
	}

	// La aprobación se realiza sobre lo guardado: ediciones pendientes se guardan antes.
	if order.InvoiceID == "" || (newStatus == entity.StatusApproved && engine.IsDirty(vendorID)) {
		if _, err := w.Save(ctx, engine, vendorID, changedBy); err != nil {
			return entity.StatusLogEntry{}, err
		}
		if order, err = engine.VendorOrder(vendorID); err != nil {
			return entity.StatusLogEntry{}, err
		}
	}

	now := time.Now()
	entry := newLogEntry(order.InvoiceID, order.Status, newStatus, changedBy, now)

	var realized bool
	err = w.txRunner.RunInTx(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		stockRepo repository.StockRepository,
		logRepo repository.StatusLogRepository,
	) error {
		if newStatus == entity.StatusApproved {
			first, err := invoiceRepo.MarkApproved(ctx, order.InvoiceID, now)
			if err != nil {
				return fmt.Errorf("marcar aprobación: %w", err)
			}
			if first {
				if err := recordStockIn(ctx, stockRepo, order, changedBy, now); err != nil {
					return err
				}
			}
			realized = first
		}
		return applyStatus(ctx, invoiceRepo, logRepo, &entry)
	})
	if err != nil {
		return entity.StatusLogEntry{}, err
	}

	if err := engine.SetStatus(vendorID, newStatus, changedBy); err != nil {
		return entity.StatusLogEntry{}, err
	}
	if realized {
		_ = engine.MarkApproved(vendorID, now)
		w.log.Info().
			Str("invoice_id", order.InvoiceID).
			Str("vendor_id", vendorID).
			Int("items", len(order.Items)).
			Str("total", order.Total().StringFixed(2)).
			Msg("orden aprobada: entradas de stock registradas")
	}
	return entry, nil
}

// applyStatus escribe el nuevo estado y su entrada de bitácora con los repos de la tx.
func applyStatus(
	ctx context.Context,
	invoiceRepo repository.InvoiceRepository,
	logRepo repository.StatusLogRepository,
	entry *entity.StatusLogEntry,
) error {
	if err := invoiceRepo.UpdateStatus(ctx, entry.InvoiceID, entry.NewStatus, entry.ChangedBy); err != nil {
		return fmt.Errorf("actualizar estado: %w", err)
	}
	if err := logRepo.AppendStatusLog(ctx, entry); err != nil {
		return fmt.Errorf("bitácora: %w", err)
	}
	return nil
}

func recordStockIn(ctx context.Context, stockRepo repository.StockRepository, order *entity.VendorOrder, by string, at time.Time) error {
	for _, it := range order.Items {
		if it.Quantity <= 0 {
			continue
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   it.ProductID,
			Type:        entity.MovementTypeIN,
			Quantity:    it.Quantity,
			Description: fmt.Sprintf("Orden de compra aprobada (%s)", order.VendorName),
			Reference:   order.InvoiceID,
			CreatedBy:   by,
			CreatedAt:   at,
		}
		if err := stockRepo.RecordStockMovement(ctx, mov); err != nil {
			return fmt.Errorf("entrada de %s: %w", it.ProductID, err)
		}
	}
	return nil
}

// History devuelve la bitácora de la factura en orden cronológico.
func (w *StatusWorkflow) History(ctx context.Context, invoiceID string) ([]entity.StatusLogEntry, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return w.logRepo.GetStatusLog(ctx, invoiceID)
}

func newLogEntry(invoiceID string, oldStatus, newStatus entity.InvoiceStatus, changedBy string, at time.Time) entity.StatusLogEntry {
	return entity.StatusLogEntry{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: at,
	}
}
