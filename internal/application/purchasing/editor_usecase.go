package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

// SessionView estado de una sesión tal como lo ve la UI.
type SessionView struct {
	SessionID string
	Invoice   *entity.Invoice
}

// EditorUseCase expone el motor de recálculo a la capa HTTP: cada operación toma la
// sesión, muta su Engine y devuelve una copia de la factura recalculada.
type EditorUseCase struct {
	generator   *GenerateInvoiceUseCase
	catalogRepo repository.CatalogRepository
	invoiceRepo repository.InvoiceRepository
	workflow    *StatusWorkflow
	sessions    *SessionStore
}

// NewEditorUseCase construye el caso de uso.
func NewEditorUseCase(
	generator *GenerateInvoiceUseCase,
	catalogRepo repository.CatalogRepository,
	invoiceRepo repository.InvoiceRepository,
	workflow *StatusWorkflow,
	sessions *SessionStore,
) *EditorUseCase {
	return &EditorUseCase{
		generator:   generator,
		catalogRepo: catalogRepo,
		invoiceRepo: invoiceRepo,
		workflow:    workflow,
		sessions:    sessions,
	}
}

// Generate genera la factura del día y abre una sesión nueva para el usuario.
// Las ediciones sin guardar de su sesión anterior se descartan.
func (uc *EditorUseCase) Generate(ctx context.Context, userID string, in GenerateInput) (*SessionView, error) {
	inv, err := uc.generator.Generate(ctx, in)
	if err != nil {
		return nil, err
	}
	engine := purchasing.NewEngine(inv)
	id := uc.sessions.Open(userID, engine)
	return &SessionView{SessionID: id, Invoice: engine.Invoice()}, nil
}

// Load abre una sesión sobre una orden ya guardada para seguir editándola.
func (uc *EditorUseCase) Load(ctx context.Context, userID, invoiceID string) (*SessionView, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.invoiceRepo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("cargar factura: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}
	engine := purchasing.NewEngine(&entity.Invoice{
		VendorOrders: map[string]*entity.VendorOrder{order.VendorID: order},
		Warnings:     []string{},
		GeneratedAt:  time.Now(),
	})
	id := uc.sessions.Open(userID, engine)
	return &SessionView{SessionID: id, Invoice: engine.Invoice()}, nil
}

// Get devuelve el estado actual de la sesión.
func (uc *EditorUseCase) Get(sessionID string) (*SessionView, error) {
	return uc.mutate(sessionID, func(*purchasing.Engine) error { return nil })
}

// SetQuantity fija la cantidad de una línea.
func (uc *EditorUseCase) SetQuantity(sessionID, vendorID, productID string, quantity int) (*SessionView, error) {
	return uc.mutate(sessionID, func(e *purchasing.Engine) error {
		return e.SetQuantity(vendorID, productID, quantity)
	})
}

// RemoveItem elimina una línea.
func (uc *EditorUseCase) RemoveItem(sessionID, vendorID, productID string) (*SessionView, error) {
	return uc.mutate(sessionID, func(e *purchasing.Engine) error {
		return e.RemoveItem(vendorID, productID)
	})
}

// AddItem agrega un producto del catálogo del proveedor con cantidad 1.
func (uc *EditorUseCase) AddItem(ctx context.Context, sessionID, vendorID, productID string) (*SessionView, error) {
	product, err := uc.catalogRepo.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if product.VendorID != vendorID {
		return nil, fmt.Errorf("%w: el producto %s no pertenece al proveedor %s", domain.ErrInvalidInput, productID, vendorID)
	}
	return uc.mutate(sessionID, func(e *purchasing.Engine) error {
		return e.AddItem(vendorID, *product)
	})
}

// Save guarda la orden del proveedor y devuelve su invoice_id.
func (uc *EditorUseCase) Save(ctx context.Context, sessionID, vendorID, userID string) (string, *SessionView, error) {
	var invoiceID string
	view, err := uc.mutate(sessionID, func(e *purchasing.Engine) error {
		id, err := uc.workflow.Save(ctx, e, vendorID, userID)
		invoiceID = id
		return err
	})
	return invoiceID, view, err
}

// ChangeStatus aplica una transición de estado a la orden del proveedor.
func (uc *EditorUseCase) ChangeStatus(
	ctx context.Context,
	sessionID, vendorID string,
	status entity.InvoiceStatus,
	userID string,
) (entity.StatusLogEntry, *SessionView, error) {
	var entry entity.StatusLogEntry
	view, err := uc.mutate(sessionID, func(e *purchasing.Engine) error {
		var err error
		entry, err = uc.workflow.Transition(ctx, e, vendorID, status, userID)
		return err
	})
	return entry, view, err
}

// History devuelve la bitácora de estados de una orden guardada.
func (uc *EditorUseCase) History(ctx context.Context, invoiceID string) ([]entity.StatusLogEntry, error) {
	return uc.workflow.History(ctx, invoiceID)
}

// Close descarta la sesión y sus ediciones sin guardar.
func (uc *EditorUseCase) Close(sessionID string) error {
	return uc.sessions.Close(sessionID)
}

func (uc *EditorUseCase) mutate(sessionID string, fn func(*purchasing.Engine) error) (*SessionView, error) {
	var view *SessionView
	err := uc.sessions.With(sessionID, func(s *Session) error {
		if err := fn(s.Engine); err != nil {
			return err
		}
		view = &SessionView{SessionID: s.ID, Invoice: s.Engine.Invoice()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
