package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// StockStatus niveles del día con su estado y las alertas derivadas.
type StockStatus struct {
	Date   time.Time
	Levels []entity.StockLevel
	Alerts []entity.StockAlert
}

// StockUseCase consulta y actualiza el stock diario por producto.
type StockUseCase struct {
	stockRepo   repository.StockRepository
	catalogRepo repository.CatalogRepository
	log         zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	catalogRepo repository.CatalogRepository,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		stockRepo:   stockRepo,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

// GetStockStatus devuelve los niveles de todos los productos en la fecha (cero = hoy)
// y una alerta por cada producto fuera de rango.
func (uc *StockUseCase) GetStockStatus(ctx context.Context, date time.Time) (*StockStatus, error) {
	date = dayOf(date)
	levels, err := uc.levels(ctx, date)
	if err != nil {
		return nil, err
	}
	return &StockStatus{
		Date:   date,
		Levels: levels,
		Alerts: inventory.GenerateAlerts(levels),
	}, nil
}

// UpdateStock fija el stock restante contado para el producto en la fecha (cero = hoy).
// Conserva las entradas/salidas ya registradas en el snapshot del día.
func (uc *StockUseCase) UpdateStock(ctx context.Context, productID string, date time.Time, remaining int) (*entity.StockLevel, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	product, err := uc.catalogRepo.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	date = dayOf(date)
	snaps, err := uc.stockRepo.GetStockSnapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("snapshots: %w", err)
	}
	snap := entity.StockSnapshot{ProductID: productID, Date: date}
	for _, s := range snaps {
		if s.ProductID == productID {
			snap = s
			break
		}
	}
	snap.Date = date
	snap.RemainingStock = remaining
	if err := uc.stockRepo.UpsertSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("guardar snapshot: %w", err)
	}

	level := inventory.JoinLevels([]entity.Product{*product}, []entity.StockSnapshot{snap})[0]
	uc.log.Info().Str("product_id", productID).Int("remaining", remaining).Str("status", string(level.Status)).Msg("stock actualizado")
	return &level, nil
}

// MovementInput entrada para registrar un movimiento manual de inventario.
// Quantity es el delta con signo; para OUT se acepta positivo y se invierte.
type MovementInput struct {
	ProductID   string
	Type        string
	Quantity    int
	Description string
	UserID      string
}

// RecordMovement registra un movimiento y aplica el delta al snapshot del día.
// ErrNotFound si el producto no existe.
func (uc *StockUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	qty := in.Quantity
	switch in.Type {
	case entity.MovementTypeIN:
		if qty < 0 {
			return nil, fmt.Errorf("%w: una entrada no puede ser negativa", domain.ErrInvalidInput)
		}
	case entity.MovementTypeOUT:
		if qty > 0 {
			qty = -qty
		}
	case entity.MovementTypeADJUSTMENT:
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    qty,
		Description: in.Description,
		CreatedBy:   in.UserID,
		CreatedAt:   time.Now(),
	}
	if err := uc.stockRepo.RecordStockMovement(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}

func (uc *StockUseCase) levels(ctx context.Context, date time.Time) ([]entity.StockLevel, error) {
	snaps, err := uc.stockRepo.GetStockSnapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("snapshots: %w", err)
	}
	products, err := uc.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos: %w", err)
	}
	return inventory.JoinLevels(products, snaps), nil
}

func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
