package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
	"github.com/jhoicas/restock-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// historyWindow días de consumo que se envían al asesor IA.
const historyWindow = 90

// advisorTimeout límite por producto para la sugerencia del asesor IA.
const advisorTimeout = 20 * time.Second

// GenerateInput parámetros de generación de la factura de compra.
type GenerateInput struct {
	Date           time.Time      // día de los snapshots; cero = hoy
	VendorFilter   []string       // vacío = todos los proveedores
	StockOverrides map[string]int // product_id → stock restante que reemplaza al del snapshot
	UseAI          bool           // pedir al asesor IA la cantidad de los productos bajo el mínimo
}

// GenerateInvoiceUseCase arma la factura del día a partir del déficit de stock.
type GenerateInvoiceUseCase struct {
	stockRepo   repository.StockRepository
	catalogRepo repository.CatalogRepository
	advisor     ports.OrderAdvisor // opcional
	log         zerolog.Logger
}

// NewGenerateInvoiceUseCase construye el caso de uso. advisor puede ser nil.
func NewGenerateInvoiceUseCase(
	stockRepo repository.StockRepository,
	catalogRepo repository.CatalogRepository,
	advisor ports.OrderAdvisor,
	log zerolog.Logger,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		stockRepo:   stockRepo,
		catalogRepo: catalogRepo,
		advisor:     advisor,
		log:         log,
	}
}

// Generate carga snapshots, productos y proveedores, calcula el pedido de cada producto
// y agrupa por proveedor. Las advertencias (proveedor desconocido, IA no disponible)
// quedan en Invoice.Warnings; la factura parcial se devuelve igual.
func (uc *GenerateInvoiceUseCase) Generate(ctx context.Context, in GenerateInput) (*entity.Invoice, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = truncateDay(date)

	snaps, err := uc.stockRepo.GetStockSnapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("generar factura: snapshots: %w", err)
	}
	products, err := uc.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("generar factura: productos: %w", err)
	}
	vendorList, err := uc.catalogRepo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("generar factura: proveedores: %w", err)
	}
	vendors := make(map[string]entity.Vendor, len(vendorList))
	for _, v := range vendorList {
		vendors[v.ID] = v
	}

	var warnings []string
	levels := inventory.JoinLevels(products, snaps)
	known := make(map[string]bool, len(levels))
	for i := range levels {
		known[levels[i].ProductID] = true
		if r, ok := in.StockOverrides[levels[i].ProductID]; ok {
			levels[i].RemainingStock = r
			levels[i].Status = inventory.Classify(levels[i])
		}
	}
	for id := range in.StockOverrides {
		if !known[id] {
			warnings = append(warnings, fmt.Sprintf("ajuste de stock para producto desconocido %s ignorado", id))
		}
	}

	useAI := in.UseAI
	if useAI && uc.advisor == nil {
		warnings = append(warnings, "asesor IA no configurado: se usa la regla de déficit")
		useAI = false
	}

	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	allowed := toSet(in.VendorFilter)

	requests := make([]purchasing.OrderRequest, 0, len(levels))
	for _, l := range levels {
		if allowed != nil && !allowed[l.VendorID] {
			continue
		}
		qty := inventory.OrderAmount(l)
		// El asesor solo decide sobre productos bajo el mínimo; el resto sigue la regla.
		if useAI && l.Status == entity.StockUnderstock {
			suggested, err := uc.suggest(ctx, l, date)
			if err != nil {
				uc.log.Warn().Err(err).Str("product_id", l.ProductID).Msg("asesor IA falló, se usa la regla de déficit")
				warnings = append(warnings, fmt.Sprintf("sugerencia IA para %s no disponible: se usa la regla de déficit", l.Name))
			} else {
				qty = suggested
			}
		}
		requests = append(requests, purchasing.OrderRequest{Product: byID[l.ProductID], Quantity: qty})
	}

	inv := purchasing.Aggregate(requests, vendors, in.VendorFilter)
	inv.Warnings = append(inv.Warnings, warnings...)
	inv.GeneratedAt = time.Now()
	for _, o := range inv.VendorOrders {
		o.OrderDate = date
	}

	for _, w := range inv.Warnings {
		uc.log.Warn().Str("date", date.Format(time.DateOnly)).Msg(w)
	}
	uc.log.Info().
		Str("date", date.Format(time.DateOnly)).
		Int("vendors", len(inv.VendorOrders)).
		Str("total", inv.TotalCost.StringFixed(2)).
		Msg("factura de compra generada")
	return inv, nil
}

func (uc *GenerateInvoiceUseCase) suggest(ctx context.Context, level entity.StockLevel, date time.Time) (int, error) {
	history, err := uc.stockRepo.GetConsumptionHistory(ctx, level.ProductID, date.AddDate(0, 0, -historyWindow))
	if err != nil {
		return 0, fmt.Errorf("historial de consumo: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, advisorTimeout)
	defer cancel()
	qty, err := uc.advisor.SuggestOrderQuantity(ctx, level, history)
	if err != nil {
		return 0, err
	}
	if qty < 0 {
		qty = 0
	}
	return qty, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
