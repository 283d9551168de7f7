package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CostBreakdown resultado de costear una cantidad con la tabla de bundles del producto.
type CostBreakdown struct {
	Cost              decimal.Decimal
	NonDiscountedCost decimal.Decimal // quantity * precio unitario
	Savings           decimal.Decimal // NonDiscountedCost - Cost
}

// BundleCost calcula el costo de comprar quantity unidades (servicio de dominio).
//
// Algoritmo voraz: bundles de mayor a menor cantidad, se toman floor(restante/bundle.Quantity)
// bundles completos de cada uno y el sobrante se paga a precio unitario.
// No garantiza el óptimo para cualquier tabla (dos bundles chicos pueden ganarle a uno grande);
// se conserva así porque cambiarlo altera los totales históricos de las facturas.
//
// quantity <= 0 devuelve ceros. Un precio unitario ausente se pasa como cero.
// Bundles con Quantity < 1 se ignoran; con cantidades repetidas gana el primero de la lista.
func BundleCost(quantity int, unitPrice decimal.Decimal, bundles []entity.Bundle) CostBreakdown {
	if quantity <= 0 {
		return CostBreakdown{Cost: decimal.Zero, NonDiscountedCost: decimal.Zero, Savings: decimal.Zero}
	}

	sorted := make([]entity.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if b.Quantity >= 1 {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity > sorted[j].Quantity })

	cost := decimal.Zero
	remaining := quantity
	for _, b := range sorted {
		n := remaining / b.Quantity
		if n > 0 {
			cost = cost.Add(b.Price.Mul(decimal.NewFromInt(int64(n))))
			remaining -= n * b.Quantity
		}
	}
	cost = cost.Add(unitPrice.Mul(decimal.NewFromInt(int64(remaining))))

	full := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return CostBreakdown{
		Cost:              cost,
		NonDiscountedCost: full,
		Savings:           full.Sub(cost),
	}
}

// ValidateBundles valida la tabla de bundles al ingresar al catálogo (no en la calculadora).
// Rechaza cantidades < 1, precios negativos y cantidades repetidas.
func ValidateBundles(bundles []entity.Bundle) error {
	seen := make(map[int]struct{}, len(bundles))
	for _, b := range bundles {
		if b.Quantity < 1 {
			return fmt.Errorf("%w: bundle con cantidad %d", domain.ErrInvalidInput, b.Quantity)
		}
		if b.Price.IsNegative() {
			return fmt.Errorf("%w: bundle de %d con precio negativo", domain.ErrInvalidInput, b.Quantity)
		}
		if _, dup := seen[b.Quantity]; dup {
			return fmt.Errorf("%w: bundle de %d repetido", domain.ErrInvalidInput, b.Quantity)
		}
		seen[b.Quantity] = struct{}{}
	}
	return nil
}
