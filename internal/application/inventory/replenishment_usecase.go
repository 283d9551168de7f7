package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
)

// Replenishment devuelve los productos con pedido sugerido > 0, con su costo estimado
// (bundles incluidos) y un ranking de prioridad: primero los que están más lejos de su
// stock mínimo en proporción.
func (uc *StockUseCase) Replenishment(ctx context.Context, date time.Time) ([]dto.ReplenishmentSuggestionDTO, error) {
	levels, err := uc.levels(ctx, dayOf(date))
	if err != nil {
		return nil, err
	}
	products, err := uc.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	type ranked struct {
		dto   dto.ReplenishmentSuggestionDTO
		ratio float64
	}
	items := make([]ranked, 0)
	for _, l := range levels {
		qty := inventory.OrderAmount(l)
		if qty <= 0 {
			continue
		}
		p := byID[l.ProductID]
		cost := inventory.BundleCost(qty, p.UnitPrice(), p.Bundles)
		ratio := 0.0
		if l.MinStock > 0 {
			ratio = float64(l.MinStock-l.RemainingStock) / float64(l.MinStock)
		}
		items = append(items, ranked{
			dto: dto.ReplenishmentSuggestionDTO{
				ProductID:          l.ProductID,
				VendorID:           l.VendorID,
				ProductName:        l.Name,
				Unit:               l.Unit,
				CurrentStock:       l.RemainingStock,
				MinStock:           l.MinStock,
				MaxStock:           l.MaxStock,
				Prediction:         l.LastYearPrediction,
				Status:             string(l.Status),
				SuggestedOrderQty:  qty,
				EstimatedOrderCost: cost.Cost,
				BundleSavings:      cost.Savings,
			},
			ratio: ratio,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ratio != items[j].ratio {
			return items[i].ratio > items[j].ratio
		}
		return items[i].dto.ProductName < items[j].dto.ProductName
	})

	out := make([]dto.ReplenishmentSuggestionDTO, len(items))
	for i, it := range items {
		it.dto.Priority = i + 1
		out[i] = it.dto
	}
	return out, nil
}
