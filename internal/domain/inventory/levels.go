package inventory

import "github.com/jhoicas/restock-api/internal/domain/entity"

// JoinLevels une cada producto con su snapshot del día y deriva el estado.
// Un producto sin snapshot aparece con stock 0 (nunca se contó). Snapshots de productos
// que no están en el catálogo se ignoran. El orden de salida es el de products.
func JoinLevels(products []entity.Product, snapshots []entity.StockSnapshot) []entity.StockLevel {
	byProduct := make(map[string]entity.StockSnapshot, len(snapshots))
	for _, s := range snapshots {
		byProduct[s.ProductID] = s
	}

	levels := make([]entity.StockLevel, 0, len(products))
	for _, p := range products {
		snap := byProduct[p.ID]
		l := entity.StockLevel{
			ProductID:          p.ID,
			VendorID:           p.VendorID,
			Name:               p.Name,
			Unit:               p.Unit,
			RemainingStock:     snap.RemainingStock,
			DailyIn:            snap.DailyIn,
			DailyOut:           snap.DailyOut,
			MinStock:           p.MinStock,
			MaxStock:           p.MaxStock,
			LastYearPrediction: p.LastYearPrediction,
		}
		l.Status = Classify(l)
		levels = append(levels, l)
	}
	return levels
}
