package inventory

import "github.com/jhoicas/restock-api/internal/domain/entity"

// OrderAmount calcula cuánto pedir de un producto para llevarlo a un nivel sano.
//
//	pedido = predicción - stock actual
//	si stock + pedido < mínimo → pedido = mínimo - stock
//	si stock + pedido > máximo → pedido = máximo - stock
//
// Nunca devuelve negativos.
func OrderAmount(level entity.StockLevel) int {
	order := level.LastYearPrediction - level.RemainingStock
	potential := level.RemainingStock + order
	if potential < level.MinStock {
		order = level.MinStock - level.RemainingStock
	} else if potential > level.MaxStock {
		order = level.MaxStock - level.RemainingStock
	}
	if order < 0 {
		return 0
	}
	return order
}
