package inventory

import (
	"fmt"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// ClassifyStock deriva el estado del stock. Los valores límite (== min o == max) son óptimos.
func ClassifyStock(remaining, minStock, maxStock int) entity.StockStatus {
	switch {
	case remaining < minStock:
		return entity.StockUnderstock
	case remaining > maxStock:
		return entity.StockOverstock
	default:
		return entity.StockOptimal
	}
}

// Classify aplica ClassifyStock a un nivel de stock.
func Classify(level entity.StockLevel) entity.StockStatus {
	return ClassifyStock(level.RemainingStock, level.MinStock, level.MaxStock)
}

// GenerateAlerts devuelve una alerta por cada producto fuera de rango, en el orden recibido.
func GenerateAlerts(levels []entity.StockLevel) []entity.StockAlert {
	alerts := make([]entity.StockAlert, 0)
	for _, l := range levels {
		switch Classify(l) {
		case entity.StockUnderstock:
			alerts = append(alerts, entity.StockAlert{
				ProductID: l.ProductID,
				Type:      entity.AlertLow,
				Message:   fmt.Sprintf("%s está por debajo del stock mínimo (%d/%d).", l.Name, l.RemainingStock, l.MinStock),
			})
		case entity.StockOverstock:
			alerts = append(alerts, entity.StockAlert{
				ProductID: l.ProductID,
				Type:      entity.AlertHigh,
				Message:   fmt.Sprintf("%s supera el stock máximo (%d/%d).", l.Name, l.RemainingStock, l.MaxStock),
			})
		}
	}
	return alerts
}
