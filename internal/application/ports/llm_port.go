package ports

import (
	"context"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// OrderAdvisor define el puerto de salida hacia un modelo de lenguaje que sugiere cuánto
// pedir de un insumo. Cualquier adaptador (Anthropic, Gemini, mock) implementa esta interfaz.
// La capa de aplicación trata la sugerencia como opcional: si falla, usa la regla de déficit.
type OrderAdvisor interface {
	// SuggestOrderQuantity recibe el nivel actual y el consumo reciente y devuelve la
	// cantidad a pedir (>= 0). El contexto debe llevar un timeout.
	SuggestOrderQuantity(
		ctx context.Context,
		level entity.StockLevel,
		history []entity.DailyConsumption,
	) (int, error)
}
