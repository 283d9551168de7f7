package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// systemPrompt define el rol del modelo y el formato de salida (común a todos los proveedores).
const systemPrompt = `Eres un experto en gestión de inventario de un restaurante.
Con los datos de un insumo y su consumo reciente, calcula cuánto pedir para dejar el stock en un nivel sano sin superar el máximo.
Si el consumo es alto, conviene pedir hasta el máximo; si es bajo, basta con superar el mínimo.
Devuelve ÚNICAMENTE un objeto JSON (sin markdown, sin texto adicional) con esta estructura exacta:
{
  "order_amount": <entero mayor o igual a 0>,
  "reasoning": "<explicación concisa en español, máximo 200 caracteres>"
}`

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// orderSuggestionPayload es el JSON que esperamos recibir del modelo.
type orderSuggestionPayload struct {
	OrderAmount *float64 `json:"order_amount"`
	Reasoning   string   `json:"reasoning"`
}

// buildUserPrompt describe el producto y su historial de consumo (más reciente primero).
func buildUserPrompt(level entity.StockLevel, history []entity.DailyConsumption) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Producto: %s (%s)\n", level.Name, level.Unit)
	fmt.Fprintf(&b, "Stock actual: %d\n", level.RemainingStock)
	fmt.Fprintf(&b, "Stock mínimo: %d\n", level.MinStock)
	fmt.Fprintf(&b, "Stock máximo: %d\n", level.MaxStock)
	fmt.Fprintf(&b, "Predicción del año anterior: %d\n\n", level.LastYearPrediction)
	b.WriteString("Consumo reciente:\n")

	used := 0
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		if h.Quantity == 0 {
			continue
		}
		fmt.Fprintf(&b, "  - %s: %d unidades\n", h.Date.Format(time.DateOnly), h.Quantity)
		used++
	}
	if used == 0 {
		b.WriteString("  - Sin consumo registrado.\n")
	}
	return b.String()
}

// parseSuggestion extrae la cantidad del texto del modelo y la ajusta a [0, max - stock]
// cuando el producto tiene máximo definido.
func parseSuggestion(rawText string, level entity.StockLevel) (int, error) {
	clean := extractJSON(rawText)
	if clean == "" {
		return 0, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload orderSuggestionPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return 0, fmt.Errorf("AI: parsear JSON de sugerencia: %w (JSON extraído: %s)", err, clean)
	}
	if payload.OrderAmount == nil {
		return 0, fmt.Errorf("AI: la respuesta no incluye order_amount (JSON extraído: %s)", clean)
	}

	qty := int(*payload.OrderAmount + 0.5)
	if qty < 0 {
		qty = 0
	}
	if level.MaxStock > 0 {
		if room := level.MaxStock - level.RemainingStock; qty > room {
			qty = max(room, 0)
		}
	}
	return qty, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
