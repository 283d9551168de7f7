package inventory_test

import (
	"testing"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStock_Limites(t *testing.T) {
	cases := []struct {
		remaining int
		want      entity.StockStatus
	}{
		{-3, entity.StockUnderstock},
		{9, entity.StockUnderstock},
		{10, entity.StockOptimal}, // == min
		{25, entity.StockOptimal},
		{40, entity.StockOptimal}, // == max
		{41, entity.StockOverstock},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, inventory.ClassifyStock(c.remaining, 10, 40), "remaining=%d", c.remaining)
	}
}

func TestGenerateAlerts(t *testing.T) {
	levels := []entity.StockLevel{
		{ProductID: "chicken", Name: "Pollo", RemainingStock: 5, MinStock: 20, MaxStock: 80},
		{ProductID: "oil", Name: "Aceite", RemainingStock: 30, MinStock: 10, MaxStock: 30},
		{ProductID: "flour", Name: "Harina", RemainingStock: 99, MinStock: 10, MaxStock: 50},
	}

	alerts := inventory.GenerateAlerts(levels)

	require.Len(t, alerts, 2, "una alerta por producto fuera de rango")
	assert.Equal(t, "chicken", alerts[0].ProductID)
	assert.Equal(t, entity.AlertLow, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "(5/20)")
	assert.Equal(t, "flour", alerts[1].ProductID)
	assert.Equal(t, entity.AlertHigh, alerts[1].Type)
	assert.Contains(t, alerts[1].Message, "(99/50)")
}

func TestGenerateAlerts_SinAlertas(t *testing.T) {
	alerts := inventory.GenerateAlerts(nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
