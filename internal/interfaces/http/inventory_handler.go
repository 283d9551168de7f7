package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/application/inventory"
)

// InventoryHandler maneja el stock diario, los movimientos y la lista de reposición (protegido).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetStockStatus godoc
// @Summary      Estado del stock del día
// @Description  Niveles de todos los productos (under/over/normal) y alertas de los que están fuera de rango.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.StockStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-status [get]
func (h *InventoryHandler) GetStockStatus(c *fiber.Ctx) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return writeError(c, err)
	}
	status, err := h.uc.GetStockStatus(c.Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockStatusResponse{
		Date:   status.Date.Format(time.DateOnly),
		Levels: status.Levels,
		Alerts: status.Alerts,
	})
}

// UpdateStock godoc
// @Summary      Registrar conteo de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStockRequest  true  "product_id, remaining_stock, date opcional"
// @Success      200  {object}  entity.StockLevel
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	var date time.Time
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return writeError(c, err)
		}
		date = d
	}
	level, err := h.uc.UpdateStock(c.Context(), in.ProductID, date, *in.RemainingStock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(level)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type (IN|OUT|ADJUSTMENT), quantity"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.uc.RecordMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos bajo el mínimo con la cantidad sugerida y su costo con paquetes,
//
//	ordenados por urgencia (déficit relativo al mínimo).
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD). Default: hoy."
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/stock/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Replenishment(c.Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
