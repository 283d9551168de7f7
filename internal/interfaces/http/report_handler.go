package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/application/reports"
	"github.com/jhoicas/restock-api/internal/domain"
)

// ReportHandler maneja los reportes de gasto en compras aprobadas.
type ReportHandler struct {
	uc *reports.SpendingUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.SpendingUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DailySpending godoc
// @Summary      Gasto aprobado por día
// @Description  Sin date devuelve todos los días con órdenes aprobadas (más reciente primero).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD)"
// @Success      200  {array}   dto.DailySpendingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily-spending [get]
func (h *ReportHandler) DailySpending(c *fiber.Ctx) error {
	var datePtr *time.Time
	if c.Query("date") != "" {
		d, err := queryDate(c, "date")
		if err != nil {
			return writeError(c, err)
		}
		datePtr = &d
	}
	rows, err := h.uc.DailySpending(c.Context(), datePtr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToDailySpendingResponse(rows))
}

// SpendingBreakdown godoc
// @Summary      Desglose del gasto de un día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        date    query  string  false  "Día (YYYY-MM-DD). Default: hoy."
// @Param        format  query  string  false  "json (default) | xlsx | pdf"
// @Success      200  {object}  dto.SpendingBreakdownResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/spending-breakdown [get]
func (h *ReportHandler) SpendingBreakdown(c *fiber.Ctx) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return writeError(c, err)
	}

	switch c.Query("format", "json") {
	case "xlsx":
		data, filename, err := h.uc.ExportBreakdownXLSX(c.Context(), date)
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
	case "pdf":
		data, filename, err := h.uc.BreakdownPDF(c.Context(), date)
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, "application/pdf", filename, data)
	case "json":
	default:
		return writeError(c, domain.ErrInvalidInput)
	}

	b, err := h.uc.Breakdown(c.Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SpendingBreakdownResponse{
		Date:         b.Date.Format(time.DateOnly),
		Rows:         dto.ToSpendingRows(b.Rows),
		Subtotal:     b.Subtotal,
		ShippingCost: b.ShippingCost,
		Total:        b.Total,
	})
}
