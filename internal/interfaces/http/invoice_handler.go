package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/application/purchasing"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// InvoiceHandler maneja la factura de compra: generación, sesión de edición,
// guardado, flujo de estados y PDF (protegido).
type InvoiceHandler struct {
	editor *purchasing.EditorUseCase
	pdf    *purchasing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(editor *purchasing.EditorUseCase, pdf *purchasing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{editor: editor, pdf: pdf}
}

func sessionResponse(v *purchasing.SessionView, invoiceID string) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID: v.SessionID,
		InvoiceID: invoiceID,
		Invoice:   dto.ToInvoiceResponse(v.Invoice),
	}
}

// Generate godoc
// @Summary      Generar factura de compra
// @Description  Calcula el pedido por producto desde el stock del día, agrupa por proveedor
//
//	y abre una sesión de edición. Reemplaza la sesión anterior del usuario.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateInvoiceRequest  false  "date, vendor_ids, stock_overrides, use_ai"
// @Success      201  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/generate [post]
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	var date time.Time
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return writeError(c, err)
		}
		date = d
	}
	view, err := h.editor.Generate(c.Context(), GetUserID(c), purchasing.GenerateInput{
		Date:           date,
		VendorFilter:   in.VendorIDs,
		StockOverrides: in.StockOverrides,
		UseAI:          in.UseAI,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(view, ""))
}

// Load godoc
// @Summary      Abrir una orden guardada para editarla
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        invoiceID  path  string  true  "ID de la orden"
// @Success      201  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/load/{invoiceID} [post]
func (h *InvoiceHandler) Load(c *fiber.Ctx) error {
	view, err := h.editor.Load(c.Context(), GetUserID(c), c.Params("invoiceID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(view, ""))
}

// GetSession godoc
// @Summary      Estado actual de la sesión
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *InvoiceHandler) GetSession(c *fiber.Ctx) error {
	view, err := h.editor.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(view, ""))
}

// CloseSession descarta la sesión y sus ediciones sin guardar.
// DELETE /api/sessions/:id
func (h *InvoiceHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.editor.Close(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetQuantity godoc
// @Summary      Cambiar la cantidad de una línea
// @Description  Recalcula costo con paquetes, subtotal, envío y totales de la factura.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID de sesión"
// @Param        vendorID   path  string                  true  "Proveedor"
// @Param        productID  path  string                  true  "Producto"
// @Param        body       body  dto.SetQuantityRequest  true  "quantity >= 0"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/vendors/{vendorID}/items/{productID} [put]
func (h *InvoiceHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	view, err := h.editor.SetQuantity(c.Params("id"), c.Params("vendorID"), c.Params("productID"), *in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(view, ""))
}

// RemoveItem quita una línea de la orden.
// DELETE /api/sessions/:id/vendors/:vendorID/items/:productID
func (h *InvoiceHandler) RemoveItem(c *fiber.Ctx) error {
	view, err := h.editor.RemoveItem(c.Params("id"), c.Params("vendorID"), c.Params("productID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(view, ""))
}

// AddItem agrega un producto del catálogo del proveedor con cantidad 1.
// POST /api/sessions/:id/vendors/:vendorID/items
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	view, err := h.editor.AddItem(c.Context(), c.Params("id"), c.Params("vendorID"), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(view, ""))
}

// Save godoc
// @Summary      Guardar la orden de un proveedor
// @Description  Primer guardado crea la orden; los siguientes la reemplazan con control de versión.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id        path  string  true  "ID de sesión"
// @Param        vendorID  path  string  true  "Proveedor"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/vendors/{vendorID}/save [post]
func (h *InvoiceHandler) Save(c *fiber.Ctx) error {
	invoiceID, view, err := h.editor.Save(c.Context(), c.Params("id"), c.Params("vendorID"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(view, invoiceID))
}

// ChangeStatus godoc
// @Summary      Cambiar el estado de la orden
// @Description  Registra la transición en la bitácora. Approved registra las entradas de stock
//
//	la primera vez que se aprueba la orden.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path  string                   true  "ID de sesión"
// @Param        vendorID  path  string                   true  "Proveedor"
// @Param        body      body  dto.ChangeStatusRequest  true  "Pending|Reviewed|Approved|Modified"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/vendors/{vendorID}/status [post]
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	entry, view, err := h.editor.ChangeStatus(
		c.Context(), c.Params("id"), c.Params("vendorID"), entity.InvoiceStatus(in.Status), GetUserID(c),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"transition": dto.ToStatusLogResponse([]entity.StatusLogEntry{entry})[0],
		"session":    sessionResponse(view, entry.InvoiceID),
	})
}

// StatusLog godoc
// @Summary      Bitácora de estados de una orden
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        invoiceID  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.StatusLogEntryResponse
// @Router       /api/invoices/{invoiceID}/status-log [get]
func (h *InvoiceHandler) StatusLog(c *fiber.Ctx) error {
	entries, err := h.editor.History(c.Context(), c.Params("invoiceID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStatusLogResponse(entries))
}

// DownloadPDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        invoiceID  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{invoiceID}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.VendorOrderPDF(c.Context(), c.Params("invoiceID"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}
