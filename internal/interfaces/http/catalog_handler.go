package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restock-api/internal/application/catalog"
	"github.com/jhoicas/restock-api/internal/application/dto"
)

// CatalogHandler consultas del catálogo de proveedores y productos (protegido).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListVendors lista los proveedores.
// GET /api/vendors
func (h *CatalogHandler) ListVendors(c *fiber.Ctx) error {
	list, err := h.uc.ListVendors(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// VendorProducts lista los productos de un proveedor.
// GET /api/vendors/:id/products
func (h *CatalogHandler) VendorProducts(c *fiber.Ctx) error {
	list, err := h.uc.VendorProducts(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListProducts lista el catálogo paginado (?limit=&offset=).
// GET /api/products
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	list, err := h.uc.ListProducts(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetProduct obtiene un producto.
// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}
