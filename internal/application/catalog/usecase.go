package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

// CatalogUseCase consultas de solo lectura sobre proveedores y productos.
// El catálogo se carga con cmd/seed_catalog; la API no lo modifica.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// ListVendors lista los proveedores.
func (uc *CatalogUseCase) ListVendors(ctx context.Context) ([]dto.VendorResponse, error) {
	vendors, err := uc.repo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, dto.ToVendorResponse(v))
	}
	return out, nil
}

// VendorProducts lista los productos de un proveedor. Proveedor inexistente → ErrNotFound.
func (uc *CatalogUseCase) VendorProducts(ctx context.Context, vendorID string) ([]dto.ProductResponse, error) {
	vendor, err := uc.repo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor: %w", err)
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, vendorID)
	}
	products, err := uc.repo.ListVendorProducts(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// ListProducts lista todo el catálogo paginado.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	total := len(products)
	start, end := page.Bounds(total)

	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range products[start:end] {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	r := dto.ToProductResponse(*p)
	return &r, nil
}
