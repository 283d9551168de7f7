package repository

import (
	"context"

	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// CatalogRepository puerto de solo lectura sobre productos y proveedores.
type CatalogRepository interface {
	ListVendors(ctx context.Context) ([]entity.Vendor, error)
	ListVendorProducts(ctx context.Context, vendorID string) ([]entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	GetVendor(ctx context.Context, id string) (*entity.Vendor, error)
}
