package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const productColumns = `id, vendor_id, name, unit, price, bundles, min_stock, max_stock, last_year_prediction, created_at, updated_at`

// ListVendors lista los proveedores por nombre.
func (r *CatalogRepo) ListVendors(ctx context.Context) ([]entity.Vendor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, shipping_cost, free_shipping_threshold FROM vendors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Vendor, 0)
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.ShippingCost, &v.FreeShippingThreshold); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetVendor obtiene un proveedor por ID (nil si no existe).
func (r *CatalogRepo) GetVendor(ctx context.Context, id string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(ctx,
		`SELECT id, name, shipping_cost, free_shipping_threshold FROM vendors WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.ShippingCost, &v.FreeShippingThreshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// ListProducts lista todo el catálogo por nombre.
func (r *CatalogRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
}

// ListVendorProducts lista los productos de un proveedor.
func (r *CatalogRepo) ListVendorProducts(ctx context.Context, vendorID string) ([]entity.Product, error) {
	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products WHERE vendor_id = $1 ORDER BY name, id`, vendorID)
}

// GetProduct obtiene un producto por ID (nil si no existe).
func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *CatalogRepo) listProducts(ctx context.Context, query string, args ...any) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var bundles []byte
	if err := row.Scan(
		&p.ID, &p.VendorID, &p.Name, &p.Unit, &p.Price, &bundles,
		&p.MinStock, &p.MaxStock, &p.LastYearPrediction, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b, err := decodeBundles(bundles)
	if err != nil {
		return nil, err
	}
	p.Bundles = b
	return &p, nil
}
