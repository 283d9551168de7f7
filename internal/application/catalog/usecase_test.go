package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restock-api/internal/application/catalog"
	"github.com/jhoicas/restock-api/internal/application/dto"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

type stubCatalog struct {
	vendors  []entity.Vendor
	products []entity.Product
}

func (s *stubCatalog) ListVendors(context.Context) ([]entity.Vendor, error) { return s.vendors, nil }
func (s *stubCatalog) ListProducts(context.Context) ([]entity.Product, error) {
	return s.products, nil
}
func (s *stubCatalog) ListVendorProducts(_ context.Context, vendorID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range s.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *stubCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}
func (s *stubCatalog) GetVendor(_ context.Context, id string) (*entity.Vendor, error) {
	for _, v := range s.vendors {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, nil
}

func newStub() *stubCatalog {
	return &stubCatalog{
		vendors: []entity.Vendor{
			{ID: "meat", Name: "Carnes", ShippingCost: decimal.NewFromInt(15), FreeShippingThreshold: decimal.NewFromInt(150)},
			{ID: "dry", Name: "Secos"},
		},
		products: []entity.Product{
			{ID: "chicken", VendorID: "meat", Name: "Pollo", Price: decimal.NewNullDecimal(decimal.NewFromInt(10))},
			{ID: "oil", VendorID: "dry", Name: "Aceite"},
			{ID: "flour", VendorID: "dry", Name: "Harina"},
		},
	}
}

// ──── Tests CatalogUseCase ────

func TestVendorProducts(t *testing.T) {
	uc := catalog.NewCatalogUseCase(newStub())

	list, err := uc.VendorProducts(context.Background(), "dry")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Price, "producto sin precio → price null")
	assert.NotNil(t, list[0].Bundles)
}

func TestVendorProducts_ProveedorInexistente(t *testing.T) {
	uc := catalog.NewCatalogUseCase(newStub())
	_, err := uc.VendorProducts(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListProducts_Paginacion(t *testing.T) {
	uc := catalog.NewCatalogUseCase(newStub())

	page, err := uc.ListProducts(context.Background(), dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "oil", page.Items[0].ID)

	past, err := uc.ListProducts(context.Background(), dto.PageRequest{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Equal(t, 20, past.Page.Limit, "limit por defecto")

	capped, err := uc.ListProducts(context.Background(), dto.PageRequest{Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, capped.Page.Limit, "limit acotado")
	assert.Equal(t, 0, capped.Page.Offset)
	assert.Len(t, capped.Items, 3)
}

func TestGetProduct(t *testing.T) {
	uc := catalog.NewCatalogUseCase(newStub())

	p, err := uc.GetProduct(context.Background(), "chicken")
	require.NoError(t, err)
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(10)))

	_, err = uc.GetProduct(context.Background(), "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListVendors(t *testing.T) {
	list, err := catalog.NewCatalogUseCase(newStub()).ListVendors(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Carnes", list[0].Name)
}
