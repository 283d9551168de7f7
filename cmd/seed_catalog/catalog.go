package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restock-api/internal/domain/entity"
	"github.com/jhoicas/restock-api/internal/domain/inventory"
)

var (
	vendorHeader  = []string{"id", "name", "shipping_cost", "free_shipping_threshold"}
	productHeader = []string{"id", "vendor_id", "name", "unit", "price", "min_stock", "max_stock", "last_year_prediction", "bundles"}
)

// readRows lee el CSV y valida que la cabecera coincida con want.
func readRows(r io.Reader, want []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(want)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("archivo vacío")
	}
	for i, h := range records[0] {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), want[i]) {
			return nil, fmt.Errorf("cabecera: columna %d es %q, se esperaba %q", i+1, h, want[i])
		}
	}
	return records[1:], nil
}

func parseVendors(r io.Reader) ([]entity.Vendor, error) {
	rows, err := readRows(r, vendorHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Vendor, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		shipping, err := parseMoney(row[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: shipping_cost: %w", line, err)
		}
		threshold, err := parseMoney(row[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: free_shipping_threshold: %w", line, err)
		}
		if strings.TrimSpace(row[0]) == "" {
			return nil, fmt.Errorf("línea %d: id vacío", line)
		}
		out = append(out, entity.Vendor{
			ID:                    strings.TrimSpace(row[0]),
			Name:                  strings.TrimSpace(row[1]),
			ShippingCost:          shipping,
			FreeShippingThreshold: threshold,
		})
	}
	return out, nil
}

func parseProducts(r io.Reader) ([]entity.Product, error) {
	rows, err := readRows(r, productHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		line := i + 2
		p := entity.Product{
			ID:       strings.TrimSpace(row[0]),
			VendorID: strings.TrimSpace(row[1]),
			Name:     strings.TrimSpace(row[2]),
			Unit:     strings.TrimSpace(row[3]),
		}
		if p.ID == "" || p.VendorID == "" {
			return nil, fmt.Errorf("línea %d: id y vendor_id son obligatorios", line)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("línea %d: producto %s repetido", line, p.ID)
		}
		seen[p.ID] = true

		if raw := strings.TrimSpace(row[4]); raw != "" {
			price, err := parseMoney(raw)
			if err != nil {
				return nil, fmt.Errorf("línea %d: price: %w", line, err)
			}
			p.Price = decimal.NewNullDecimal(price)
		}
		ints := []*int{&p.MinStock, &p.MaxStock, &p.LastYearPrediction}
		for j, dst := range ints {
			raw := strings.TrimSpace(row[5+j])
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %s: %w", line, productHeader[5+j], err)
			}
			*dst = n
		}
		bundles, err := parseBundles(row[8])
		if err != nil {
			return nil, fmt.Errorf("línea %d: bundles: %w", line, err)
		}
		if err := inventory.ValidateBundles(bundles); err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		p.Bundles = bundles
		out = append(out, p)
	}
	return out, nil
}

// parseBundles interpreta "12:100|24:180".
func parseBundles(raw string) ([]entity.Bundle, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []entity.Bundle{}, nil
	}
	parts := strings.Split(raw, "|")
	out := make([]entity.Bundle, 0, len(parts))
	for _, part := range parts {
		qtyRaw, priceRaw, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("%q no tiene la forma cantidad:precio", part)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyRaw))
		if err != nil {
			return nil, fmt.Errorf("cantidad %q: %w", qtyRaw, err)
		}
		price, err := parseMoney(priceRaw)
		if err != nil {
			return nil, fmt.Errorf("precio %q: %w", priceRaw, err)
		}
		out = append(out, entity.Bundle{Quantity: qty, Price: price})
	}
	return out, nil
}

// parseMoney acepta coma decimal ("12,50") además de punto.
func parseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("monto negativo %s", raw)
	}
	return d, nil
}

func checkVendorRefs(vendors []entity.Vendor, products []entity.Product) error {
	known := make(map[string]bool, len(vendors))
	for _, v := range vendors {
		known[v.ID] = true
	}
	for _, p := range products {
		if !known[p.VendorID] {
			return fmt.Errorf("producto %s referencia proveedor desconocido %s", p.ID, p.VendorID)
		}
	}
	return nil
}

// writeSQL escribe los INSERT con upsert para que el script sea re-ejecutable.
func writeSQL(w io.Writer, vendors []entity.Vendor, products []entity.Product) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de proveedores y productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	for _, v := range vendors {
		fmt.Fprintf(&b, "INSERT INTO vendors (id, name, shipping_cost, free_shipping_threshold)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, %s)\n", escapeSQL(v.ID), escapeSQL(v.Name),
			v.ShippingCost.StringFixed(2), v.FreeShippingThreshold.StringFixed(2))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, shipping_cost = EXCLUDED.shipping_cost,\n")
		b.WriteString("    free_shipping_threshold = EXCLUDED.free_shipping_threshold;\n")
	}
	b.WriteString("\n")

	for _, p := range products {
		price := "NULL"
		if p.Price.Valid {
			price = p.Price.Decimal.StringFixed(2)
		}
		bundles, err := json.Marshal(p.Bundles)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "INSERT INTO products (id, vendor_id, name, unit, price, bundles, min_stock, max_stock, last_year_prediction)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, '%s'::jsonb, %d, %d, %d)\n",
			escapeSQL(p.ID), escapeSQL(p.VendorID), escapeSQL(p.Name), escapeSQL(p.Unit), price,
			escapeSQL(string(bundles)), p.MinStock, p.MaxStock, p.LastYearPrediction)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET vendor_id = EXCLUDED.vendor_id, name = EXCLUDED.name,\n")
		b.WriteString("    unit = EXCLUDED.unit, price = EXCLUDED.price, bundles = EXCLUDED.bundles,\n")
		b.WriteString("    min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock,\n")
		b.WriteString("    last_year_prediction = EXCLUDED.last_year_prediction, updated_at = now();\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
