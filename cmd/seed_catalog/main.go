// seed_catalog genera el script SQL que carga proveedores y productos a partir de dos CSV
// exportados de la hoja de compras del restaurante.
//
// Uso: go run ./cmd/seed_catalog vendors.csv products.csv [latin1]
//
//	vendors.csv:  id,name,shipping_cost,free_shipping_threshold
//	products.csv: id,vendor_id,name,unit,price,min_stock,max_stock,last_year_prediction,bundles
//
// bundles tiene la forma "12:100|24:180" (cantidad:precio). price vacío = sin precio.
// Con "latin1" los archivos se leen como Windows-1252 (exportación de Excel en español).
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog vendors.csv products.csv [latin1]")
		os.Exit(2)
	}
	latin1 := len(os.Args) > 3 && strings.EqualFold(os.Args[3], "latin1")

	vendors, err := readFile(os.Args[1], latin1, parseVendors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Proveedores: %v\n", err)
		os.Exit(1)
	}
	products, err := readFile(os.Args[2], latin1, parseProducts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Productos: %v\n", err)
		os.Exit(1)
	}
	if err := checkVendorRefs(vendors, products); err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo inconsistente: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, vendors, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d proveedores, %d productos\n", outPath, len(vendors), len(products))
}

// readFile abre path y lo pasa a parse, decodificando Windows-1252 si latin1.
func readFile[T any](path string, latin1 bool, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}
	return parse(r)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
