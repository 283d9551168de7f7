// issue_token emite un JWT firmado con JWT_SECRET para pruebas locales de la API.
//
// Uso: go run ./cmd/issue_token <user_id> [rol]
// Rol por defecto: compras. Roles: admin, compras, cocina.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/restock-api/pkg/config"
	"github.com/jhoicas/restock-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: issue_token <user_id> [rol]")
		os.Exit(2)
	}
	role := "compras"
	if len(os.Args) > 2 {
		role = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	token, err := jwt.Generate(cfg.JWT.Secret, os.Args[1], role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
