package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/restock-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// encodeBundles serializa las presentaciones para la columna JSONB.
func encodeBundles(b []entity.Bundle) ([]byte, error) {
	if b == nil {
		b = []entity.Bundle{}
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundles: %w", err)
	}
	return raw, nil
}

// decodeBundles lee la columna JSONB; NULL o vacío equivale a "sin bundles".
func decodeBundles(raw []byte) ([]entity.Bundle, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b []entity.Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode bundles: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

// dateOnly normaliza a la fecha calendario (columna DATE).
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
