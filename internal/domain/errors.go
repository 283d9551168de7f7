package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// ErrInvalidInput cubre los errores de validación, ErrNotFound las referencias
// desconocidas y ErrConflict las versiones obsoletas al guardar.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrDuplicateItem se reporta al agregar un producto que ya está en la orden.
	// Envuelve ErrInvalidInput para que errors.Is lo trate como error de validación.
	ErrDuplicateItem = fmt.Errorf("%w: el producto ya está en la orden", ErrInvalidInput)
)
