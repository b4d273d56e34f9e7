package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores del libro de movimientos de inventario. Todos abortan el movimiento completo.
var (
	ErrUnknownItem             = errors.New("ítem desconocido")
	ErrInvalidLocation         = errors.New("ubicación inválida")
	ErrLocationRequired        = errors.New("ubicación requerida")
	ErrSameLocation            = errors.New("origen y destino deben ser distintos")
	ErrInvalidQuantity         = errors.New("la cantidad debe ser mayor que cero")
	ErrUnsupportedMovementType = errors.New("tipo de movimiento no soportado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrEmptyMovement           = errors.New("el movimiento debe tener al menos una línea")
)

// ErrLockTimeout es transitorio: contención de bloqueos o deadlock en el motor de BD.
// La unidad de trabajo ya hizo rollback; el cliente puede reintentar la misma petición.
var ErrLockTimeout = errors.New("tiempo de espera de bloqueo agotado, reintente")

// FieldError ubica un error de dominio en una línea (1-based) y un campo del request.
// Line = 0 indica un campo de la cabecera del movimiento.
type FieldError struct {
	Line  int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("línea %d, %s: %v", e.Line, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// LineErr envuelve err con la línea y el campo que lo causaron.
func LineErr(line int, field string, err error) error {
	return &FieldError{Line: line, Field: field, Err: err}
}

// IsRejection indica si err es un rechazo de validación (no un fallo de infraestructura).
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrUnknownItem, ErrInvalidLocation, ErrLocationRequired, ErrSameLocation,
		ErrInvalidQuantity, ErrUnsupportedMovementType, ErrInsufficientStock,
		ErrEmptyMovement, ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
