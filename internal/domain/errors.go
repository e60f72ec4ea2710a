package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrInvalidState = errors.New("operación no permitida en el estado actual del documento")

	// Categorías de la taxonomía; comparar con errors.Is.
	ErrValidation = errors.New("datos inválidos")
	ErrInvariant  = errors.New("violación de invariante")
	ErrStaleData  = errors.New("datos desactualizados")
)

// ValidationError: la entrada del caller viola una precondición. La operación no se intenta.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvariantViolation: el estado resultante rompería una invariante entre entidades
// (cantidad devuelta mayor a la vendida, saldo pendiente negativo, ...).
type InvariantViolation struct {
	Rule   string
	Detail string
}

// NewInvariantViolation construye un InvariantViolation.
func NewInvariantViolation(rule, detail string) *InvariantViolation {
	return &InvariantViolation{Rule: rule, Detail: detail}
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrInvariant, e.Rule, e.Detail)
}

// Is permite errors.Is(err, ErrInvariant).
func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariant }

// StaleDataError: la versión usada por el caller ya no es la vigente. El caller debe
// volver a consultar el documento y reintentar.
type StaleDataError struct {
	Entity   string
	ID       string
	Expected int64
	Actual   int64
}

// NewStaleDataError construye un StaleDataError.
func NewStaleDataError(entity, id string, expected, actual int64) *StaleDataError {
	return &StaleDataError{Entity: entity, ID: id, Expected: expected, Actual: actual}
}

func (e *StaleDataError) Error() string {
	return fmt.Sprintf("%s: %s %s versión esperada %d, actual %d", ErrStaleData, e.Entity, e.ID, e.Expected, e.Actual)
}

// Is permite errors.Is(err, ErrStaleData).
func (e *StaleDataError) Is(target error) bool { return target == ErrStaleData }

// Outcome clasifica un error en una etiqueta estable para logs, métricas y respuestas HTTP.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrInvariant):
		return "invariant_violation"
	case errors.Is(err, ErrStaleData):
		return "stale_data"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	}
	return "error"
}

// IsRejection indica si el error es un rechazo esperado (entrada o estado) y no una falla.
func IsRejection(err error) bool {
	switch Outcome(err) {
	case "ok", "error":
		return false
	}
	return true
}
