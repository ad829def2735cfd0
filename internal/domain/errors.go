package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrUsernameTaken = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrInvalidState  = errors.New("operación no permitida en el estado actual de la sesión")
	ErrValidation    = errors.New("validación fallida")
	ErrPersistence   = errors.New("fallo de persistencia")
)

// Códigos de ValidationError.
const (
	CodeIncomplete           = "INCOMPLETE"
	CodeMissingObservation   = "MISSING_OBSERVATION"
	CodeMissingJustification = "MISSING_JUSTIFICATION"
	CodeMissingPersonnel     = "MISSING_PERSONNEL"
	CodeUnknownItem          = "UNKNOWN_ITEM"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidDate          = "INVALID_DATE"
)

// ValidationError falla de validación recuperable localmente; nunca llega a persistencia.
// errors.Is(err, ErrValidation) es verdadero.
type ValidationError struct {
	Code    string
	Message string
	Missing int      // ítems sin responder (CodeIncomplete)
	ItemIDs []string // ítems afectados
}

func (e *ValidationError) Error() string {
	if len(e.ItemIDs) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.ItemIDs, ", ")
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewIncompleteError cuántos ítems del snapshot quedaron sin responder.
func NewIncompleteError(missing int, itemIDs []string) *ValidationError {
	return &ValidationError{
		Code:    CodeIncomplete,
		Message: fmt.Sprintf("faltan %d ítem(s) por conferir", missing),
		Missing: missing,
		ItemIDs: itemIDs,
	}
}

// NewValidationError construye un ValidationError genérico.
func NewValidationError(code, message string, itemIDs ...string) *ValidationError {
	return &ValidationError{Code: code, Message: message, ItemIDs: itemIDs}
}

// PersistenceError fallo de lectura o escritura remota; el usuario puede reintentar.
// Stale indica que se respondió con el último snapshot válido en caché.
type PersistenceError struct {
	Op    string
	Stale bool
	Err   error
}

func (e *PersistenceError) Error() string {
	msg := "persistencia: " + e.Op
	if e.Stale {
		msg += " (usando datos en caché)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap expone la causa original.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPersistence).
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError envuelve un error de infraestructura.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
