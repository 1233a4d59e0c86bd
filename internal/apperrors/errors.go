// Package apperrors defines the domain error values shared by the fiscal,
// numbering and lifecycle layers. Handlers translate them to HTTP status
// codes; services never return raw storage errors to callers.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrTipoImpositivoInvalido covers both an IVA rate outside {0, 4, 10, 21}
// and an IRPF rate outside {0, 2, 7, 15}.
var ErrTipoImpositivoInvalido = errors.New("tipo impositivo no válido")

// ErrDocumentoVacio indicates an attempt to finalize a document without lines.
var ErrDocumentoVacio = errors.New("el documento no tiene líneas")

// ErrSerieDesconocida indicates that no numbering series is configured for
// the requested document type.
var ErrSerieDesconocida = errors.New("serie no configurada para el tipo de documento")

// ErrDocumentoInmutable indicates an edit on a document that already left the
// "pendiente" state. Issued documents are only changed through explicit
// status transitions, never through line edits.
var ErrDocumentoInmutable = errors.New("el documento ya no admite modificaciones")

// ErrTransicionInvalida indicates a status transition not present in the
// lifecycle table (e.g. marking a paid invoice as accepted).
var ErrTransicionInvalida = errors.New("transición de estado no permitida")

// ErrNoEncontrado indicates that a referenced documento, cliente or serie
// does not exist.
var ErrNoEncontrado = errors.New("recurso no encontrado")

// PersistenceError wraps any storage failure so the caller can distinguish
// infrastructure trouble from domain rule violations.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
