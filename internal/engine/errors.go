package engine

import (
	"errors"
	"fmt"
)

// Local precondition violations. Each one is rejected in place: the session
// header, the ledger and the pending readings are left untouched.
var (
	ErrEstadoInvalido = errors.New("operación no permitida en el estado actual")
	ErrTaraNoFijada   = errors.New("primero debe medir la tara")
	ErrPesoInvalido   = errors.New("capture un peso válido")
	ErrSinProducto    = errors.New("seleccione un producto")
	ErrProductoNoBase = errors.New("el producto no está disponible para pesaje")
	ErrCargaVacia     = errors.New("seleccione al menos un producto")
	ErrLoteVacio      = errors.New("el lote no tiene registros")
	ErrCierreEnCurso  = errors.New("ya hay un cierre de lote en curso")
)

// ErrorValidacion reports which session header fields are missing or wrong
// when a start is refused. The state machine does not transition.
type ErrorValidacion struct {
	Campos map[string]string
}

func (e *ErrorValidacion) Error() string {
	return fmt.Sprintf("datos de sesión incompletos: %d campo(s)", len(e.Campos))
}

// ErrorCommit wraps a failed remote lot commit. By the time the caller sees
// it the session has already rolled back to Activa with all records intact,
// so the operator can retry.
type ErrorCommit struct {
	Causa error
}

func (e *ErrorCommit) Error() string {
	return "no se pudo guardar el lote: " + e.Causa.Error()
}

func (e *ErrorCommit) Unwrap() error { return e.Causa }
