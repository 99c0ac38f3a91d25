package apierror

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidacion   = errors.New("validacion")
	ErrNoEncontrado = errors.New("no encontrado")
	ErrDuplicado    = errors.New("duplicado")
	ErrCredenciales = errors.New("credenciales")
	ErrRemoto       = errors.New("almacen remoto")
)

// Error is a user-facing message tagged with a kind.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

func Validacion(msg string) error   { return &Error{kind: ErrValidacion, msg: msg} }
func NoEncontrado(msg string) error { return &Error{kind: ErrNoEncontrado, msg: msg} }
func Duplicado(msg string) error    { return &Error{kind: ErrDuplicado, msg: msg} }
func Credenciales(msg string) error { return &Error{kind: ErrCredenciales, msg: msg} }

// Remoto wraps a failure of the shared store. The cause is kept for logs only.
func Remoto(msg string, cause error) error {
	return &Error{kind: ErrRemoto, msg: msg, cause: cause}
}

// Status maps an error to its HTTP status and the message safe to show.
func Status(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Error interno del servidor"
	}
	switch e.kind {
	case ErrValidacion:
		return http.StatusUnprocessableEntity, e.msg
	case ErrNoEncontrado:
		return http.StatusNotFound, e.msg
	case ErrDuplicado:
		return http.StatusConflict, e.msg
	case ErrCredenciales:
		return http.StatusUnauthorized, e.msg
	case ErrRemoto:
		return http.StatusBadGateway, e.msg
	}
	return http.StatusInternalServerError, "Error interno del servidor"
}
