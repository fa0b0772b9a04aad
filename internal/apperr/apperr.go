// Package apperr define la taxonomía de errores de la API y su mapeo HTTP.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota // input malformado o fuera de rango
	KindAuth                   // token/credenciales inválidas
	KindForbidden              // identidad válida, rol insuficiente
	KindNotFound
	KindConflict    // campo único duplicado (responde 400, no 409)
	KindStore       // falla transaccional del store relacional
	KindUnavailable // document store inalcanzable
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error  { return &Error{Kind: KindValidation, Msg: msg} }
func Auth(msg string) *Error        { return &Error{Kind: KindAuth, Msg: msg} }
func Forbidden(msg string) *Error   { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) *Error    { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error    { return &Error{Kind: KindConflict, Msg: msg} }
func Store(msg string, err error) *Error       { return &Error{Kind: KindStore, Msg: msg, Err: err} }
func Unavailable(msg string, err error) *Error { return &Error{Kind: KindUnavailable, Msg: msg, Err: err} }

// Status devuelve el código HTTP para un error de la taxonomía.
// Errores desconocidos se tratan como falla de store (500).
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Detail devuelve el mensaje para el body {"detail": ...}. En producción
// los errores 5xx se reducen a un mensaje genérico.
func Detail(err error, debug bool) string {
	status := Status(err)
	if status >= 500 && !debug {
		if status == http.StatusServiceUnavailable {
			return "Service unavailable"
		}
		return "Internal server error"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if debug {
		return err.Error()
	}
	return "Internal server error"
}
