// internal/util/errors.go
// Error aplikasi standar + pemetaan error domain DCA ke kode & HTTP status.

package util

import (
	"errors"
	"fmt"
	"net/http"

	"dca-oilgas/internal/dca"
)

type AppError struct {
	Code    string `json:"error"` // bad_input|not_found|unprocessable|internal
	Message string `json:"message"`
	Model   string `json:"model,omitempty"` // diisi untuk domain error model decline
}

func (e AppError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Status maps the code to an HTTP status.
func (e AppError) Status() int {
	switch e.Code {
	case "bad_input":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "unprocessable":
		return http.StatusUnprocessableEntity
	case "unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func BadInput(msg string) AppError      { return AppError{Code: "bad_input", Message: msg} }
func NotFound(msg string) AppError      { return AppError{Code: "not_found", Message: msg} }
func Unprocessable(msg string) AppError { return AppError{Code: "unprocessable", Message: msg} }
func Unavailable(msg string) AppError   { return AppError{Code: "unavailable", Message: msg} }
func Internal(msg string) AppError      { return AppError{Code: "internal", Message: msg} }

// FromError mengklasifikasikan error pipeline DCA:
//   - selection/window kosong  -> not_found
//   - D tak terestimasi, domain -> unprocessable
//   - parameter invalid         -> bad_input
func FromError(err error) AppError {
	var ae AppError
	if errors.As(err, &ae) {
		return ae
	}
	var de *dca.DomainError
	switch {
	case errors.As(err, &de):
		out := Unprocessable(err.Error())
		out.Model = string(de.Model)
		return out
	case errors.Is(err, dca.ErrEmptySelection), errors.Is(err, dca.ErrEmptyWindow):
		return NotFound(err.Error())
	case errors.Is(err, dca.ErrUndeterminedDecline), errors.Is(err, dca.ErrEmptyGrid):
		return Unprocessable(err.Error())
	case errors.Is(err, dca.ErrInvalidParameter):
		return BadInput(err.Error())
	default:
		return Internal(err.Error())
	}
}
