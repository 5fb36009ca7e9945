// internal/dca/errors.go
package dca

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Gunakan errors.Is untuk klasifikasi.
var (
	// ErrEmptySelection: salah satu langkah filter menghasilkan 0 baris.
	ErrEmptySelection = errors.New("empty selection")

	// ErrEmptyWindow: window tanggal tidak menyisakan observasi.
	ErrEmptyWindow = errors.New("empty window")

	// ErrUndeterminedDecline: D tidak bisa diestimasi (sum(t^2) = 0); D harus diisi manual.
	ErrUndeterminedDecline = errors.New("undetermined decline: at least two observations required")

	// ErrDomain: rumus model tidak terdefinisi untuk parameter yang diberikan.
	ErrDomain = errors.New("decline model domain error")

	// ErrInvalidParameter: parameter di luar rentang yang diizinkan.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyGrid: grid bulanan tidak memuat satu pun awal bulan.
	ErrEmptyGrid = errors.New("empty projection grid")
)

// SelectionError menandai level filter yang mengosongkan dataset.
type SelectionError struct {
	Level string // field|reservoir|well|fluid|window
	Value string
	Err   error
}

func (e *SelectionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v at %s", e.Err, e.Level)
	}
	return fmt.Sprintf("%v at %s=%q", e.Err, e.Level, e.Value)
}

func (e *SelectionError) Unwrap() error { return e.Err }

// DomainError reports which decline model rejected the parameters.
type DomainError struct {
	Model  Model
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s decline: %s", e.Model, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// WarningKind jenis temuan kualitas data.
type WarningKind string

const (
	WarnZeroRateSubstituted WarningKind = "zero_rate_substituted"
	WarnZeroRateExcluded    WarningKind = "zero_rate_excluded"
	WarnDuplicateDate       WarningKind = "duplicate_date"
)

// Warning is a data-quality finding. It is not an error: the computation went
// ahead, but the result is biased by the condition it describes.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Date    time.Time   `json:"date"`
	T       int         `json:"t"`
	Message string      `json:"message"`
}
