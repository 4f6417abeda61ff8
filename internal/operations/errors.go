package operations

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrParse      = errors.New("parse failed")
	ErrConversion = errors.New("conversion failed")
	ErrResource   = errors.New("resource failure")
)

// Kind classifies a Failure. The set is closed.
type Kind string

const (
	KindValidation Kind = "validation"
	KindParse      Kind = "parse"
	KindConversion Kind = "conversion"
	KindResource   Kind = "resource"
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindParse:
		return ErrParse
	case KindConversion:
		return ErrConversion
	default:
		return ErrResource
	}
}

// Failure is the error every operation returns. Message is suitable for
// display; Err carries the underlying cause when there is one.
type Failure struct {
	Operation Name
	Kind      Kind
	Message   string
	Err       error
}

func (f *Failure) Error() string {
	return f.Message
}

// Unwrap exposes both the kind sentinel and the cause, so errors.Is matches
// either.
func (f *Failure) Unwrap() []error {
	errs := []error{f.Kind.sentinel()}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// MapHTTPStatus maps operation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrParse), errors.Is(err, ErrConversion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func invalid(op Name, message string, cause error) *Failure {
	return &Failure{
		Operation: op,
		Kind:      KindValidation,
		Message:   message,
		Err:       cause,
	}
}

// fail builds an engine-side failure. The message carries the operation's
// prefix followed by the cause.
func fail(op Name, kind Kind, err error) *Failure {
	return &Failure{
		Operation: op,
		Kind:      kind,
		Message:   op.prefix() + err.Error(),
		Err:       err,
	}
}
