package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports client-side precondition failures before any
// network call is made.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// DisplayableError is implemented by errors that already carry a
// human-readable message (the gateway's normalized API errors).
type DisplayableError interface {
	Display() string
}

// DisplayError coalesces any failure into the single string a banner shows:
// normalized API errors and validation errors verbatim, everything else the
// generic fallback.
func DisplayError(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch cause := errors.Cause(err).(type) {
	case DisplayableError:
		if msg := cause.Display(); msg != "" {
			return msg
		}
	case *ValidationError:
		return cause.Error()
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
