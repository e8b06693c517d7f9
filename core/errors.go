package core

import "github.com/pkg/errors"

// FieldError pins a validation message to the JSON field it concerns.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned on rejected writes (bad ranges, duplicate
// names); the API error handler renders Fields as a field->message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks an unrecoverable integrity failure; the API error handler
// responds with it by signalling a graceful stop.
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
