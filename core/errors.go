package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

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

// UndefinedColumnError reports a store read/write that referenced a column
// the remote schema does not have (yet). Callers use it to degrade
// gracefully instead of failing the whole operation.
type UndefinedColumnError struct {
	Column string
}

func (err *UndefinedColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist", err.Column)
}

func IsUndefinedColumn(err error) bool {
	_, ok := errors.Cause(err).(*UndefinedColumnError)
	return ok
}

// ConfigurationError reports a missing remote table or similar operator-level
// misconfiguration. Its message is surfaced to the user verbatim.
type ConfigurationError struct {
	message string
}

func NewConfigurationError(msg string) error {
	return &ConfigurationError{message: msg}
}

func (err *ConfigurationError) Error() string {
	return err.message
}

func IsConfiguration(err error) bool {
	_, ok := errors.Cause(err).(*ConfigurationError)
	return ok
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
