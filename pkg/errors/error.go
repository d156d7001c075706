// Package errors provides coded errors for the indicator pipeline.
//
// Codes are grouped by range:
//   - 1-99: unknown
//   - 100-199: validation of parameters, series and history
//   - 200-299: data sources (unavailable, empty, query failures)
//   - 300-399: indicator registry lookups
//   - 700-799: provider transport, parsing and export
//
// Adapters raise market data codes; the source layer rewraps them so callers only
// need to check the outermost code:
//
//	series, err := source.Fetch(ctx, req)
//	switch {
//	case errors.IsSourceUnavailable(err):
//	case errors.IsEmptySeries(err):
//	}
package errors

import (
	"errors"
	"fmt"
)

// Coded is implemented by every error of this package.
type Coded interface {
	error
	ErrorCode() ErrorCode
}

var (
	// ErrSourceUnavailable matches any error carrying ErrCodeDataSourceUnavailable.
	ErrSourceUnavailable = New(ErrCodeDataSourceUnavailable, "data source unavailable")
	// ErrEmptySeries matches any error carrying ErrCodeEmptySeries.
	ErrEmptySeries = New(ErrCodeEmptySeries, "empty series")
)

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an Error around cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf creates an Error around cause with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

// ErrorCode returns the code of the error.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code, so the package sentinels can be used
// with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == e.Code
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost coded error in err's chain, or
// ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}

	return ErrCodeUnknown
}

// HasCode reports whether the outermost code of err is code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

// IsSourceUnavailable reports whether the provider could not be reached or its
// response could not be decoded.
func IsSourceUnavailable(err error) bool {
	return HasCode(err, ErrCodeDataSourceUnavailable)
}

// IsEmptySeries reports whether the provider returned no periods.
func IsEmptySeries(err error) bool {
	return HasCode(err, ErrCodeEmptySeries)
}

// InsufficientDataError is returned when a series is too short for an indicator
// column to hold any value.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	// Column is the first indicator column found undefined.
	Column string
}

// NewInsufficientDataError creates an InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, column string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Column:   column,
	}
}

func (e *InsufficientDataError) Error() string {
	subject := e.Column
	if subject == "" {
		subject = "series"
	}

	if e.Symbol != "" {
		subject = e.Symbol + " " + subject
	}

	return fmt.Sprintf("[%d] insufficient history: %s is undefined over %d periods, need at least %d",
		ErrCodeInsufficientData, subject, e.Actual, e.Required)
}

// ErrorCode returns ErrCodeInsufficientData.
func (e *InsufficientDataError) ErrorCode() ErrorCode {
	return ErrCodeInsufficientData
}

// IsInsufficientDataError reports whether err's chain holds an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
