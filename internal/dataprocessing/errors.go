package dataprocessing

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors of the statistics pipeline. Typed errors below unwrap to them
// so callers can branch with errors.Is.
var (
	// ErrEmptyResult signals that the requested slice has no rows. It is a
	// success path: callers produce an empty output.
	ErrEmptyResult = errors.New("empty result")

	ErrParse          = errors.New("parse error")
	ErrCurrencyLookup = errors.New("currency lookup failed")
	ErrSchema         = errors.New("schema error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidQuery   = errors.New("invalid query")
)

// ParseError is returned for malformed query parameters
type ParseError struct {
	Param string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Param, e.Value, e.Err)
}

// Unwrap allows errors.Is(err, ErrParse)
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// LookupError is returned when a currency has no closing price in the active window
type LookupError struct {
	Currency string
	From     time.Time
	To       time.Time
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no USD value for currency %s between %s and %s",
		e.Currency, e.From.Format(dateLayout), e.To.Format(dateLayout))
}

// Unwrap allows errors.Is(err, ErrCurrencyLookup)
func (e *LookupError) Unwrap() error {
	return ErrCurrencyLookup
}

// SchemaError is returned by the loader when a source table is missing a
// required column or holds a value of the wrong type.
type SchemaError struct {
	Source string
	Column string
	Row    int // 1-based data row, 0 when the header itself is at fault
	Err    error
}

func (e *SchemaError) Error() string {
	switch {
	case e.Row == 0 && e.Err == nil:
		return fmt.Sprintf("%s: missing required column %q", e.Source, e.Column)
	case e.Row == 0:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("%s: row %d column %q: %v", e.Source, e.Row, e.Column, e.Err)
	}
}

// Unwrap allows errors.Is(err, ErrSchema)
func (e *SchemaError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSchema}
	}
	return []error{ErrSchema, e.Err}
}
