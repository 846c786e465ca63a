// Package domain holds shared domain types and the error taxonomy used
// across modules.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookups that require the record to exist.
var (
	ErrStockNotFound     = errors.New("stock not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrZeroPurchasePrice is returned by return-percentage calculations
	// when the purchase price is zero and the ratio is undefined.
	ErrZeroPurchasePrice = errors.New("return percentage undefined: purchase price is zero")
)

// ValidationError describes invalid input to an operation. It is returned
// before any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStockNotFound) || errors.Is(err, ErrPortfolioNotFound)
}
