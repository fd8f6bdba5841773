/*
errors.go - Centralized error types for the credit engine

PURPOSE:
  All engine error types in one place. Collaborating packages (store,
  api) wrap these with their own context.

ERROR CATEGORIES:
  1. Validation errors - Parameter or event values out of range
  2. Date errors - Unparseable or unusable dates
  3. Calculation errors - Unexpected numeric failure (NaN/Inf)

PROPAGATION POLICY:
  Validation runs before any schedule work begins and aggregates every
  field violation, not just the first. A mid-generation failure aborts
  the whole operation; the engine never returns a partial schedule.
  The engine is deterministic, so retries belong at the boundary only.

USAGE:
  if errors.Is(err, credit.ErrInvalidParams) {
      var ipe *credit.InvalidParamsError
      errors.As(err, &ipe) // ipe.Fields lists every violation
  }
*/
package credit

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidParams is returned when one or more credit parameters
	// fall outside their validation range.
	ErrInvalidParams = errors.New("invalid credit parameters")

	// ErrInvalidDate is returned when a date cannot be parsed or is unusable.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidEvent is returned when an early-repayment event is malformed.
	ErrInvalidEvent = errors.New("invalid early repayment event")

	// ErrCalculation is returned on unexpected numeric failure, such as
	// NaN or Infinity escaping the annuity formula.
	ErrCalculation = errors.New("calculation error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names a single parameter violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidParamsError aggregates every field-level violation found
// during validation.
type InvalidParamsError struct {
	Fields []FieldError
}

func (e *InvalidParamsError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("invalid credit parameters: %s", strings.Join(msgs, "; "))
}

func (e *InvalidParamsError) Unwrap() error { return ErrInvalidParams }

// CalculationError reports an unexpected numeric failure mid-computation.
type CalculationError struct {
	Op     string
	Detail string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation error in %s: %s", e.Op, e.Detail)
}

func (e *CalculationError) Unwrap() error { return ErrCalculation }
