package credit

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALIDATION LIMITS
// =============================================================================

var (
	MinPrincipal = decimal.NewFromInt(1_000)
	MaxPrincipal = decimal.NewFromInt(100_000_000)
)

const (
	MinAnnualRatePct = 0.1
	MaxAnnualRatePct = 100.0
	MinTermYears     = 0.1
	MaxTermYears     = 50.0
)

// =============================================================================
// PARAMETER VALIDATION
// =============================================================================

// Validate checks every parameter against its range and returns the
// full list of violations. An empty result means the parameters are
// safe to generate from.
func (p Params) Validate() []FieldError {
	var errs []FieldError

	if p.Principal.LessThan(MinPrincipal) {
		errs = append(errs, FieldError{Field: "principal",
			Message: fmt.Sprintf("must be at least %s", MinPrincipal)})
	}
	if p.Principal.GreaterThan(MaxPrincipal) {
		errs = append(errs, FieldError{Field: "principal",
			Message: fmt.Sprintf("must be at most %s", MaxPrincipal)})
	}

	if p.AnnualRatePct < MinAnnualRatePct {
		errs = append(errs, FieldError{Field: "annualRatePct",
			Message: fmt.Sprintf("must be at least %v%%", MinAnnualRatePct)})
	}
	if p.AnnualRatePct > MaxAnnualRatePct {
		errs = append(errs, FieldError{Field: "annualRatePct",
			Message: fmt.Sprintf("must be at most %v%%", MaxAnnualRatePct)})
	}

	if p.TermYears < MinTermYears {
		errs = append(errs, FieldError{Field: "termYears",
			Message: fmt.Sprintf("must be at least %v years", MinTermYears)})
	}
	if p.TermYears > MaxTermYears {
		errs = append(errs, FieldError{Field: "termYears",
			Message: fmt.Sprintf("must be at most %v years", MaxTermYears)})
	}

	if !slices.Contains(PeriodsOfYear, p.PeriodsPerYear) {
		errs = append(errs, FieldError{Field: "periodsPerYear",
			Message: fmt.Sprintf("must be one of %v", PeriodsOfYear)})
	}

	if p.StartDate.IsZero() {
		errs = append(errs, FieldError{Field: "startDate", Message: "is required"})
	}

	if p.Mode != ModeExact && p.Mode != ModeSimple {
		errs = append(errs, FieldError{Field: "mode",
			Message: fmt.Sprintf("must be %q or %q", ModeExact, ModeSimple)})
	}

	return errs
}

// =============================================================================
// EVENT VALIDATION
// =============================================================================

// ValidateEventAmount checks an early-repayment amount against the
// outstanding balance at the event date. Boundary callers run this on
// insert; the re-amortizer itself trusts its inputs.
func ValidateEventAmount(amount, remainingDebt decimal.Decimal) []FieldError {
	var errs []FieldError
	if amount.Sign() <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "must be positive"})
	}
	if amount.GreaterThan(remainingDebt) {
		errs = append(errs, FieldError{Field: "amount", Message: "must not exceed the remaining debt"})
	}
	return errs
}

// Validate checks an event's fields in isolation.
func (e Event) Validate() []FieldError {
	var errs []FieldError
	if e.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "is required"})
	}
	if e.Amount.Sign() <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "must be positive"})
	}
	if e.Strategy != StrategyReduceTerm && e.Strategy != StrategyReducePayment {
		errs = append(errs, FieldError{Field: "strategy",
			Message: fmt.Sprintf("must be %q or %q", StrategyReduceTerm, StrategyReducePayment)})
	}
	return errs
}
