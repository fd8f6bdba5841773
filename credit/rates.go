package credit

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE CALCULATOR - Annuity payment and period rates
// =============================================================================

// AnnuityPayment derives the fixed periodic payment for an annuity loan:
//
//	A = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the per-period rate and n the total period count. The
// result is rounded to 2 decimals. A zero rate degenerates to straight
// principal installments A = P/n instead of dividing by zero.
func AnnuityPayment(principal decimal.Decimal, annualRatePct float64, periodsPerYear int, termYears float64) (decimal.Decimal, error) {
	n := termYears * float64(periodsPerYear)
	if n <= 0 {
		return decimal.Zero, &CalculationError{Op: "annuity", Detail: "non-positive period count"}
	}

	r := RateSimple(annualRatePct, periodsPerYear)
	if r == 0 {
		return round2(principal.Div(decimal.NewFromFloat(n))), nil
	}

	growth := math.Pow(1+r, n)
	denom := growth - 1
	payment := principal.InexactFloat64() * r * growth / denom
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return decimal.Zero, &CalculationError{Op: "annuity", Detail: "payment is not finite"}
	}

	return round2(decimal.NewFromFloat(payment)), nil
}

// RateSimple is the uniform per-period rate: each period counts as a
// 1/periodsPerYear fraction of the year.
func RateSimple(annualRatePct float64, periodsPerYear int) float64 {
	return annualRatePct / float64(periodsPerYear) / 100
}

// RateExact is the day-exact per-period rate: actual days in the
// period against the actual days in the due date's calendar year.
func RateExact(annualRatePct float64, days int, dueDate time.Time) (float64, error) {
	if dueDate.IsZero() {
		return 0, ErrInvalidDate
	}
	return annualRatePct * float64(days) / (float64(DaysInYear(dueDate.Year())) * 100), nil
}

// periodRates resolves both accrual rates for one period. Both are
// always computed; the active mode only selects which one drives the
// principal/payment split.
func periodRates(params Params, workingDays int, workingDate time.Time) (simple, exact float64, err error) {
	simple = RateSimple(params.AnnualRatePct, params.PeriodsPerYear)
	exact, err = RateExact(params.AnnualRatePct, workingDays, workingDate)
	return simple, exact, err
}
