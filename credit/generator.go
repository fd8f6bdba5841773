package credit

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE GENERATOR - Baseline amortization
// =============================================================================

// Generate produces the baseline payment schedule for the given
// parameters. Validation runs first and aggregates every violation;
// no partial schedule is ever returned.
//
// Each period computes interest under BOTH accrual modes against the
// running balance; the active mode drives the principal/payment split.
// The final period forces principal to the whole remaining balance and
// recomputes the payment as interest + principal, absorbing rounding
// drift so the balance reaches exactly zero.
func Generate(params Params) (Schedule, error) {
	if errs := params.Validate(); len(errs) > 0 {
		return nil, &InvalidParamsError{Fields: errs}
	}

	annuity, err := AnnuityPayment(params.Principal, params.AnnualRatePct, params.PeriodsPerYear, params.TermYears)
	if err != nil {
		return nil, err
	}

	dates := PaymentDates(params)
	schedule := make(Schedule, 0, len(dates))

	// The running balance keeps full precision between periods; only
	// the stored fields are rounded.
	remaining := params.Principal

	for i, d := range dates {
		simpleRate, exactRate, err := periodRates(params, d.WorkingDays, d.Working)
		if err != nil {
			return nil, err
		}

		interestExact := remaining.Mul(decimal.NewFromFloat(exactRate))
		interestSimple := remaining.Mul(decimal.NewFromFloat(simpleRate))
		interest := interestSimple
		if params.Mode == ModeExact {
			interest = interestExact
		}

		last := i == len(dates)-1
		principal := annuity.Sub(interest)
		payment := annuity
		if last {
			principal = remaining
			payment = interest.Add(principal)
		}

		schedule = append(schedule, ScheduleEntry{
			DueDate:        d.Raw,
			WorkingDate:    d.Working,
			Days:           d.Days,
			WorkingDays:    d.WorkingDays,
			Payment:        round2(payment),
			Principal:      round2(principal),
			InterestExact:  round2(interestExact),
			InterestSimple: round2(interestSimple),
			Remaining:      round2(remaining.Sub(principal)),
		})

		remaining = remaining.Sub(principal)
	}

	return schedule, nil
}
