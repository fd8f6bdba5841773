package credit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EARLY-REPAYMENT RE-AMORTIZER
// =============================================================================
//
// Both strategies share the same preamble: find the first entry whose
// working due date is on or after the event date, keep everything
// before it verbatim, and re-amortize the tail from the preceding
// entry's stored balance minus the event amount. An event dated past
// the schedule's end is a silent no-op. An event that clears the whole
// balance settles the loan: the schedule truncates to the preserved
// prefix under either strategy.
//
// Re-amortization only overwrites the financial fields. Dates and day
// counts always carry over from the input schedule.

// Reamortize applies a single early-repayment event to a schedule
// under the event's strategy.
func Reamortize(schedule Schedule, event Event, params Params) (Schedule, error) {
	switch event.Strategy {
	case StrategyReduceTerm:
		return reduceTerm(schedule, event, params)
	case StrategyReducePayment:
		return reducePayment(schedule, event, params)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidEvent, event.Strategy)
	}
}

// entryIndexAt finds the first entry due (working date) on or after
// the event date. Returns -1 when the event falls past the schedule.
func entryIndexAt(schedule Schedule, event Event) int {
	for i, e := range schedule {
		if !e.WorkingDate.Before(event.Date) {
			return i
		}
	}
	return -1
}

// balanceEntering is the balance the re-amortized tail starts from:
// the preceding entry's stored balance, or the original principal when
// the event lands on the very first entry, minus the event amount.
func balanceEntering(schedule Schedule, idx int, event Event, params Params) decimal.Decimal {
	remaining := params.Principal
	if idx > 0 {
		remaining = schedule[idx-1].Remaining
	}
	return remaining.Sub(event.Amount)
}

// reduceTerm keeps the payment fixed at the first affected period's
// amount and shortens the schedule. Once the balance after a period's
// principal would be a cent or less, that period becomes the final one
// and everything after it is discarded.
func reduceTerm(schedule Schedule, event Event, params Params) (Schedule, error) {
	idx := entryIndexAt(schedule, event)
	if idx == -1 {
		return schedule, nil
	}

	result := append(Schedule{}, schedule[:idx]...)

	remaining := balanceEntering(schedule, idx, event, params)
	if remaining.Sign() <= 0 {
		return result, nil
	}

	targetPayment := schedule[idx].Payment

	for i := idx; i < len(schedule); i++ {
		entry := schedule[i]

		simpleRate, exactRate, err := periodRates(params, entry.WorkingDays, entry.WorkingDate)
		if err != nil {
			return nil, err
		}

		interestExact := remaining.Mul(decimal.NewFromFloat(exactRate))
		interestSimple := remaining.Mul(decimal.NewFromFloat(simpleRate))
		interest := interestSimple
		if params.Mode == ModeExact {
			interest = interestExact
		}

		principal := targetPayment.Sub(interest)

		if remaining.Sub(principal).LessThanOrEqual(settleEpsilon) {
			principal = remaining
			entry.Payment = round2(interest.Add(principal))
			entry.Principal = round2(principal)
			entry.InterestExact = round2(interestExact)
			entry.InterestSimple = round2(interestSimple)
			entry.Remaining = decimal.Zero
			result = append(result, entry)
			break
		}

		entry.Payment = targetPayment
		entry.Principal = round2(principal)
		entry.InterestExact = round2(interestExact)
		entry.InterestSimple = round2(interestSimple)
		entry.Remaining = round2(remaining.Sub(principal))
		result = append(result, entry)

		remaining = remaining.Sub(principal)
	}

	return result, nil
}

// reducePayment keeps the remaining period count and re-derives a new
// annuity payment over the reduced balance. The schedule's last period
// mirrors the generator's final-period rule.
func reducePayment(schedule Schedule, event Event, params Params) (Schedule, error) {
	idx := entryIndexAt(schedule, event)
	if idx == -1 {
		return schedule, nil
	}

	result := append(Schedule{}, schedule[:idx]...)

	remaining := balanceEntering(schedule, idx, event, params)
	if remaining.Sign() <= 0 {
		// The event settles the loan outright; there is nothing left
		// to spread over the remaining periods.
		return result, nil
	}

	periodsLeft := len(schedule) - idx
	newAnnuity, err := AnnuityPayment(remaining, params.AnnualRatePct, params.PeriodsPerYear,
		float64(periodsLeft)/float64(params.PeriodsPerYear))
	if err != nil {
		return nil, err
	}

	for i := idx; i < len(schedule); i++ {
		entry := schedule[i]

		simpleRate, exactRate, err := periodRates(params, entry.WorkingDays, entry.WorkingDate)
		if err != nil {
			return nil, err
		}

		interestExact := remaining.Mul(decimal.NewFromFloat(exactRate))
		interestSimple := remaining.Mul(decimal.NewFromFloat(simpleRate))
		interest := interestSimple
		if params.Mode == ModeExact {
			interest = interestExact
		}

		last := i == len(schedule)-1
		principal := newAnnuity.Sub(interest)
		payment := newAnnuity
		if last {
			principal = remaining
			payment = interest.Add(principal)
		}

		entry.Payment = round2(payment)
		entry.Principal = round2(principal)
		entry.InterestExact = round2(interestExact)
		entry.InterestSimple = round2(interestSimple)
		entry.Remaining = round2(remaining.Sub(principal))
		result = append(result, entry)

		remaining = remaining.Sub(principal)
	}

	return result, nil
}
