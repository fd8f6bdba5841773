/*
Package credit implements the annuity credit calculation engine.

PURPOSE:
  This package contains the domain types and algorithms for amortization
  schedules of annuity-style loans: payment date stepping, per-period
  rate derivation, baseline schedule generation, and re-amortization
  under sequences of early-repayment events.

KEY CONCEPTS IN THIS FILE (types.go):
  - Params: Immutable credit parameters for one calculation
  - ScheduleEntry: One payment period of a schedule
  - Schedule: The ordered sequence of entries
  - Event: A single early-repayment event

DESIGN PRINCIPLES:
  1. Purity: Every function maps inputs to outputs with no hidden state
  2. Precision: Uses decimal.Decimal for monetary values; every stored
     monetary field is rounded to 2 decimals where it is computed
  3. Immutability: Re-amortization never mutates the input schedule

USAGE:
  params := credit.Params{
      Principal:      decimal.NewFromInt(1_000_000),
      AnnualRatePct:  25,
      TermYears:      1,
      PeriodsPerYear: 12,
      StartDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
      Mode:           credit.ModeExact,
  }
  schedule, err := credit.Generate(params)

SEE ALSO:
  - dates.go: Payment date stepping and day counts
  - rates.go: Annuity payment and period rates
  - generator.go: Baseline schedule generation
  - early.go: Early-repayment strategies
  - sequencer.go: Folding event sequences over a schedule
*/
package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ACCRUAL MODE - How period interest is derived
// =============================================================================

type Mode string

const (
	// ModeExact accrues interest over the actual days in the period
	// against the actual days in that calendar year.
	ModeExact Mode = "exact"

	// ModeSimple treats every period as a uniform 1/periodsPerYear
	// fraction of a year.
	ModeSimple Mode = "simple"
)

// PeriodsOfYear lists the supported payment frequencies. A frequency
// must divide 12 evenly so that periods map onto whole months.
var PeriodsOfYear = []int{12, 4, 2, 1}

// =============================================================================
// PARAMS - Credit parameters for one calculation
// =============================================================================

type Params struct {
	Principal      decimal.Decimal
	AnnualRatePct  float64
	TermYears      float64
	PeriodsPerYear int
	StartDate      time.Time
	SkipWeekends   bool
	Mode           Mode
}

// PeriodCount returns the number of payment periods the schedule spans.
// A fractional TermYears x PeriodsPerYear product rounds up, so a
// partial trailing period still gets a payment.
func (p Params) PeriodCount() int {
	return periodCount(p.TermYears, p.PeriodsPerYear)
}

// =============================================================================
// SCHEDULE - The unit of record and its ordered sequence
// =============================================================================

// ScheduleEntry is a single payment period. DueDate is the calendar
// due date before weekend adjustment; WorkingDate equals DueDate when
// weekend skipping is off. Monetary fields hold 2-decimal values.
type ScheduleEntry struct {
	DueDate        time.Time       `json:"dueDate"`
	WorkingDate    time.Time       `json:"workingDate"`
	Days           int             `json:"days"`
	WorkingDays    int             `json:"workingDays"`
	Payment        decimal.Decimal `json:"payment"`
	Principal      decimal.Decimal `json:"principal"`
	InterestExact  decimal.Decimal `json:"interestExact"`
	InterestSimple decimal.Decimal `json:"interestSimple"`
	Remaining      decimal.Decimal `json:"remaining"`
}

type Schedule []ScheduleEntry

// =============================================================================
// EARLY REPAYMENT EVENT
// =============================================================================

type Strategy string

const (
	// StrategyReduceTerm keeps the payment amount and shortens the term.
	StrategyReduceTerm Strategy = "reduceTerm"

	// StrategyReducePayment keeps the remaining term and lowers the payment.
	StrategyReducePayment Strategy = "reducePayment"
)

// Event is a single extra payment against the outstanding principal.
// Events carry no computed state; they are pure inputs to re-amortization.
type Event struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Strategy Strategy        `json:"strategy"`
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// round2 is the single rounding rule for stored monetary fields.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// settleEpsilon closes out a reduce-term schedule once the balance
// would drop to a residual at or below one cent.
var settleEpsilon = decimal.RequireFromString("0.01")
