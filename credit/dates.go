package credit

import (
	"math"
	"time"
)

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

// IsLeapYear reports whether a Gregorian year is a leap year:
// divisible by 4 and not by 100, unless divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDate advances a date day-by-day until it falls on a weekday.
// Holiday calendars are not modeled.
func WorkingDate(t time.Time) time.Time {
	for IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// DaysBetween returns the whole-day count from a to b, rounded.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// DateOnly normalizes a timestamp to midnight UTC. The engine works in
// calendar dates; times of day never influence a schedule.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 date or date-time string into a
// calendar date. Returns ErrInvalidDate on anything unparseable.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// periodCount maps a fractional term onto a whole number of payment
// periods. Rounds up so a partial trailing period still pays out.
func periodCount(termYears float64, periodsPerYear int) int {
	return int(math.Ceil(termYears * float64(periodsPerYear)))
}

// =============================================================================
// DATE STEPPER - Due dates and day counts per period
// =============================================================================

// PaymentDate carries one period's due dates and the day counts since
// the previous period, tracked separately for the raw calendar date
// and the weekend-adjusted working date so that exact interest accrual
// reflects working-day shifts.
type PaymentDate struct {
	Raw         time.Time
	Working     time.Time
	Days        int
	WorkingDays int
}

// NextDueDate computes the raw due date for a zero-based period index:
// (index+1) * (12/periodsPerYear) months after the start date, keeping
// the start date's day-of-month and clamping to the end of shorter
// months (a day-31 start lands on day 30 in a 30-day month).
func NextDueDate(start time.Time, index, periodsPerYear int) time.Time {
	monthsPerPeriod := 12 / periodsPerYear
	firstOfTarget := time.Date(start.Year(), start.Month()+time.Month((index+1)*monthsPerPeriod),
		1, 0, 0, 0, 0, time.UTC)

	day := start.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PaymentDates computes every period's due dates and day counts for
// the given parameters. When weekend skipping is on, the start date
// itself shifts to its working day before the first day count is
// taken, so the first period accrues from the day money actually moved.
func PaymentDates(params Params) []PaymentDate {
	start := DateOnly(params.StartDate)
	count := params.PeriodCount()

	prevRaw := start
	prevWorking := start
	if params.SkipWeekends {
		prevWorking = WorkingDate(start)
	}

	dates := make([]PaymentDate, 0, count)
	for i := 0; i < count; i++ {
		raw := NextDueDate(start, i, params.PeriodsPerYear)
		working := raw
		if params.SkipWeekends {
			working = WorkingDate(raw)
		}

		dates = append(dates, PaymentDate{
			Raw:         raw,
			Working:     working,
			Days:        DaysBetween(prevRaw, raw),
			WorkingDays: DaysBetween(prevWorking, working),
		})

		prevRaw = raw
		prevWorking = working
	}
	return dates
}
