package credit_test

import (
	"testing"
	"time"

	"github.com/warp/credit-engine/credit"
)

// =============================================================================
// CALENDAR TESTS
// =============================================================================

func TestDaysInYear_LeapRule(t *testing.T) {
	cases := []struct {
		year int
		want int
	}{
		{2023, 365},
		{2024, 366},
		{2000, 366}, // divisible by 400
		{1900, 365}, // divisible by 100 but not 400
		{2100, 365},
	}

	for _, tc := range cases {
		if got := credit.DaysInYear(tc.year); got != tc.want {
			t.Errorf("DaysInYear(%d) = %d, want %d", tc.year, got, tc.want)
		}
	}
}

func TestWorkingDate_ShiftsWeekendForward(t *testing.T) {
	// 2024-06-15 is a Saturday
	saturday := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	got := credit.WorkingDate(saturday)
	want := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WorkingDate(Saturday) = %s, want Monday %s", got, want)
	}

	// A weekday stays put
	monday := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	if got := credit.WorkingDate(monday); !got.Equal(monday) {
		t.Errorf("WorkingDate(Monday) = %s, want unchanged", got)
	}
}

func TestDaysBetween(t *testing.T) {
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb15 := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	mar15 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	if got := credit.DaysBetween(jan15, feb15); got != 31 {
		t.Errorf("DaysBetween(Jan 15, Feb 15) = %d, want 31", got)
	}
	// Leap-year February
	if got := credit.DaysBetween(feb15, mar15); got != 29 {
		t.Errorf("DaysBetween(Feb 15, Mar 15) = %d, want 29", got)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), false},
		{"2024-01-15T10:30:00Z", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), false},
		{"not-a-date", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tc := range cases {
		got, err := credit.ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

// =============================================================================
// DATE STEPPER TESTS
// =============================================================================

func TestNextDueDate_PreservesDayOfMonth(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	first := credit.NextDueDate(start, 0, 12)
	if want := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC); !first.Equal(want) {
		t.Errorf("period 0 = %s, want %s", first, want)
	}

	// Quarterly stepping covers 3 months per period
	quarterly := credit.NextDueDate(start, 1, 4)
	if want := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC); !quarterly.Equal(want) {
		t.Errorf("quarterly period 1 = %s, want %s", quarterly, want)
	}
}

func TestNextDueDate_ClampsToMonthEnd(t *testing.T) {
	// Day 31 starting dates clamp in shorter months but recover in longer ones
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		index int
		want  time.Time
	}{
		{0, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)}, // leap February
		{1, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{2, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		if got := credit.NextDueDate(start, tc.index, 12); !got.Equal(tc.want) {
			t.Errorf("period %d = %s, want %s", tc.index, got, tc.want)
		}
	}
}

func TestPaymentDates_MonthlyYear(t *testing.T) {
	// GIVEN: a 1-year monthly loan starting 2024-01-15, no weekend skip
	params := monthlyParams()
	params.SkipWeekends = false

	// WHEN: payment dates are computed
	dates := credit.PaymentDates(params)

	// THEN: 12 periods, raw == working, day counts follow the calendar
	if len(dates) != 12 {
		t.Fatalf("expected 12 periods, got %d", len(dates))
	}
	if dates[0].Days != 31 {
		t.Errorf("first period days = %d, want 31", dates[0].Days)
	}
	if dates[1].Days != 29 {
		t.Errorf("second period days = %d, want 29 (leap February)", dates[1].Days)
	}
	for i, d := range dates {
		if !d.Raw.Equal(d.Working) {
			t.Errorf("period %d: working %s differs from raw %s with skip off", i, d.Working, d.Raw)
		}
		if d.Days != d.WorkingDays {
			t.Errorf("period %d: working days %d differ from raw %d with skip off", i, d.WorkingDays, d.Days)
		}
	}
}

func TestPaymentDates_WeekendSkipShiftsStartAndDueDates(t *testing.T) {
	// GIVEN: a loan starting Saturday 2024-06-15 with weekend skip on
	params := monthlyParams()
	params.StartDate = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	params.SkipWeekends = true

	dates := credit.PaymentDates(params)

	// THEN: first raw due date is Monday 2024-07-15 and needs no shift,
	// but the working day count runs from the shifted start (June 17)
	first := dates[0]
	if want := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC); !first.Raw.Equal(want) {
		t.Fatalf("first raw due date = %s, want %s", first.Raw, want)
	}
	if !first.Working.Equal(first.Raw) {
		t.Errorf("first working date = %s, want %s", first.Working, first.Raw)
	}
	if first.Days != 30 {
		t.Errorf("first raw day count = %d, want 30", first.Days)
	}
	if first.WorkingDays != 28 {
		t.Errorf("first working day count = %d, want 28 (start shifted to Monday)", first.WorkingDays)
	}

	// Every working date must land on a weekday
	for i, d := range dates {
		if credit.IsWeekend(d.Working) {
			t.Errorf("period %d working date %s is a weekend", i, d.Working)
		}
	}
}

func TestPeriodCount_FractionalTermRoundsUp(t *testing.T) {
	cases := []struct {
		term float64
		ppy  int
		want int
	}{
		{1, 12, 12},
		{0.5, 12, 6},
		{0.1, 4, 1},  // 0.4 periods still pays once
		{1.5, 4, 6},
		{2.6, 1, 3},
	}

	for _, tc := range cases {
		p := credit.Params{TermYears: tc.term, PeriodsPerYear: tc.ppy}
		if got := p.PeriodCount(); got != tc.want {
			t.Errorf("PeriodCount(term=%v, ppy=%d) = %d, want %d", tc.term, tc.ppy, got, tc.want)
		}
	}
}
