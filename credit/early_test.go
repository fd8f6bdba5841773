package credit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/credit-engine/credit"
)

// =============================================================================
// EARLY REPAYMENT - SHARED PREAMBLE
// =============================================================================

// aprilEvent lands the day after the April due date, so entries up to
// and including the April payment form the preserved prefix and the
// re-amortized tail starts at the May payment.
func aprilEvent(amount int64, strategy credit.Strategy) credit.Event {
	return credit.Event{
		ID:       "ev-1",
		Date:     time.Date(2024, time.April, 16, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(amount),
		Strategy: strategy,
	}
}

func TestReamortize_EventPastScheduleEndIsNoOp(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	event := credit.Event{
		Date:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(100_000),
		Strategy: credit.StrategyReduceTerm,
	}

	result, err := credit.Reamortize(schedule, event, monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}
	if len(result) != len(schedule) {
		t.Fatalf("no-op event changed schedule length: %d -> %d", len(schedule), len(result))
	}
	for i := range schedule {
		if !result[i].Payment.Equal(schedule[i].Payment) || !result[i].Remaining.Equal(schedule[i].Remaining) {
			t.Errorf("entry %d changed by a no-op event", i)
		}
	}
}

func TestReamortize_PrefixPreservedVerbatim(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	result, err := credit.Reamortize(schedule, aprilEvent(100_000, credit.StrategyReduceTerm), monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}

	// Entries up to the April payment stay untouched
	for i := 0; i < 3; i++ {
		if !result[i].Payment.Equal(schedule[i].Payment) ||
			!result[i].Principal.Equal(schedule[i].Principal) ||
			!result[i].Remaining.Equal(schedule[i].Remaining) {
			t.Errorf("prefix entry %d was modified", i)
		}
	}
}

func TestReamortize_DatesCarriedOverNeverRecomputed(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	result, err := credit.Reamortize(schedule, aprilEvent(100_000, credit.StrategyReducePayment), monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}

	for i := range result {
		if !result[i].DueDate.Equal(schedule[i].DueDate) ||
			!result[i].WorkingDate.Equal(schedule[i].WorkingDate) ||
			result[i].Days != schedule[i].Days ||
			result[i].WorkingDays != schedule[i].WorkingDays {
			t.Errorf("entry %d date fields were recomputed", i)
		}
	}
}

func TestReamortize_EventOnDueDateAffectsThatPayment(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	// An event dated exactly on the April due date re-amortizes from
	// the April payment itself; paying off the balance entering April
	// leaves only the two earlier entries.
	event := credit.Event{
		Date:     time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
		Amount:   schedule[1].Remaining,
		Strategy: credit.StrategyReduceTerm,
	}

	result, err := credit.Reamortize(schedule, event, monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 preserved entries, got %d", len(result))
	}
}

func TestReamortize_UnknownStrategyRejected(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	event := aprilEvent(100_000, "balloon")
	if _, err := credit.Reamortize(schedule, event, monthlyParams()); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

// =============================================================================
// REDUCE TERM STRATEGY
// =============================================================================

func TestReduceTerm_ShortensScheduleKeepsPayment(t *testing.T) {
	// GIVEN: the reference schedule and a 100,000 extra payment in April
	schedule := mustGenerate(t, monthlyParams())

	// WHEN: re-amortizing with term reduction
	result, err := credit.Reamortize(schedule, aprilEvent(100_000, credit.StrategyReduceTerm), monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}

	// THEN: fewer periods, the original payment on every full period,
	// and a final balance of exactly zero
	if len(result) >= len(schedule) {
		t.Fatalf("expected a shorter schedule, got %d entries (was %d)", len(result), len(schedule))
	}

	target := schedule[3].Payment
	for i := 3; i < len(result)-1; i++ {
		if !result[i].Payment.Equal(target) {
			t.Errorf("entry %d payment = %s, want held at %s", i, result[i].Payment, target)
		}
	}

	last := result[len(result)-1]
	if !last.Remaining.IsZero() {
		t.Errorf("final remaining balance = %s, want 0", last.Remaining)
	}
}

func TestReduceTerm_SettlingEventTruncatesToPrefix(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	// An extra payment covering the entire remaining balance
	event := aprilEvent(0, credit.StrategyReduceTerm)
	event.Amount = schedule[2].Remaining

	result, err := credit.Reamortize(schedule, event, monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected the 3 preserved entries, got %d", len(result))
	}
}

// =============================================================================
// REDUCE PAYMENT STRATEGY
// =============================================================================

func TestReducePayment_KeepsTermLowersPayment(t *testing.T) {
	// GIVEN: the reference schedule and a 100,000 extra payment in April
	schedule := mustGenerate(t, monthlyParams())

	// WHEN: re-amortizing with payment reduction
	result, err := credit.Reamortize(schedule, aprilEvent(100_000, credit.StrategyReducePayment), monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}

	// THEN: same number of entries, lower payments from the event on,
	// final balance exactly zero
	if len(result) != len(schedule) {
		t.Fatalf("expected %d entries, got %d", len(schedule), len(result))
	}

	original := schedule[0].Payment
	for i := 3; i < len(result)-1; i++ {
		if !result[i].Payment.LessThan(original) {
			t.Errorf("entry %d payment = %s, want below original %s", i, result[i].Payment, original)
		}
	}

	if !result[len(result)-1].Remaining.IsZero() {
		t.Errorf("final remaining balance = %s, want 0", result[len(result)-1].Remaining)
	}
}

func TestReducePayment_SettlingEventTruncatesToPrefix(t *testing.T) {
	schedule := mustGenerate(t, monthlyParams())

	event := aprilEvent(0, credit.StrategyReducePayment)
	event.Amount = schedule[2].Remaining

	result, err := credit.Reamortize(schedule, event, monthlyParams())
	if err != nil {
		t.Fatalf("Reamortize: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected the 3 preserved entries, got %d", len(result))
	}
}
