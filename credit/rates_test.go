package credit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/credit-engine/credit"
)

// =============================================================================
// ANNUITY PAYMENT TESTS
// =============================================================================

func TestAnnuityPayment_ReferenceScenario(t *testing.T) {
	// 1,000,000 at 25%/year, 12 monthly payments:
	// r = 25/12/100, n = 12 -> A = P*r*(1+r)^n / ((1+r)^n - 1)
	payment, err := credit.AnnuityPayment(decimal.NewFromInt(1_000_000), 25, 12, 1)
	require.NoError(t, err)

	assert.InDelta(t, 95044.20, payment.InexactFloat64(), 0.25)

	// Twelve payments must cover principal plus interest
	total := payment.Mul(decimal.NewFromInt(12))
	assert.True(t, total.GreaterThan(decimal.NewFromInt(1_000_000)),
		"total payments %s should exceed the principal", total)
}

func TestAnnuityPayment_ZeroRateDegeneratesToStraightInstallments(t *testing.T) {
	payment, err := credit.AnnuityPayment(decimal.NewFromInt(12_000), 0, 12, 1)
	require.NoError(t, err)
	assert.True(t, payment.Equal(decimal.NewFromInt(1_000)), "payment = %s, want 1000", payment)
}

func TestAnnuityPayment_NonPositivePeriodCount(t *testing.T) {
	_, err := credit.AnnuityPayment(decimal.NewFromInt(10_000), 10, 12, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, credit.ErrCalculation))
}

// =============================================================================
// PERIOD RATE TESTS
// =============================================================================

func TestRateSimple(t *testing.T) {
	cases := []struct {
		pct  float64
		ppy  int
		want float64
	}{
		{25, 12, 25.0 / 12 / 100},
		{12, 4, 0.03},
		{10, 1, 0.1},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, credit.RateSimple(tc.pct, tc.ppy), 1e-12)
	}
}

func TestRateExact_UsesDaysInDueDateYear(t *testing.T) {
	leap := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	rate, err := credit.RateExact(25, 31, leap)
	require.NoError(t, err)
	assert.InDelta(t, 25*31.0/(366*100), rate, 1e-12)

	regular := time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)
	rate, err = credit.RateExact(25, 31, regular)
	require.NoError(t, err)
	assert.InDelta(t, 25*31.0/(365*100), rate, 1e-12)
}

func TestRateExact_RejectsZeroDate(t *testing.T) {
	_, err := credit.RateExact(25, 31, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, credit.ErrInvalidDate))
}
