package credit

import "github.com/shopspring/decimal"

// =============================================================================
// SCHEDULE SUMMARY - Derived totals for presentation
// =============================================================================

// Summary holds the derived totals of a schedule. Overpayment equals
// total interest; OverpaymentPct relates it to the principal repaid.
type Summary struct {
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	Overpayment    decimal.Decimal `json:"overpayment"`
	OverpaymentPct decimal.Decimal `json:"overpaymentPct"`
	PaymentCount   int             `json:"paymentCount"`
}

// Summarize computes the totals over a schedule's stored (rounded)
// fields. An empty schedule yields an all-zero summary.
func Summarize(schedule Schedule) Summary {
	if len(schedule) == 0 {
		return Summary{
			TotalPayments:  decimal.Zero,
			TotalPrincipal: decimal.Zero,
			TotalInterest:  decimal.Zero,
			Overpayment:    decimal.Zero,
			OverpaymentPct: decimal.Zero,
		}
	}

	totalPayments := decimal.Zero
	totalPrincipal := decimal.Zero
	for _, e := range schedule {
		totalPayments = totalPayments.Add(e.Payment)
		totalPrincipal = totalPrincipal.Add(e.Principal)
	}

	totalInterest := totalPayments.Sub(totalPrincipal)
	overpaymentPct := decimal.Zero
	if totalPrincipal.Sign() != 0 {
		overpaymentPct = totalInterest.Div(totalPrincipal).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return Summary{
		TotalPayments:  totalPayments,
		TotalPrincipal: totalPrincipal,
		TotalInterest:  totalInterest,
		Overpayment:    totalInterest,
		OverpaymentPct: overpaymentPct,
		PaymentCount:   len(schedule),
	}
}
