/*
main.go - Schedule calculator CLI

PURPOSE:
  Command-line front end for the credit schedule engine. Computes an
  annuity amortization schedule (optionally replayed through early
  repayment events) and prints it as a table with a summary, without
  needing the HTTP server or a database.

USAGE:
  creditcalc compute --principal 1000000 --rate 25 --term 1 \
      --start 2024-01-15 [--periods 12] [--skip-weekends] [--simple] \
      [--event 2024-04-15:100000:reduceTerm]...
  creditcalc version

EVENT FLAG FORMAT:
  --event DATE:AMOUNT:STRATEGY
  where DATE is YYYY-MM-DD, AMOUNT is a decimal number and STRATEGY is
  either reduceTerm or reducePayment. The flag repeats; events are
  applied in chronological order.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/credit-engine/credit"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	flagPrincipal    string
	flagRate         float64
	flagTerm         float64
	flagPeriods      int
	flagStart        string
	flagSkipWeekends bool
	flagSimple       bool
	flagEvents       []string
	flagJSON         bool
)

var rootCmd = &cobra.Command{
	Use:           "creditcalc",
	Short:         "Annuity loan schedule calculator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute an amortization schedule and print it",
	RunE:  runCompute,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("creditcalc %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	computeCmd.Flags().StringVar(&flagPrincipal, "principal", "", "loan principal (required)")
	computeCmd.Flags().Float64Var(&flagRate, "rate", 0, "annual interest rate, percent (required)")
	computeCmd.Flags().Float64Var(&flagTerm, "term", 0, "loan term in years (required)")
	computeCmd.Flags().IntVar(&flagPeriods, "periods", 12, "payments per year (12, 4, 2 or 1)")
	computeCmd.Flags().StringVar(&flagStart, "start", "", "loan start date, YYYY-MM-DD (required)")
	computeCmd.Flags().BoolVar(&flagSkipWeekends, "skip-weekends", false, "shift due dates falling on weekends to the next business day")
	computeCmd.Flags().BoolVar(&flagSimple, "simple", false, "use the simple periodic rate instead of day-count accrual")
	computeCmd.Flags().StringArrayVar(&flagEvents, "event", nil, "early repayment event, DATE:AMOUNT:STRATEGY (repeatable)")
	computeCmd.Flags().BoolVar(&flagJSON, "json", false, "print the schedule as JSON instead of a table")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(versionCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	params, err := buildParams()
	if err != nil {
		return err
	}
	events, err := parseEvents(flagEvents)
	if err != nil {
		return err
	}

	schedule, err := credit.Generate(params)
	if err != nil {
		return err
	}
	credit.SortEvents(events)
	schedule, err = credit.ApplyAll(schedule, events, params)
	if err != nil {
		return err
	}
	summary := credit.Summarize(schedule)

	if flagJSON {
		return printJSON(cmd, schedule, summary)
	}
	printTable(cmd, schedule, summary)
	return nil
}

func buildParams() (credit.Params, error) {
	var params credit.Params

	if flagPrincipal == "" || flagStart == "" {
		return params, fmt.Errorf("--principal, --rate, --term and --start are required")
	}
	principal, err := decimal.NewFromString(flagPrincipal)
	if err != nil {
		return params, fmt.Errorf("invalid --principal %q: %w", flagPrincipal, err)
	}
	start, err := credit.ParseDate(flagStart)
	if err != nil {
		return params, fmt.Errorf("invalid --start %q: %w", flagStart, err)
	}

	mode := credit.ModeExact
	if flagSimple {
		mode = credit.ModeSimple
	}
	params = credit.Params{
		Principal:      principal,
		AnnualRatePct:  flagRate,
		TermYears:      flagTerm,
		PeriodsPerYear: flagPeriods,
		StartDate:      start,
		SkipWeekends:   flagSkipWeekends,
		Mode:           mode,
	}
	if fields := params.Validate(); len(fields) > 0 {
		return params, &credit.InvalidParamsError{Fields: fields}
	}
	return params, nil
}

// parseEvents converts repeated --event flags into validated events.
// The expected shape is DATE:AMOUNT:STRATEGY.
func parseEvents(raw []string) ([]credit.Event, error) {
	events := make([]credit.Event, 0, len(raw))
	for _, s := range raw {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --event %q: want DATE:AMOUNT:STRATEGY", s)
		}
		date, err := credit.ParseDate(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid --event date %q: %w", parts[0], err)
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid --event amount %q: %w", parts[1], err)
		}
		event := credit.Event{
			ID:       uuid.NewString(),
			Date:     date,
			Amount:   amount,
			Strategy: credit.Strategy(parts[2]),
		}
		if fields := event.Validate(); len(fields) > 0 {
			return nil, fmt.Errorf("invalid --event %q: %w", s, &credit.InvalidParamsError{Fields: fields})
		}
		events = append(events, event)
	}
	return events, nil
}

func printTable(cmd *cobra.Command, schedule credit.Schedule, summary credit.Summary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tDue Date\tDays\tPayment\tPrincipal\tInterest\tRemaining\t")
	for i, entry := range schedule {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t\n",
			i+1,
			entry.WorkingDate.Format("2006-01-02"),
			entry.WorkingDays,
			entry.Payment.StringFixed(2),
			entry.Principal.StringFixed(2),
			entry.InterestExact.StringFixed(2),
			entry.Remaining.StringFixed(2),
		)
	}
	w.Flush()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Payments:      %d\n", summary.PaymentCount)
	fmt.Fprintf(out, "Total paid:    %s\n", summary.TotalPayments.StringFixed(2))
	fmt.Fprintf(out, "Principal:     %s\n", summary.TotalPrincipal.StringFixed(2))
	fmt.Fprintf(out, "Interest:      %s\n", summary.TotalInterest.StringFixed(2))
	fmt.Fprintf(out, "Overpayment:   %s (%s%%)\n", summary.Overpayment.StringFixed(2), summary.OverpaymentPct.StringFixed(2))
}

func printJSON(cmd *cobra.Command, schedule credit.Schedule, summary credit.Summary) error {
	payload := struct {
		Schedule credit.Schedule `json:"schedule"`
		Summary  credit.Summary  `json:"summary"`
	}{Schedule: schedule, Summary: summary}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
