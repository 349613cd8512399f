package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
)

func WriteTable(out io.Writer, snapshots []sim.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "YEAR\tLOAN\tINVESTMENT\tNET WORTH\tINTEREST\tINVESTED\t")
	for _, r := range Yearly(snapshots) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year,
			FormatMoneyFull(r.LoanBalance),
			FormatMoneyFull(r.InvestmentBalance),
			FormatMoneyFull(r.NetWorth),
			FormatMoneyFull(r.InterestPaid),
			FormatMoneyFull(r.Contributions),
		)
	}
	return w.Flush()
}

func WriteSummary(out io.Writer, res *sim.Result) error {
	sc, sum := res.Scenario, res.Summary
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Loan\t%s at %s over %d years\n", FormatMoneyFull(sc.LoanAmount), formatPercent(sc.LoanRate), sc.Years)
	fmt.Fprintf(w, "Investment return\t%s\n", formatPercent(sc.InvestRate))
	fmt.Fprintf(w, "Monthly budget\t%s\n", FormatMoneyFull(sc.MaxMonthlyPayment))
	fmt.Fprintf(w, "Loan payment\t%s\n", FormatMoneyFull(res.Split.MonthlyLoanPayment))
	fmt.Fprintf(w, "Invested monthly\t%s\n", FormatMoneyFull(res.Split.Investable(sc)))
	fmt.Fprintf(w, "Final net worth\t%s\n", FormatMoneyFull(sum.FinalNetWorth))
	fmt.Fprintf(w, "Interest paid\t%s\n", FormatMoneyFull(sum.TotalInterestPaid))
	fmt.Fprintf(w, "Investment gain\t%s\n", FormatMoneyFull(sum.TotalInvestmentGain))
	fmt.Fprintf(w, "Loan payoff\t%s\n", sim.PayoffLabel(sum, sc.Months()))
	for _, name := range sortedKeys(res.Metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", name, res.Metrics[name])
	}
	return w.Flush()
}

func WriteOutcome(out io.Writer, o *optim.Outcome) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Minimum payment\t%s\n", FormatMoneyFull(o.MinPayment))
	fmt.Fprintf(w, "Optimal payment\t%s\n", FormatMoneyFull(o.Best.MonthlyLoanPayment))
	fmt.Fprintf(w, "Best net worth\t%s\n", FormatMoneyFull(o.BestNetWorth))
	fmt.Fprintf(w, "Candidates\t%d\n", o.Stats.Candidates)
	fmt.Fprintf(w, "Net worth range\t%.2f .. %.2f\n", o.Stats.Min, o.Stats.Max)
	fmt.Fprintf(w, "Median / std dev\t%.2f / %.2f\n", o.Stats.Median, o.Stats.StdDev)
	return w.Flush()
}
