package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
)

type Series int

const (
	SeriesAll Series = iota
	SeriesNetWorth
	SeriesLoan
	SeriesInvestment
)

func ParseSeries(s string) (Series, error) {
	switch s {
	case "", "all":
		return SeriesAll, nil
	case "net_worth", "networth":
		return SeriesNetWorth, nil
	case "loan":
		return SeriesLoan, nil
	case "investment", "invest":
		return SeriesInvestment, nil
	}
	return SeriesAll, fmt.Errorf("unknown series %q (want all, net_worth, loan or investment)", s)
}

// Columns extracts the loan, investment and net worth series as floats.
func Columns(snaps []sim.Snapshot) (loan, invest, netWorth []float64) {
	loan = make([]float64, len(snaps))
	invest = make([]float64, len(snaps))
	netWorth = make([]float64, len(snaps))
	for i, s := range snaps {
		loan[i] = s.LoanBalance.InexactFloat64()
		invest[i] = s.InvestmentBalance.InexactFloat64()
		netWorth[i] = s.NetWorth.InexactFloat64()
	}
	return loan, invest, netWorth
}

// Chart plots the monthly balances of a run.
func Chart(res *sim.Result, which Series, width, height int) string {
	if len(res.Snapshots) == 0 {
		return ""
	}
	loan, invest, nw := Columns(res.Snapshots)
	caption := fmt.Sprintf("payment %s/mo over %d months", res.Split.MonthlyLoanPayment.StringFixed(2), len(res.Snapshots))

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
	}

	switch which {
	case SeriesNetWorth:
		return asciigraph.Plot(nw, append(opts, asciigraph.Caption("net worth, "+caption))...)
	case SeriesLoan:
		return asciigraph.Plot(loan, append(opts, asciigraph.Caption("loan balance, "+caption))...)
	case SeriesInvestment:
		return asciigraph.Plot(invest, append(opts, asciigraph.Caption("investment, "+caption))...)
	}

	opts = append(opts,
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Cyan),
		asciigraph.Caption("loan (red) investment (green) net worth (cyan), "+caption),
	)
	return asciigraph.PlotMany([][]float64{loan, invest, nw}, opts...)
}

// CurveChart plots final net worth against loan payment across the sweep.
func CurveChart(o *optim.Outcome, width, height int) string {
	if len(o.Curve) == 0 {
		return ""
	}
	data := make([]float64, len(o.Curve))
	for i, p := range o.Curve {
		data[i] = p.NetWorth.InexactFloat64()
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}

	caption := fmt.Sprintf("final net worth, payment %s .. %s, best %s",
		o.Curve[0].Payment.StringFixed(2),
		o.Curve[len(o.Curve)-1].Payment.StringFixed(2),
		o.Best.MonthlyLoanPayment.StringFixed(2),
	)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}
