package sim

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Simulate runs one scenario without metrics or observers.
func Simulate(sc Scenario, split Split) (*Result, error) {
	return New().Run(context.Background(), sc, split)
}

// Run steps the scenario month by month. Money is kept in cents: loan
// interest is rounded half up each month and the investment balance is
// rounded after growth is applied.
func (s *Simulator) Run(ctx context.Context, sc Scenario, split Split) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := split.Validate(sc); err != nil {
		return nil, err
	}

	months := sc.Months()
	result := &Result{
		Scenario:  sc,
		Split:     split,
		Snapshots: make([]Snapshot, 0, months),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	budget := sc.MaxMonthlyPayment.Round(centPlaces)
	payment := split.MonthlyLoanPayment.Round(centPlaces)
	loanRate := sc.LoanRate.Div(twelve)
	growth := decimal.NewFromInt(1).Add(sc.InvestRate.Div(twelve))

	var (
		loan          = sc.LoanAmount.Round(centPlaces)
		invest        = decimal.Zero
		interestPaid  = decimal.Zero
		principalPaid = decimal.Zero
		contributions = decimal.Zero
		payoffMonth   int
	)

	for month := 1; month <= months; month++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		investable := budget
		if payoffMonth == 0 {
			interest := loan.Mul(loanRate).Round(centPlaces)
			applied := decimal.Min(payment, loan.Add(interest))
			principal := applied.Sub(interest)

			loan = decimal.Max(decimal.Zero, loan.Sub(principal))
			interestPaid = interestPaid.Add(interest)
			principalPaid = principalPaid.Add(principal)

			investable = budget.Sub(payment)
			if loan.IsZero() {
				payoffMonth = month
				// the unused part of this month's loan payment
				investable = investable.Add(payment.Sub(applied))
			}
		}

		invest = invest.Mul(growth).Round(centPlaces).Add(investable)
		contributions = contributions.Add(investable)

		snap := Snapshot{
			Month:             month,
			LoanBalance:       loan,
			InvestmentBalance: invest,
			InterestPaid:      interestPaid,
			PrincipalPaid:     principalPaid,
			Contributions:     contributions,
			InvestmentGain:    invest.Sub(contributions),
			NetWorth:          invest.Sub(loan),
		}
		result.Snapshots = append(result.Snapshots, snap)

		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnMonth(snap)
		}
	}

	final := result.Final()
	result.Summary = Summary{
		FinalNetWorth:       final.NetWorth,
		TotalInterestPaid:   final.InterestPaid,
		TotalPrincipalPaid:  final.PrincipalPaid,
		TotalInvested:       final.Contributions,
		TotalInvestmentGain: final.InvestmentGain,
		PaidOff:             payoffMonth > 0,
		PayoffMonth:         payoffMonth,
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// PayoffLabel describes when the loan cleared relative to the horizon.
func PayoffLabel(sum Summary, months int) string {
	switch {
	case !sum.PaidOff:
		return "not paid off"
	case sum.PayoffMonth == months:
		return "on time"
	default:
		return fmt.Sprintf("%.1f years", float64(sum.PayoffMonth)/monthsPerYear)
	}
}
