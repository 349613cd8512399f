package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func exampleScenario() Scenario {
	return Scenario{
		LoanAmount:        d("10000"),
		LoanRate:          d("0.06"),
		InvestRate:        d("0.08"),
		MaxMonthlyPayment: d("300"),
		Years:             5,
	}
}

func TestSimulateLength(t *testing.T) {
	sc := exampleScenario()
	res, err := Simulate(sc, NewSplit(d("200")))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if len(res.Snapshots) != 60 {
		t.Fatalf("expected 60 snapshots, got %d", len(res.Snapshots))
	}
	for i, s := range res.Snapshots {
		if s.Month != i+1 {
			t.Errorf("snapshot %d has month %d", i, s.Month)
		}
	}
}

func TestSimulateFirstMonths(t *testing.T) {
	res, err := Simulate(exampleScenario(), NewSplit(d("200")))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	want := []Snapshot{
		{
			Month:             1,
			LoanBalance:       d("9850"),
			InvestmentBalance: d("100"),
			InterestPaid:      d("50"),
			PrincipalPaid:     d("150"),
			Contributions:     d("100"),
			InvestmentGain:    d("0"),
			NetWorth:          d("-9750"),
		},
		{
			Month:             2,
			LoanBalance:       d("9699.25"),
			InvestmentBalance: d("200.67"),
			InterestPaid:      d("99.25"),
			PrincipalPaid:     d("300.75"),
			Contributions:     d("200"),
			InvestmentGain:    d("0.67"),
			NetWorth:          d("-9498.58"),
		},
	}

	if diff := cmp.Diff(want, res.Snapshots[:2], decimalEqual); diff != "" {
		t.Errorf("first months mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateIdempotent(t *testing.T) {
	sc := exampleScenario()
	split := NewSplit(d("250"))

	a, err := Simulate(sc, split)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	b, err := Simulate(sc, split)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if diff := cmp.Diff(a, b, decimalEqual); diff != "" {
		t.Errorf("repeated runs differ:\n%s", diff)
	}
}

func TestSimulateAllInOnLoan(t *testing.T) {
	sc := exampleScenario()
	res, err := Simulate(sc, NewSplit(sc.MaxMonthlyPayment))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	payoff := res.Summary.PayoffMonth
	if !res.Summary.PaidOff || payoff >= 60 {
		t.Fatalf("expected early payoff, got %+v", res.Summary)
	}

	for _, s := range res.Snapshots {
		switch {
		case s.Month < payoff:
			if !s.InvestmentBalance.IsZero() {
				t.Errorf("month %d: expected no investment before payoff, got %s", s.Month, s.InvestmentBalance)
			}
		case s.Month > payoff:
			prev := res.Snapshots[s.Month-2].InvestmentBalance
			if !s.InvestmentBalance.GreaterThan(prev) {
				t.Errorf("month %d: investment did not grow (%s -> %s)", s.Month, prev, s.InvestmentBalance)
			}
		}
	}
}

func TestSimulateBalanceNonIncreasing(t *testing.T) {
	sc := exampleScenario()
	for _, p := range []string{"60", "193.33", "250", "300"} {
		res, err := Simulate(sc, NewSplit(d(p)))
		if err != nil {
			t.Fatalf("payment %s: %v", p, err)
		}
		prev := sc.LoanAmount
		for _, s := range res.Snapshots {
			if s.LoanBalance.GreaterThan(prev) {
				t.Errorf("payment %s: balance rose in month %d", p, s.Month)
			}
			if s.LoanBalance.IsNegative() {
				t.Errorf("payment %s: negative balance in month %d", p, s.Month)
			}
			prev = s.LoanBalance
		}
	}
}

func TestSimulateNetWorthContinuousAtPayoff(t *testing.T) {
	sc := exampleScenario()
	res, err := Simulate(sc, NewSplit(d("280")))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	m := res.Summary.PayoffMonth
	if m < 3 || m >= len(res.Snapshots) {
		t.Fatalf("unexpected payoff month %d", m)
	}

	// a month can move net worth by at most the budget plus one month of growth
	limit := sc.MaxMonthlyPayment.Mul(d("2"))
	for _, i := range []int{m - 2, m - 1, m} {
		step := res.Snapshots[i].NetWorth.Sub(res.Snapshots[i-1].NetWorth)
		if step.Abs().GreaterThan(limit) {
			t.Errorf("net worth jumped by %s around month %d", step, i+1)
		}
	}
}

func TestSimulateNonAmortizingPayment(t *testing.T) {
	sc := exampleScenario()
	res, err := Simulate(sc, NewSplit(d("40")))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if got := res.Snapshots[0].LoanBalance; !got.Equal(d("10010")) {
		t.Errorf("expected balance 10010 after month 1, got %s", got)
	}
	if !res.Final().LoanBalance.GreaterThan(sc.LoanAmount) {
		t.Errorf("expected growing balance, got %s", res.Final().LoanBalance)
	}
	if res.Summary.PaidOff || res.Summary.PayoffMonth != 0 {
		t.Errorf("expected loan not paid off, got %+v", res.Summary)
	}
	if got := PayoffLabel(res.Summary, sc.Months()); got != "not paid off" {
		t.Errorf("PayoffLabel() = %q", got)
	}
}

func TestSimulateZeroRates(t *testing.T) {
	sc := Scenario{
		LoanAmount:        d("1200"),
		LoanRate:          decimal.Zero,
		InvestRate:        decimal.Zero,
		MaxMonthlyPayment: d("100"),
		Years:             1,
	}

	tests := []struct {
		payment    string
		loan       string
		investment string
		payoff     int
	}{
		{"100", "0", "0", 12},
		{"50", "600", "600", 0},
		{"0", "1200", "1200", 0},
	}

	for _, tt := range tests {
		t.Run(tt.payment, func(t *testing.T) {
			res, err := Simulate(sc, NewSplit(d(tt.payment)))
			if err != nil {
				t.Fatalf("simulate failed: %v", err)
			}
			final := res.Final()
			if !final.LoanBalance.Equal(d(tt.loan)) {
				t.Errorf("loan = %s, want %s", final.LoanBalance, tt.loan)
			}
			if !final.InvestmentBalance.Equal(d(tt.investment)) {
				t.Errorf("investment = %s, want %s", final.InvestmentBalance, tt.investment)
			}
			if !final.NetWorth.IsZero() {
				t.Errorf("net worth = %s, want 0", final.NetWorth)
			}
			if res.Summary.PayoffMonth != tt.payoff {
				t.Errorf("payoff month = %d, want %d", res.Summary.PayoffMonth, tt.payoff)
			}
		})
	}
}

func TestSimulatePayoffRemainderInvested(t *testing.T) {
	sc := Scenario{
		LoanAmount:        d("250"),
		LoanRate:          decimal.Zero,
		InvestRate:        decimal.Zero,
		MaxMonthlyPayment: d("150"),
		Years:             1,
	}
	res, err := Simulate(sc, NewSplit(d("100")))
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if res.Summary.PayoffMonth != 3 {
		t.Fatalf("expected payoff in month 3, got %d", res.Summary.PayoffMonth)
	}
	// 50 budget + 50 unused loan payment in month 3
	if got := res.Snapshots[2].InvestmentBalance; !got.Equal(d("200")) {
		t.Errorf("month 3 investment = %s, want 200", got)
	}
	if got := res.Snapshots[3].InvestmentBalance; !got.Equal(d("350")) {
		t.Errorf("month 4 investment = %s, want 350", got)
	}
	if got := res.Summary.TotalPrincipalPaid; !got.Equal(d("250")) {
		t.Errorf("principal paid = %s, want 250", got)
	}
}

func TestSimulateInvalidInput(t *testing.T) {
	base := exampleScenario()

	tests := []struct {
		name  string
		mod   func(*Scenario)
		split string
		field string
	}{
		{"zero loan", func(s *Scenario) { s.LoanAmount = decimal.Zero }, "100", "loan_amount"},
		{"negative loan rate", func(s *Scenario) { s.LoanRate = d("-0.01") }, "100", "loan_rate"},
		{"negative invest rate", func(s *Scenario) { s.InvestRate = d("-0.01") }, "100", "invest_rate"},
		{"zero budget", func(s *Scenario) { s.MaxMonthlyPayment = decimal.Zero }, "0", "max_monthly_payment"},
		{"zero years", func(s *Scenario) { s.Years = 0 }, "100", "years"},
		{"payment over budget", func(s *Scenario) {}, "301", "monthly_loan_payment"},
		{"negative payment", func(s *Scenario) {}, "-1", "monthly_loan_payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := base
			tt.mod(&sc)
			_, err := Simulate(sc, NewSplit(d(tt.split)))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) || inputErr.Field != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, err)
			}
		})
	}
}

type countingMetric struct {
	count int
	last  int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(s Snapshot) {
	c.count++
	c.last = s.Month
}
func (c *countingMetric) Value() float64 { return float64(c.count) }
func (c *countingMetric) Reset()         { c.count, c.last = 0, 0 }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := New()
	metric := &countingMetric{}
	obs := &countingMetric{}
	s.AddMetric(metric)
	s.AddObserver(observerFunc(obs.Observe))

	for run := 0; run < 2; run++ {
		res, err := s.Run(context.Background(), exampleScenario(), NewSplit(d("200")))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if res.Metrics["count"] != 60 {
			t.Errorf("run %d: expected 60 observations, got %v", run, res.Metrics["count"])
		}
	}
	if obs.count != 120 || obs.last != 60 {
		t.Errorf("observer saw %d months, last %d", obs.count, obs.last)
	}
}

type observerFunc func(Snapshot)

func (f observerFunc) OnMonth(s Snapshot) { f(s) }

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, exampleScenario(), NewSplit(d("200")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPayoffLabel(t *testing.T) {
	tests := []struct {
		sum  Summary
		want string
	}{
		{Summary{}, "not paid off"},
		{Summary{PaidOff: true, PayoffMonth: 60}, "on time"},
		{Summary{PaidOff: true, PayoffMonth: 42}, "3.5 years"},
	}
	for _, tt := range tests {
		if got := PayoffLabel(tt.sum, 60); got != tt.want {
			t.Errorf("PayoffLabel(%+v) = %q, want %q", tt.sum, got, tt.want)
		}
	}
}
