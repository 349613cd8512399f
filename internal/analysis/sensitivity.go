package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/shopspring/decimal"
)

type Param string

const (
	LoanRate   Param = "loan_rate"
	InvestRate Param = "invest_rate"
	Budget     Param = "budget"
	Years      Param = "years"
)

func ParseParam(s string) (Param, error) {
	switch p := Param(s); p {
	case LoanRate, InvestRate, Budget, Years:
		return p, nil
	}
	return "", fmt.Errorf("unknown parameter %q (want loan_rate, invest_rate, budget or years)", s)
}

// SetParam writes value into cfg. Rates are percentages.
func SetParam(cfg *config.Config, p Param, value float64) {
	switch p {
	case LoanRate:
		cfg.LoanRatePct = value
	case InvestRate:
		cfg.InvestRatePct = value
	case Budget:
		cfg.MaxMonthlyPayment = value
	case Years:
		cfg.Years = int(value)
	}
}

// SensitivityPoint is the optimizer outcome for one parameter value.
// Infeasible is set when no payment within the budget clears the loan.
type SensitivityPoint struct {
	Param        float64         `json:"param"`
	MinPayment   decimal.Decimal `json:"min_payment"`
	BestPayment  decimal.Decimal `json:"best_payment"`
	BestNetWorth decimal.Decimal `json:"best_net_worth"`
	Infeasible   bool            `json:"infeasible"`
}

// AtMinimum reports whether the optimum is the smallest amortizing payment,
// i.e. investing beats extra loan payments.
func (p SensitivityPoint) AtMinimum() bool {
	return !p.Infeasible && p.BestPayment.Equal(p.MinPayment)
}

// Sensitivity runs the sweep for steps evenly spaced values of p in
// [from, to]. base is not modified.
func Sensitivity(ctx context.Context, base *config.Config, p Param, from, to float64, steps int, sweep *optim.Sweep) ([]SensitivityPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	if sweep == nil {
		sweep = optim.NewSweep(optim.WithStep(base.Step()))
	}
	stride := (to - from) / float64(steps-1)

	results := make([]SensitivityPoint, 0, steps)
	for i := 0; i < steps; i++ {
		value := from + float64(i)*stride
		cfg := *base
		SetParam(&cfg, p, value)

		out, err := sweep.Run(ctx, cfg.Scenario())
		var infeasible *optim.InfeasibleError
		switch {
		case errors.As(err, &infeasible):
			results = append(results, SensitivityPoint{
				Param:      value,
				MinPayment: infeasible.MinPayment,
				Infeasible: true,
			})
			continue
		case err != nil:
			return nil, fmt.Errorf("%s=%g: %w", p, value, err)
		}

		results = append(results, SensitivityPoint{
			Param:        value,
			MinPayment:   out.MinPayment,
			BestPayment:  out.Best.MonthlyLoanPayment,
			BestNetWorth: out.BestNetWorth,
		})
	}
	return results, nil
}

// Crossover returns the first parameter value at which the optimum changes
// between the minimum payment and a larger one.
func Crossover(points []SensitivityPoint) (float64, bool) {
	var prev *SensitivityPoint
	for i := range points {
		p := &points[i]
		if p.Infeasible {
			continue
		}
		if prev != nil && prev.AtMinimum() != p.AtMinimum() {
			return p.Param, true
		}
		prev = p
	}
	return 0, false
}

// SensitivityToASCII plots the optimal payment per parameter value, one
// column per point. Infeasible points are drawn as 'x' on the bottom row.
func SensitivityToASCII(points []SensitivityPoint, height int) string {
	if len(points) == 0 || height <= 0 {
		return ""
	}

	var lo, hi float64
	found := false
	for _, p := range points {
		if p.Infeasible {
			continue
		}
		v := p.BestPayment.InexactFloat64()
		if !found {
			lo, hi, found = v, v, true
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", len(points)))
	}
	for col, p := range points {
		if p.Infeasible {
			canvas[height-1][col] = 'x'
			continue
		}
		row := height - 1 - int((p.BestPayment.InexactFloat64()-lo)/(hi-lo)*float64(height-1))
		canvas[row][col] = '•'
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	return b.String()
}
