package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// maxCentAdjust bounds the correction applied to the closed-form payment.
// Rounding drift over a horizon is a few cents at most.
const maxCentAdjust = 100

// MinimumPayment returns the smallest whole-cent monthly payment that clears
// the loan by the last month of the horizon, as this package simulates it.
// The budget cap is ignored.
func MinimumPayment(sc Scenario) (decimal.Decimal, error) {
	if err := sc.Validate(); err != nil {
		return decimal.Zero, err
	}

	p := annuityPayment(sc).RoundCeil(centPlaces)
	if !p.IsPositive() {
		p = cent
	}

	for i := 0; !paysOff(sc, p); i++ {
		if i == maxCentAdjust {
			return decimal.Zero, fmt.Errorf("sim: no payment up to %s clears the loan in %d months", p, sc.Months())
		}
		p = p.Add(cent)
	}
	for i := 0; i < maxCentAdjust; i++ {
		lower := p.Sub(cent)
		if !lower.IsPositive() || !paysOff(sc, lower) {
			break
		}
		p = lower
	}
	return p, nil
}

func annuityPayment(sc Scenario) decimal.Decimal {
	months := decimal.NewFromInt(int64(sc.Months()))
	n := float64(sc.Months())
	amount := sc.LoanAmount.InexactFloat64()
	r := sc.LoanRate.InexactFloat64() / monthsPerYear

	p := amount / n
	if r > 0 {
		// 1-(1+r)^-n tends to 1 on long high-rate loans instead of
		// overflowing, and stays accurate for tiny rates
		p = amount * r / -math.Expm1(-n*math.Log1p(r))
	}
	if math.IsInf(p, 0) || math.IsNaN(p) {
		// interest-only plus straight-line principal bounds the annuity
		return sc.LoanAmount.Mul(sc.LoanRate.Div(twelve)).Add(sc.LoanAmount.Div(months))
	}
	return decimal.NewFromFloat(p)
}

func paysOff(sc Scenario, payment decimal.Decimal) bool {
	probe := sc
	probe.MaxMonthlyPayment = payment
	probe.InvestRate = decimal.Zero
	res, err := New().Run(context.Background(), probe, NewSplit(payment))
	return err == nil && res.Summary.PaidOff
}
