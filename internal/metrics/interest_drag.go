package metrics

import (
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
)

// InterestDrag is interest paid per unit of investment gain at the last
// observed month. Zero while there is no gain.
type InterestDrag struct {
	name     string
	interest decimal.Decimal
	gain     decimal.Decimal
}

func NewInterestDrag() *InterestDrag {
	return &InterestDrag{name: "interest_drag"}
}

func (i *InterestDrag) Name() string { return i.name }

func (i *InterestDrag) Observe(s sim.Snapshot) {
	i.interest = s.InterestPaid
	i.gain = s.InvestmentGain
}

func (i *InterestDrag) Value() float64 {
	if !i.gain.IsPositive() {
		return 0
	}
	return i.interest.Div(i.gain).InexactFloat64()
}

func (i *InterestDrag) Reset() {
	i.interest = decimal.Zero
	i.gain = decimal.Zero
}
