package metrics

import "github.com/san-kum/loaninvest/internal/sim"

type DebtFree struct {
	name    string
	free    int
	samples int
}

func NewDebtFree() *DebtFree {
	return &DebtFree{
		name: "debt_free_share",
	}
}

func (d *DebtFree) Name() string {
	return d.name
}

func (d *DebtFree) Observe(s sim.Snapshot) {
	d.samples++
	if s.LoanBalance.IsZero() {
		d.free++
	}
}

func (d *DebtFree) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.free) / float64(d.samples)
}

func (d *DebtFree) Reset() {
	d.free = 0
	d.samples = 0
}
