package metrics

import "github.com/san-kum/loaninvest/internal/sim"

// BreakEven is the first month net worth is no longer negative.
type BreakEven struct {
	name  string
	month int
}

func NewBreakEven() *BreakEven {
	return &BreakEven{name: "break_even_month"}
}

func (b *BreakEven) Name() string { return b.name }

func (b *BreakEven) Observe(s sim.Snapshot) {
	if b.month == 0 && !s.NetWorth.IsNegative() {
		b.month = s.Month
	}
}

func (b *BreakEven) Value() float64 { return float64(b.month) }

func (b *BreakEven) Reset() { b.month = 0 }
