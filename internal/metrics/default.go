package metrics

import "github.com/san-kum/loaninvest/internal/sim"

// Default is the metric set attached to saved and served runs.
func Default() []sim.Metric {
	return []sim.Metric{
		NewBreakEven(),
		NewDebtFree(),
		NewInterestDrag(),
	}
}
