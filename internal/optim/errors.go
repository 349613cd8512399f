package optim

import (
	"fmt"

	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
)

// InfeasibleError reports that even the smallest fully amortizing payment
// does not fit in the monthly budget.
type InfeasibleError struct {
	MinPayment decimal.Decimal
	Budget     decimal.Decimal
	Years      int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("optim: paying off within %d years needs %s/month, budget is %s",
		e.Years, e.MinPayment.StringFixed(2), e.Budget.StringFixed(2))
}

func (e *InfeasibleError) Unwrap() error {
	return sim.ErrInfeasibleOptimization
}
