package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	monthsPerYear = 12
	centPlaces    = 2
)

var (
	twelve = decimal.NewFromInt(monthsPerYear)
	cent   = decimal.New(1, -centPlaces)
)

// Scenario holds the fixed parameters of one loan-vs-invest comparison.
// Rates are annual fractions (0.055 for 5.5%).
type Scenario struct {
	LoanAmount        decimal.Decimal `json:"loan_amount" yaml:"loan_amount"`
	LoanRate          decimal.Decimal `json:"loan_rate" yaml:"loan_rate"`
	InvestRate        decimal.Decimal `json:"invest_rate" yaml:"invest_rate"`
	MaxMonthlyPayment decimal.Decimal `json:"max_monthly_payment" yaml:"max_monthly_payment"`
	Years             int             `json:"years" yaml:"years"`
}

func (s Scenario) Months() int { return s.Years * monthsPerYear }

func (s Scenario) Validate() error {
	switch {
	case !s.LoanAmount.IsPositive():
		return &InputError{Field: "loan_amount", Message: fmt.Sprintf("must be positive, got %s", s.LoanAmount)}
	case s.LoanRate.IsNegative():
		return &InputError{Field: "loan_rate", Message: fmt.Sprintf("must not be negative, got %s", s.LoanRate)}
	case s.InvestRate.IsNegative():
		return &InputError{Field: "invest_rate", Message: fmt.Sprintf("must not be negative, got %s", s.InvestRate)}
	case !s.MaxMonthlyPayment.IsPositive():
		return &InputError{Field: "max_monthly_payment", Message: fmt.Sprintf("must be positive, got %s", s.MaxMonthlyPayment)}
	case s.Years <= 0:
		return &InputError{Field: "years", Message: fmt.Sprintf("must be positive, got %d", s.Years)}
	}
	return nil
}

// Split is the monthly loan payment; the rest of the budget is invested.
type Split struct {
	MonthlyLoanPayment decimal.Decimal `json:"monthly_loan_payment" yaml:"monthly_loan_payment"`
}

func NewSplit(payment decimal.Decimal) Split {
	return Split{MonthlyLoanPayment: payment}
}

// Investable is the budget left over while the loan is still open.
func (sp Split) Investable(s Scenario) decimal.Decimal {
	return s.MaxMonthlyPayment.Sub(sp.MonthlyLoanPayment)
}

func (sp Split) Validate(s Scenario) error {
	if sp.MonthlyLoanPayment.IsNegative() {
		return &InputError{Field: "monthly_loan_payment", Message: fmt.Sprintf("must not be negative, got %s", sp.MonthlyLoanPayment)}
	}
	if sp.MonthlyLoanPayment.GreaterThan(s.MaxMonthlyPayment) {
		return &InputError{
			Field:   "monthly_loan_payment",
			Message: fmt.Sprintf("%s exceeds the monthly budget %s", sp.MonthlyLoanPayment, s.MaxMonthlyPayment),
		}
	}
	return nil
}

// Snapshot is the end-of-month position. All amounts are cumulative from month 1.
type Snapshot struct {
	Month             int             `json:"month"`
	LoanBalance       decimal.Decimal `json:"loan_balance"`
	InvestmentBalance decimal.Decimal `json:"investment_balance"`
	InterestPaid      decimal.Decimal `json:"interest_paid"`
	PrincipalPaid     decimal.Decimal `json:"principal_paid"`
	Contributions     decimal.Decimal `json:"contributions"`
	InvestmentGain    decimal.Decimal `json:"investment_gain"`
	NetWorth          decimal.Decimal `json:"net_worth"`
}

type Summary struct {
	FinalNetWorth       decimal.Decimal `json:"final_net_worth"`
	TotalInterestPaid   decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid  decimal.Decimal `json:"total_principal_paid"`
	TotalInvested       decimal.Decimal `json:"total_invested"`
	TotalInvestmentGain decimal.Decimal `json:"total_investment_gain"`
	PaidOff             bool            `json:"paid_off"`
	// PayoffMonth is the first month with a zero balance, 0 when PaidOff is false.
	PayoffMonth int `json:"payoff_month"`
}

type Result struct {
	Scenario  Scenario           `json:"scenario"`
	Split     Split              `json:"split"`
	Snapshots []Snapshot         `json:"snapshots"`
	Summary   Summary            `json:"summary"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Final returns the last snapshot, or the zero value for an empty result.
func (r *Result) Final() Snapshot {
	if len(r.Snapshots) == 0 {
		return Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnMonth(s Snapshot)
}
