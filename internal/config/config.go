package config

import (
	"fmt"
	"os"

	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLoanAmount    = 500000.0
	DefaultLoanRatePct   = 5.5
	DefaultInvestRatePct = 8.0
	DefaultMonthlyBudget = 4000.0
	DefaultYears         = 30
	DefaultOptimizerStep = 10.0
	DefaultOptimizerJobs = 1
	percent              = 100
)

// Config is the user-facing description of a scenario. Rates are percentages.
type Config struct {
	Name               string          `json:"name,omitempty" yaml:"name,omitempty"`
	LoanAmount         float64         `json:"loan_amount" yaml:"loan_amount"`
	LoanRatePct        float64         `json:"loan_rate_pct" yaml:"loan_rate_pct"`
	InvestRatePct      float64         `json:"invest_rate_pct" yaml:"invest_rate_pct"`
	MaxMonthlyPayment  float64         `json:"max_monthly_payment" yaml:"max_monthly_payment"`
	Years              int             `json:"years" yaml:"years"`
	MonthlyLoanPayment float64         `json:"monthly_loan_payment,omitempty" yaml:"monthly_loan_payment,omitempty"`
	Optimizer          OptimizerConfig `json:"optimizer" yaml:"optimizer"`
}

type OptimizerConfig struct {
	Step    float64 `json:"step" yaml:"step"`
	Workers int     `json:"workers" yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		LoanAmount:        DefaultLoanAmount,
		LoanRatePct:       DefaultLoanRatePct,
		InvestRatePct:     DefaultInvestRatePct,
		MaxMonthlyPayment: DefaultMonthlyBudget,
		Years:             DefaultYears,
		Optimizer: OptimizerConfig{
			Step:    DefaultOptimizerStep,
			Workers: DefaultOptimizerJobs,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scenario converts the config into simulator inputs. Money is rounded to cents.
func (c *Config) Scenario() sim.Scenario {
	return sim.Scenario{
		LoanAmount:        decimal.NewFromFloat(c.LoanAmount).Round(2),
		LoanRate:          decimal.NewFromFloat(c.LoanRatePct).Div(decimal.NewFromInt(percent)),
		InvestRate:        decimal.NewFromFloat(c.InvestRatePct).Div(decimal.NewFromInt(percent)),
		MaxMonthlyPayment: decimal.NewFromFloat(c.MaxMonthlyPayment).Round(2),
		Years:             c.Years,
	}
}

// Split returns the fixed loan payment, if one was configured.
func (c *Config) Split() (sim.Split, bool) {
	if c.MonthlyLoanPayment <= 0 {
		return sim.Split{}, false
	}
	return sim.NewSplit(decimal.NewFromFloat(c.MonthlyLoanPayment).Round(2)), true
}

func (c *Config) Step() decimal.Decimal {
	if c.Optimizer.Step <= 0 {
		return decimal.NewFromFloat(DefaultOptimizerStep)
	}
	return decimal.NewFromFloat(c.Optimizer.Step)
}
