package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	preset, configFile, redisAddr = "", "", ""
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	cmd.Flags().Float64Var(&payment, "payment", 0, "")
	cmd.Flags().Float64Var(&step, "step", 0, "")
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LoanAmount != 500000 || cfg.Years != 30 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	cmd := newTestCmd(t)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("years: 4\nloan_rate_pct: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	preset = "car_loan"
	configFile = path
	if err := cmd.Flags().Set("loan-rate", "3"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LoanAmount != 30000 {
		t.Errorf("expected preset loan, got %f", cfg.LoanAmount)
	}
	if cfg.Years != 4 {
		t.Errorf("expected years from file, got %d", cfg.Years)
	}
	if cfg.LoanRatePct != 3 {
		t.Errorf("expected flag to win, got %f", cfg.LoanRatePct)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := newTestCmd(t)
	preset = "boat"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSplitFor(t *testing.T) {
	ctx := context.Background()
	cmd := newTestCmd(t)
	for _, f := range [][2]string{{"loan", "10000"}, {"loan-rate", "6"}, {"invest-rate", "8"}, {"budget", "300"}, {"years", "5"}} {
		if err := cmd.Flags().Set(f[0], f[1]); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	split, err := splitFor(ctx, cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	minPay, _ := sim.MinimumPayment(cfg.Scenario())
	if !split.MonthlyLoanPayment.Equal(minPay) {
		t.Errorf("expected optimal split at %s, got %s", minPay, split.MonthlyLoanPayment)
	}

	if err := cmd.Flags().Set("payment", "0"); err != nil {
		t.Fatal(err)
	}
	cfg, err = resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	split, err = splitFor(ctx, cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !split.MonthlyLoanPayment.Equal(decimal.Zero) {
		t.Errorf("expected explicit zero payment, got %s", split.MonthlyLoanPayment)
	}

	res, err := simulate(ctx, cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Metrics["break_even_month"]; !ok {
		t.Error("expected default metrics on the result")
	}
}

func TestConfigFromResult(t *testing.T) {
	sc := sim.Scenario{
		LoanAmount:        decimal.NewFromInt(10000),
		LoanRate:          decimal.RequireFromString("0.055"),
		InvestRate:        decimal.RequireFromString("0.08"),
		MaxMonthlyPayment: decimal.NewFromInt(300),
		Years:             5,
	}
	cfg := configFromResult(&sim.Result{Scenario: sc})
	got := cfg.Scenario()
	if !got.LoanRate.Equal(sc.LoanRate) || !got.InvestRate.Equal(sc.InvestRate) || got.Years != 5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
