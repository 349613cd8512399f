package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LoanAmount != 500000 {
		t.Errorf("expected loan 500000, got %f", cfg.LoanAmount)
	}
	if cfg.Years != 30 {
		t.Errorf("expected 30 years, got %d", cfg.Years)
	}
	if err := cfg.Scenario().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
	if _, ok := cfg.Split(); ok {
		t.Error("default config should not pin a split")
	}
}

func TestScenarioConvertsPercent(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.Scenario()

	if !sc.LoanRate.Equal(decimal.RequireFromString("0.055")) {
		t.Errorf("expected loan rate 0.055, got %s", sc.LoanRate)
	}
	if !sc.InvestRate.Equal(decimal.RequireFromString("0.08")) {
		t.Errorf("expected invest rate 0.08, got %s", sc.InvestRate)
	}
	if !sc.MaxMonthlyPayment.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected budget 4000, got %s", sc.MaxMonthlyPayment)
	}
}

func TestSplit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MonthlyLoanPayment = 3000.456

	split, ok := cfg.Split()
	if !ok {
		t.Fatal("expected a split")
	}
	if !split.MonthlyLoanPayment.Equal(decimal.RequireFromString("3000.46")) {
		t.Errorf("expected 3000.46, got %s", split.MonthlyLoanPayment)
	}
}

func TestStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Optimizer.Step = 0
	if !cfg.Step().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected default step, got %s", cfg.Step())
	}
	cfg.Optimizer.Step = 2.5
	if !cfg.Step().Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected 2.5, got %s", cfg.Step())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.LoanAmount = 25000
	cfg.Years = 7
	cfg.MonthlyLoanPayment = 450
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.LoanAmount != 25000 || loaded.Years != 7 || loaded.MonthlyLoanPayment != 450 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Optimizer.Step != DefaultOptimizerStep {
		t.Errorf("expected optimizer step to survive, got %f", loaded.Optimizer.Step)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("years: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOver(path, GetPreset("car_loan", "standard"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Years != 3 {
		t.Errorf("expected years from file, got %d", cfg.Years)
	}
	if cfg.LoanAmount != 30000 {
		t.Errorf("expected loan from preset, got %f", cfg.LoanAmount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mortgage", "standard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.LoanAmount != 500000 {
		t.Errorf("expected loan 500000, got %f", cfg.LoanAmount)
	}

	cfg.LoanAmount = 1
	if GetPreset("mortgage", "standard").LoanAmount != 500000 {
		t.Error("GetPreset returned a shared pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("mortgage", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "standard") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("mortgage")
	if len(presets) != 3 || presets[0] != "aggressive" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
	if len(ListScenarios()) != 3 {
		t.Errorf("unexpected scenarios %v", ListScenarios())
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, scenario := range ListScenarios() {
		for _, name := range ListPresets(scenario) {
			if err := GetPreset(scenario, name).Scenario().Validate(); err != nil {
				t.Errorf("%s/%s: %v", scenario, name, err)
			}
		}
	}
}
