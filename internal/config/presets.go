package config

import "sort"

var Presets = map[string]map[string]*Config{
	"mortgage": {
		"standard": {
			Name: "mortgage/standard", LoanAmount: 500000, LoanRatePct: 5.5, InvestRatePct: 8.0,
			MaxMonthlyPayment: 4000, Years: 30,
			Optimizer: OptimizerConfig{Step: 50, Workers: 4},
		},
		"aggressive": {
			Name: "mortgage/aggressive", LoanAmount: 350000, LoanRatePct: 6.75, InvestRatePct: 7.0,
			MaxMonthlyPayment: 4500, Years: 15,
			Optimizer: OptimizerConfig{Step: 25, Workers: 4},
		},
		"low_rate": {
			Name: "mortgage/low_rate", LoanAmount: 400000, LoanRatePct: 2.75, InvestRatePct: 7.5,
			MaxMonthlyPayment: 3000, Years: 30,
			Optimizer: OptimizerConfig{Step: 50, Workers: 4},
		},
	},
	"student_loan": {
		"standard": {
			Name: "student_loan/standard", LoanAmount: 35000, LoanRatePct: 5.0, InvestRatePct: 7.0,
			MaxMonthlyPayment: 800, Years: 10,
			Optimizer: OptimizerConfig{Step: 5, Workers: 1},
		},
	},
	"car_loan": {
		"standard": {
			Name: "car_loan/standard", LoanAmount: 30000, LoanRatePct: 7.0, InvestRatePct: 6.0,
			MaxMonthlyPayment: 900, Years: 5,
			Optimizer: OptimizerConfig{Step: 5, Workers: 1},
		},
	},
}

func GetPreset(scenario, name string) *Config {
	if presets, ok := Presets[scenario]; ok {
		if cfg, ok := presets[name]; ok {
			cp := *cfg
			return &cp
		}
	}
	return nil
}

func ListPresets(scenario string) []string {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListScenarios() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
