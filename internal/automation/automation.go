// Package automation runs scripted batches of scenarios from a YAML plan.
package automation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/logger"
	"github.com/san-kum/loaninvest/internal/metrics"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/san-kum/loaninvest/internal/storage"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Plan is a named sequence of scenarios.
//
//	name: refinance
//	steps:
//	  - preset: mortgage/standard
//	    monthly_loan_payment: 3500
//	    save_as: mortgage-3500
//	  - preset: mortgage/standard
//	    optimize: true
type Plan struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is one scenario. Config starts from the preset (or the defaults) with
// the step's own keys applied on top.
type Step struct {
	Preset   string
	SaveAs   string
	Optimize bool
	Config   *config.Config
}

type rawPlan struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []yaml.Node `yaml:"steps"`
}

type stepMeta struct {
	Preset   string `yaml:"preset"`
	SaveAs   string `yaml:"save_as"`
	Optimize bool   `yaml:"optimize"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(data)
}

func ParsePlan(data []byte) (*Plan, error) {
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Steps) == 0 {
		return nil, fmt.Errorf("plan %q has no steps", raw.Name)
	}

	plan := &Plan{Name: raw.Name, Description: raw.Description}
	for i := range raw.Steps {
		node := &raw.Steps[i]

		var meta stepMeta
		if err := node.Decode(&meta); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := config.DefaultConfig()
		if meta.Preset != "" {
			scenario, name, ok := strings.Cut(meta.Preset, "/")
			if !ok {
				name = "standard"
			}
			if cfg = config.GetPreset(scenario, name); cfg == nil {
				return nil, fmt.Errorf("step %d: unknown preset %q", i+1, meta.Preset)
			}
		}
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		plan.Steps = append(plan.Steps, Step{
			Preset:   meta.Preset,
			SaveAs:   meta.SaveAs,
			Optimize: meta.Optimize,
			Config:   cfg,
		})
	}
	return plan, nil
}

// Runner executes plans. Store is optional; Log defaults to the logger
// carried by the run context.
type Runner struct {
	Store   *storage.Store
	Options []optim.Option
	Log     *zap.SugaredLogger
}

type StepResult struct {
	Name    string
	RunID   string
	Result  *sim.Result
	Outcome *optim.Outcome
}

// Run executes every step in order and stops at the first failure,
// returning the results gathered so far.
func (r Runner) Run(ctx context.Context, plan *Plan) ([]StepResult, error) {
	log := r.Log
	if log == nil {
		log = logger.FromContext(ctx)
	}

	results := make([]StepResult, 0, len(plan.Steps))
	for i, step := range plan.Steps {
		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s#%d", plan.Name, i+1)
		}
		log.Infow("running step", "step", i+1, "of", len(plan.Steps), "name", name)

		out, err := r.runStep(ctx, step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		out.Name = name

		if r.Store != nil {
			if out.RunID, err = r.Store.Save(name, out.Result); err != nil {
				return results, fmt.Errorf("step %d (%s) save: %w", i+1, name, err)
			}
		}
		results = append(results, out)
	}
	return results, nil
}

func (r Runner) runStep(ctx context.Context, step Step) (StepResult, error) {
	sc := step.Config.Scenario()

	var out StepResult
	split, ok := step.Config.Split()
	if step.Optimize || !ok {
		opts := append([]optim.Option{optim.WithStep(step.Config.Step())}, r.Options...)
		o, err := optim.FindOptimalSplit(ctx, sc, opts...)
		if err != nil {
			return out, err
		}
		split, out.Outcome = o.Best, o
	}

	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	res, err := s.Run(ctx, sc, split)
	if err != nil {
		return out, err
	}
	out.Result = res
	return out, nil
}
