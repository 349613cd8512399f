package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/loaninvest/internal/cache"
	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/metrics"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// lookupPreset accepts "scenario/name" or a bare scenario meaning its
// standard preset.
func lookupPreset(name string) (*config.Config, error) {
	scenario, p, ok := strings.Cut(name, "/")
	if !ok {
		p = "standard"
	}
	cfg := config.GetPreset(scenario, p)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (see `loaninvest presets`)", name)
	}
	return cfg, nil
}

// resolveConfig layers defaults, preset, config file and flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := lookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("loan") {
		cfg.LoanAmount = loanAmount
	}
	if flags.Changed("loan-rate") {
		cfg.LoanRatePct = loanRatePct
	}
	if flags.Changed("invest-rate") {
		cfg.InvestRatePct = investRatePct
	}
	if flags.Changed("budget") {
		cfg.MaxMonthlyPayment = budget
	}
	if flags.Changed("years") {
		cfg.Years = years
	}
	if flags.Changed("payment") {
		cfg.MonthlyLoanPayment = payment
	}
	if flags.Changed("step") {
		cfg.Optimizer.Step = step
	}
	if flags.Changed("workers") {
		cfg.Optimizer.Workers = workers
	}

	log.Debugw("resolved scenario",
		"preset", preset,
		"config", configFile,
		"loan", cfg.LoanAmount,
		"loan_rate_pct", cfg.LoanRatePct,
		"invest_rate_pct", cfg.InvestRatePct,
		"budget", cfg.MaxMonthlyPayment,
		"years", cfg.Years,
	)
	return cfg, nil
}

// evaluationCache returns a redis cache when --redis is set, otherwise a
// fresh in-memory one. The returned func releases it.
func evaluationCache() (cache.Cache, func(), error) {
	if redisAddr == "" {
		return cache.NewMemory(), func() {}, nil
	}
	ttl, err := time.ParseDuration(redisTTL)
	if err != nil {
		ttl = 24 * time.Hour
	}
	r := cache.NewRedis(redisAddr, ttl)
	if err := r.Ping(); err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", redisAddr, err)
	}
	return r, func() { r.Close() }, nil
}

func optimize(ctx context.Context, cfg *config.Config) (*optim.Outcome, error) {
	c, release, err := evaluationCache()
	if err != nil {
		return nil, err
	}
	defer release()

	return optim.FindOptimalSplit(ctx, cfg.Scenario(),
		optim.WithStep(cfg.Step()),
		optim.WithWorkers(max(cfg.Optimizer.Workers, 1)),
		optim.WithCache(c),
		optim.WithLogger(log),
	)
}

// splitFor uses the payment from --payment or the config file, falling
// back to the optimal one. An explicit --payment 0 means invest everything.
func splitFor(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (sim.Split, error) {
	if f := cmd.Flags().Lookup("payment"); f != nil && f.Changed {
		return sim.NewSplit(decimal.NewFromFloat(cfg.MonthlyLoanPayment).Round(2)), nil
	}
	if split, ok := cfg.Split(); ok {
		return split, nil
	}
	out, err := optimize(ctx, cfg)
	if err != nil {
		return sim.Split{}, err
	}
	log.Infow("using optimal loan payment", "payment", out.Best.MonthlyLoanPayment.StringFixed(2))
	return out.Best, nil
}

func simulate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*sim.Result, error) {
	split, err := splitFor(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s.Run(ctx, cfg.Scenario(), split)
}
