package optim

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/san-kum/loaninvest/internal/cache"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const minChunk = 16

var DefaultStep = decimal.NewFromInt(10)

type Point struct {
	Payment  decimal.Decimal `json:"payment"`
	NetWorth decimal.Decimal `json:"net_worth"`
}

// CurveStats summarizes final net worth across all candidates.
type CurveStats struct {
	Candidates int     `json:"candidates"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
}

type Outcome struct {
	Best         sim.Split       `json:"best"`
	BestNetWorth decimal.Decimal `json:"best_net_worth"`
	MinPayment   decimal.Decimal `json:"min_payment"`
	Curve        []Point         `json:"curve"`
	Stats        CurveStats      `json:"stats"`
}

// Sweep scans monthly loan payments from the minimum amortizing payment up
// to the budget and keeps the one with the highest final net worth.
type Sweep struct {
	step    decimal.Decimal
	workers int
	cache   cache.Cache
	log     *zap.SugaredLogger
}

type Option func(*Sweep)

func WithStep(step decimal.Decimal) Option {
	return func(s *Sweep) { s.step = step }
}

func WithWorkers(n int) Option {
	return func(s *Sweep) { s.workers = n }
}

// WithCache memoizes final net worth per (scenario, split) in c.
func WithCache(c cache.Cache) Option {
	return func(s *Sweep) { s.cache = c }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Sweep) { s.log = l }
}

func NewSweep(opts ...Option) *Sweep {
	s := &Sweep{
		step:    DefaultStep,
		workers: 1,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindOptimalSplit runs a one-off sweep.
func FindOptimalSplit(ctx context.Context, sc sim.Scenario, opts ...Option) (*Outcome, error) {
	return NewSweep(opts...).Run(ctx, sc)
}

func (s *Sweep) Run(ctx context.Context, sc sim.Scenario) (*Outcome, error) {
	if !s.step.IsPositive() {
		return nil, &sim.InputError{Field: "step", Message: fmt.Sprintf("must be positive, got %s", s.step)}
	}

	minPayment, err := sim.MinimumPayment(sc)
	if err != nil {
		return nil, err
	}
	if minPayment.GreaterThan(sc.MaxMonthlyPayment) {
		return nil, &InfeasibleError{MinPayment: minPayment, Budget: sc.MaxMonthlyPayment, Years: sc.Years}
	}

	payments := candidates(minPayment, sc.MaxMonthlyPayment, s.step)
	s.log.Debugw("sweeping loan payments",
		"candidates", len(payments),
		"min", minPayment.StringFixed(2),
		"max", sc.MaxMonthlyPayment.StringFixed(2),
		"step", s.step.String(),
		"workers", s.workers,
	)

	curve := make([]Point, len(payments))
	errs := make([]error, len(payments))
	parallelFor(len(payments), s.workers, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			nw, err := s.evaluate(ctx, sc, payments[i])
			curve[i] = Point{Payment: payments[i], NetWorth: nw}
			errs[i] = err
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	best := curve[0]
	for _, p := range curve[1:] {
		// strict comparison keeps the lowest payment on ties
		if p.NetWorth.GreaterThan(best.NetWorth) {
			best = p
		}
	}

	st, err := summarize(curve)
	if err != nil {
		return nil, err
	}

	s.log.Debugw("sweep finished",
		"best_payment", best.Payment.StringFixed(2),
		"best_net_worth", best.NetWorth.StringFixed(2),
	)

	return &Outcome{
		Best:         sim.NewSplit(best.Payment),
		BestNetWorth: best.NetWorth,
		MinPayment:   minPayment,
		Curve:        curve,
		Stats:        st,
	}, nil
}

func (s *Sweep) evaluate(ctx context.Context, sc sim.Scenario, payment decimal.Decimal) (decimal.Decimal, error) {
	split := sim.NewSplit(payment)

	var key string
	if s.cache != nil {
		key = cache.Key(sc, split)
		if v, ok := s.cache.Get(key); ok {
			if nw, err := decimal.NewFromString(v); err == nil {
				return nw, nil
			}
		}
	}

	res, err := sim.New().Run(ctx, sc, split)
	if err != nil {
		return decimal.Zero, err
	}
	nw := res.Summary.FinalNetWorth

	if s.cache != nil {
		if err := s.cache.Set(key, nw.String()); err != nil {
			s.log.Warnw("failed to cache evaluation", "key", key, "error", err)
		}
	}
	return nw, nil
}

// candidates lists min, min+step, ... below max, then max itself.
func candidates(lo, hi, step decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0)
	for p := lo; p.LessThan(hi); p = p.Add(step) {
		out = append(out, p)
	}
	return append(out, hi)
}

func summarize(curve []Point) (CurveStats, error) {
	data := make(stats.Float64Data, len(curve))
	for i, p := range curve {
		data[i] = p.NetWorth.InexactFloat64()
	}

	st := CurveStats{Candidates: len(curve)}
	var err error
	if st.Min, err = data.Min(); err != nil {
		return st, err
	}
	if st.Max, err = data.Max(); err != nil {
		return st, err
	}
	if st.Median, err = data.Median(); err != nil {
		return st, err
	}
	if st.StdDev, err = data.StandardDeviation(); err != nil {
		return st, err
	}
	return st, nil
}
