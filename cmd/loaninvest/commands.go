package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/loaninvest/internal/analysis"
	"github.com/san-kum/loaninvest/internal/api"
	"github.com/san-kum/loaninvest/internal/automation"
	"github.com/san-kum/loaninvest/internal/cache"
	"github.com/san-kum/loaninvest/internal/config"
	"github.com/san-kum/loaninvest/internal/export"
	"github.com/san-kum/loaninvest/internal/optim"
	"github.com/san-kum/loaninvest/internal/report"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/san-kum/loaninvest/internal/storage"
	"github.com/san-kum/loaninvest/internal/tui"
	"github.com/san-kum/loaninvest/internal/viz"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	res, err := simulate(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.SummaryPanel(res))

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := runName
	if name == "" {
		name = cfg.Name
	}
	runID, err := st.Save(name, res)
	if err != nil {
		return err
	}
	log.Debugw("saved run", "id", runID, "dir", dataDir)
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	out, err := optimize(cmd.Context(), cfg)
	if err != nil {
		var infeasible *optim.InfeasibleError
		if errors.As(err, &infeasible) {
			return fmt.Errorf("%w; raise the budget to at least %s or extend the horizon",
				err, infeasible.MinPayment.StringFixed(2))
		}
		return err
	}

	if svgPath != "" {
		if err := writeFile(svgPath, export.CurveSVG(out, 800, 400)); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if err := report.WriteOutcome(os.Stdout, out); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.CurveChart(out, 80, 12))
	return nil
}

func loadOrSimulate(cmd *cobra.Command, args []string) (*sim.Result, error) {
	if len(args) == 1 {
		return storage.New(dataDir).LoadResult(args[0])
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return simulate(cmd.Context(), cmd, cfg)
}

func runTable(cmd *cobra.Command, args []string) error {
	res, err := loadOrSimulate(cmd, args)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(os.Stdout, res); err != nil {
		return err
	}
	fmt.Println()
	return report.WriteTable(os.Stdout, res.Snapshots)
}

func plotRun(cmd *cobra.Command, args []string) error {
	which, err := viz.ParseSeries(series)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(res.Snapshots) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.Name != "" {
		fmt.Printf("name: %s\n", meta.Name)
	}
	fmt.Printf("months: %d\n\n", len(res.Snapshots))

	fmt.Println(viz.Chart(res, which, width, height))
	fmt.Println()

	if svgPath != "" {
		if err := writeFile(svgPath, export.BalancesSVG(res, 900, 450)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tLOAN\tPAYMENT\tBUDGET\tNET WORTH\tPAYOFF")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			report.FormatMoney(run.Scenario.LoanAmount),
			run.Split.MonthlyLoanPayment.StringFixed(2),
			run.Scenario.MaxMonthlyPayment.StringFixed(2),
			report.FormatMoney(run.Summary.FinalNetWorth),
			sim.PayoffLabel(run.Summary, run.Scenario.Months()),
		)
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	snaps, err := storage.New(dataDir).LoadSnapshots(runID)
	if err != nil {
		return err
	}

	path := csvOut
	if path == "" {
		path = runID + ".csv"
	}
	if err := storage.ExportCSV(path, snaps); err != nil {
		return err
	}
	fmt.Printf("exported %d months to %s\n", len(snaps), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(jsonOut, meta.Name, res)
}

func runReport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	cfg := configFromResult(res)
	if cmd.Flags().Changed("step") {
		cfg.Optimizer.Step = step
	}
	if cmd.Flags().Changed("workers") {
		cfg.Optimizer.Workers = workers
	}
	outcome, err := optimize(cmd.Context(), cfg)
	if err != nil {
		if !errors.Is(err, sim.ErrInfeasibleOptimization) {
			return err
		}
		log.Warnw("report without optimal split", "error", err)
		outcome = nil
	}

	if pdfPath == "" {
		if err := report.WriteSummary(os.Stdout, res); err != nil {
			return err
		}
		if outcome != nil {
			fmt.Println()
			if err := report.WriteOutcome(os.Stdout, outcome); err != nil {
				return err
			}
		}
		fmt.Println()
		return report.WriteTable(os.Stdout, res.Snapshots)
	}

	f, err := os.Create(pdfPath)
	if err != nil {
		return err
	}
	defer f.Close()

	title := "Loan payoff vs. investing"
	if meta.Name != "" {
		title = meta.Name
	}
	if err := report.WritePDF(f, title, res, outcome); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pdfPath)
	return nil
}

// configFromResult rebuilds an optimizer config for a saved run's scenario.
func configFromResult(res *sim.Result) *config.Config {
	sc := res.Scenario
	hundred := decimal.NewFromInt(100)
	cfg := config.DefaultConfig()
	cfg.LoanAmount = sc.LoanAmount.InexactFloat64()
	cfg.LoanRatePct = sc.LoanRate.Mul(hundred).InexactFloat64()
	cfg.InvestRatePct = sc.InvestRate.Mul(hundred).InexactFloat64()
	cfg.MaxMonthlyPayment = sc.MaxMonthlyPayment.InexactFloat64()
	cfg.Years = sc.Years
	return cfg
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	p, err := analysis.ParseParam(sweepParam)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	c, release, err := evaluationCache()
	if err != nil {
		return err
	}
	defer release()

	sweep := optim.NewSweep(
		optim.WithStep(cfg.Step()),
		optim.WithWorkers(max(cfg.Optimizer.Workers, 1)),
		optim.WithCache(c),
		optim.WithLogger(log),
	)
	points, err := analysis.Sensitivity(cmd.Context(), cfg, p, sweepFrom, sweepTo, sweepSteps, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\tMIN PAYMENT\tBEST PAYMENT\tNET WORTH\t\n", strings.ToUpper(string(p)))
	for _, pt := range points {
		if pt.Infeasible {
			fmt.Fprintf(w, "%.2f\t%s\tinfeasible\t-\t\n", pt.Param, pt.MinPayment.StringFixed(2))
			continue
		}
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\t\n",
			pt.Param,
			pt.MinPayment.StringFixed(2),
			pt.BestPayment.StringFixed(2),
			report.FormatMoneyFull(pt.BestNetWorth),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(analysis.SensitivityToASCII(points, 8))
	if x, ok := analysis.Crossover(points); ok {
		fmt.Printf("\noptimum changes at %s = %.2f\n", p, x)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	plan, err := automation.LoadPlan(args[0])
	if err != nil {
		return err
	}

	c, release, err := evaluationCache()
	if err != nil {
		return err
	}
	defer release()

	runner := automation.Runner{
		Options: []optim.Option{
			optim.WithWorkers(max(batchWorkers, 1)),
			optim.WithCache(c),
			optim.WithLogger(log),
		},
	}
	if !noSave {
		runner.Store = storage.New(dataDir)
		if err := runner.Store.Init(); err != nil {
			return err
		}
	}

	results, err := runner.Run(cmd.Context(), plan)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPAYMENT\tINVESTED\tNET WORTH\tPAYOFF\tRUN")
	for _, r := range results {
		sc := r.Result.Scenario
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			r.Result.Split.MonthlyLoanPayment.StringFixed(2),
			r.Result.Split.Investable(sc).StringFixed(2),
			report.FormatMoney(r.Result.Summary.FinalNetWorth),
			sim.PayoffLabel(r.Result.Summary, sc.Months()),
			r.RunID,
		)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("scenarios:")
		for _, s := range config.ListScenarios() {
			fmt.Printf("  %s: %v\n", s, config.ListPresets(s))
		}
		return nil
	}

	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for scenario: %s\n", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tLOAN\tRATE\tRETURN\tBUDGET\tYEARS")
	for _, p := range presets {
		c := config.GetPreset(args[0], p)
		fmt.Fprintf(w, "%s/%s\t%.0f\t%.2f%%\t%.2f%%\t%.0f\t%d\n",
			args[0], p, c.LoanAmount, c.LoanRatePct, c.InvestRatePct, c.MaxMonthlyPayment, c.Years)
	}
	return w.Flush()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	sc := cfg.Scenario()
	if err := sc.Validate(); err != nil {
		return err
	}

	start := sc.MaxMonthlyPayment
	if split, ok := cfg.Split(); ok {
		start = split.MonthlyLoanPayment
	} else if f := cmd.Flags().Lookup("payment"); f != nil && f.Changed {
		start = decimal.NewFromFloat(payment).Round(2)
	} else if p, err := sim.MinimumPayment(sc); err == nil {
		start = decimal.Min(p, sc.MaxMonthlyPayment)
	}

	sweep := optim.NewSweep(
		optim.WithStep(cfg.Step()),
		optim.WithWorkers(max(cfg.Optimizer.Workers, 1)),
		optim.WithLogger(log),
	)
	final, err := tui.Run(tui.New(sc, start, cfg.Step(), sweep))
	if err != nil {
		return err
	}
	if res := final.Result(); res != nil {
		fmt.Println(viz.SummaryPanel(res))
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	h := api.ApiHandler{Log: log, Workers: serveWorkers}
	if redisAddr != "" {
		// redis is shared by every request; without it each request
		// gets a fresh in-memory cache
		c, release, err := evaluationCache()
		if err != nil {
			return err
		}
		defer release()
		h.NewCache = func() cache.Cache { return c }
	}
	return h.StartApi(port)
}

func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteSVG(f, content)
}
