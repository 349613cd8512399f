package main

import (
	"fmt"
	"os"

	"github.com/san-kum/loaninvest/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	verbose bool

	// scenario
	loanAmount    float64
	loanRatePct   float64
	investRatePct float64
	budget        float64
	years         int
	payment       float64
	configFile    string
	preset        string

	// optimizer
	step         float64
	workers      int
	batchWorkers int
	serveWorkers int

	// sensitivity
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	// output
	csvOut    string
	jsonOut   string
	pdfPath   string
	svgPath   string
	series    string
	theme     string
	asJSON    bool
	noSave    bool
	runName   string
	width     int
	height    int
	port      int
	redisAddr string
	redisTTL  string

	log = zap.NewNop().Sugar()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the loaninvest commands. The root runs the slider
// TUI when no subcommand is given. Commands that share a flag name bind
// separate variables when their defaults differ.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "loaninvest",
		Short:         "pay down the loan or invest the difference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(verbose)
			if err != nil {
				return err
			}
			log = l
			cmd.SetContext(logger.WithContext(cmd.Context(), l))
			return nil
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".loaninvest", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one split and save the run",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&payment, "payment", 0, "monthly loan payment (default: optimal)")
	runCmd.Flags().Float64Var(&step, "step", 0, "optimizer step when --payment is not set")
	runCmd.Flags().StringVar(&runName, "name", "", "label stored with the run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the run to the data directory")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "find the loan payment that maximizes final net worth",
		RunE:  runOptimize,
	}
	addScenarioFlags(optimizeCmd)
	addOptimizerFlags(optimizeCmd)
	optimizeCmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")
	optimizeCmd.Flags().StringVar(&svgPath, "svg", "", "write the net worth curve as SVG")

	tableCmd := &cobra.Command{
		Use:   "table [run_id]",
		Short: "year-by-year table for a saved run or a fresh simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTable,
	}
	addScenarioFlags(tableCmd)
	tableCmd.Flags().Float64Var(&payment, "payment", 0, "monthly loan payment (default: optimal)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "all", "all, net_worth, loan or investment")
	plotCmd.Flags().StringVar(&theme, "theme", "default", "color theme")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart as SVG")
	plotCmd.Flags().IntVar(&width, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&height, "height", 15, "chart height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "-", "output file, - for stdout")

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "summary report for a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report to this path")
	addOptimizerFlags(reportCmd)

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "re-run the optimizer across a range of one parameter",
		RunE:  runSensitivity,
	}
	addScenarioFlags(sensitivityCmd)
	addOptimizerFlags(sensitivityCmd)
	sensitivityCmd.Flags().StringVar(&sweepParam, "param", "invest_rate", "loan_rate, invest_rate, budget or years")
	sensitivityCmd.Flags().Float64Var(&sweepFrom, "from", 2, "first value (rates in percent)")
	sensitivityCmd.Flags().Float64Var(&sweepTo, "to", 10, "last value")
	sensitivityCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list preset scenarios",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive payment slider",
		RunE:  runTUI,
	}
	addScenarioFlags(tuiCmd)
	tuiCmd.Flags().Float64Var(&payment, "payment", 0, "starting loan payment (default: minimum)")
	tuiCmd.Flags().Float64Var(&step, "step", 0, "slider step")
	tuiCmd.Flags().StringVar(&theme, "theme", "default", "color theme")

	batchCmd := &cobra.Command{
		Use:   "batch [plan.yaml]",
		Short: "run every scenario in a YAML plan and save the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "optimizer workers")
	batchCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the evaluation cache")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the runs to the data directory")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulator over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "listen port")
	serveCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the optimizer cache")
	serveCmd.Flags().StringVar(&redisTTL, "redis-ttl", "24h", "cache entry lifetime")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 4, "optimizer workers per request")

	rootCmd.AddCommand(runCmd, optimizeCmd, tableCmd, plotCmd, listCmd,
		exportCSVCmd, exportJSONCmd, reportCmd, sensitivityCmd, batchCmd, presetsCmd, tuiCmd, serveCmd)

	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&loanAmount, "loan", 0, "loan amount")
	cmd.Flags().Float64Var(&loanRatePct, "loan-rate", 0, "annual loan rate, percent")
	cmd.Flags().Float64Var(&investRatePct, "invest-rate", 0, "annual investment return, percent")
	cmd.Flags().Float64Var(&budget, "budget", 0, "monthly budget for loan plus investment")
	cmd.Flags().IntVar(&years, "years", 0, "horizon in years")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset, e.g. mortgage/standard")
}

func addOptimizerFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&step, "step", 0, "payment step between candidates")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the evaluation cache")
}
