package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/bisect/internal/config"
	"github.com/san-kum/bisect/internal/function"
	"github.com/san-kum/bisect/internal/report"
	"github.com/san-kum/bisect/internal/solver"
	"github.com/san-kum/bisect/internal/storage"
	"github.com/san-kum/bisect/internal/tui"
)

var (
	dataDir     string
	left        float64
	right       float64
	tolerance   float64
	maxIter     int
	minInterval float64
	configFile  string
	preset      string
	saveRun     bool
	showPlot    bool
	verbose     bool
	frameRate   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bisect",
		Short: "bisection root finding for scalar functions",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bisect", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log each iteration at debug level")

	solveCmd := &cobra.Command{
		Use:   "solve [function]",
		Short: "find a root of a named function or expression in x",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")
	solveCmd.Flags().BoolVar(&showPlot, "plot", false, "print a convergence plot")

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list the sample function catalog",
		RunE:  listFunctions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [function]",
		Short: "list available presets for a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for function: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's iteration trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [function]",
		Short: "solve and replay the iterations in a TUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", tui.DefaultFPS, "playback frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench [function]",
		Short: "sweep tolerance and iteration budget",
		Args:  cobra.ExactArgs(1),
		RunE:  benchFunction,
	}
	addSolveFlags(benchCmd)

	rootCmd.AddCommand(solveCmd, functionsCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&left, "left", config.DefaultLeft, "left bound")
	cmd.Flags().Float64Var(&right, "right", config.DefaultRight, "right bound")
	cmd.Flags().Float64Var(&tolerance, "tolerance", solver.DefaultTolerance, "tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", solver.DefaultMaxIterations, "iteration budget")
	cmd.Flags().Float64Var(&minInterval, "min-interval", solver.DefaultMinInterval, "minimum bracket width")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildSolve resolves the function argument (catalog name or expression)
// and merges preset, config file, and flags into one solve setup.
// Precedence: catalog bracket < preset < config file < explicit flags.
func buildSolve(cmd *cobra.Command, name string) (solver.Func, *config.Config, error) {
	var f solver.Func
	cfg := config.DefaultConfig()
	cfg.Function = name

	if sample, err := function.Get(name); err == nil {
		f = sample.F
		cfg.Left = sample.Left
		cfg.Right = sample.Right
	} else {
		parsed, perr := function.Parse(name)
		if perr != nil {
			return nil, nil, fmt.Errorf("%q is not a catalog function and does not parse as an expression: %w", name, perr)
		}
		f = parsed
	}

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		*cfg = *p
	}

	if configFile != "" {
		// Layer the file over what is resolved so far, so a yaml that
		// only sets tolerance keeps the catalog or preset bracket.
		loaded, err := config.LoadOver(configFile, *cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Function = name
	}

	if cmd.Flags().Changed("left") {
		cfg.Left = left
	}
	if cmd.Flags().Changed("right") {
		cfg.Right = right
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if cmd.Flags().Changed("min-interval") {
		cfg.MinInterval = minInterval
	}

	if cfg.Tolerance <= 0 {
		return nil, nil, fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if cfg.MaxIterations <= 0 {
		return nil, nil, fmt.Errorf("max iterations must be positive, got %d", cfg.MaxIterations)
	}
	if cfg.MinInterval <= 0 {
		return nil, nil, fmt.Errorf("min interval must be positive, got %g", cfg.MinInterval)
	}

	return f, cfg, nil
}

// logObserver mirrors each iteration to the structured logger.
type logObserver struct {
	log *slog.Logger
}

func (o logObserver) OnIteration(it solver.Iteration) {
	o.log.Debug("iteration",
		"iter", it.Iter,
		"left", it.Left,
		"right", it.Right,
		"mid", it.Mid,
		"fmid", it.FMid,
		"width", it.Width,
	)
}

func runSolve(cmd *cobra.Command, args []string) error {
	name := args[0]

	f, cfg, err := buildSolve(cmd, name)
	if err != nil {
		return err
	}

	trace := &solver.Trace{}
	var obs solver.Observer = trace
	if verbose {
		obs = solver.MultiObserver{trace, logObserver{log: slog.Default()}}
	}

	start := time.Now()
	outcome := solver.FindObserved(f, cfg.Left, cfg.Right, cfg.Solver(), obs)
	elapsed := time.Since(start)

	fmt.Print(report.Summary(name, cfg.Left, cfg.Right, cfg.Solver(), outcome))
	fmt.Printf("elapsed: %v\n\n", elapsed)
	fmt.Println(outcome)

	if showPlot {
		fmt.Println()
		fmt.Println(report.ConvergencePlot(trace.Iterations))
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg.Left, cfg.Right, cfg.Solver(), outcome, trace.Iterations)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func listFunctions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBRACKET\tDESCRIPTION")
	for _, s := range function.List() {
		fmt.Fprintf(w, "%s\t[%g, %g]\t%s\n", s.Name, s.Left, s.Right, s.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNCTION\tTIME\tOUTCOME\tROOT\tITERS")

	for _, run := range runs {
		root := "-"
		if run.Outcome == "success" || run.Outcome == "max_iterations" {
			root = strconv.FormatFloat(run.Root, 'g', 10, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Function,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Outcome,
			root,
			run.Iterations,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadIterations(runID)
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no iterations to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("function: %s on [%g, %g]\n", meta.Function, meta.Left, meta.Right)
	fmt.Printf("iterations: %d\n\n", len(trace))

	fmt.Println(report.ConvergencePlot(trace))
	fmt.Println()
	fmt.Println(report.MidpointPlot(trace))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadIterations(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, trace)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trace, err := st.LoadIterations(runID)
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no iterations to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"iter", "left", "right", "mid", "fmid", "width"}); err != nil {
		return err
	}
	for _, it := range trace {
		row := []string{
			strconv.Itoa(it.Iter),
			strconv.FormatFloat(it.Left, 'f', 12, 64),
			strconv.FormatFloat(it.Right, 'f', 12, 64),
			strconv.FormatFloat(it.Mid, 'f', 12, 64),
			strconv.FormatFloat(it.FMid, 'f', 12, 64),
			strconv.FormatFloat(it.Width, 'f', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name := args[0]

	f, cfg, err := buildSolve(cmd, name)
	if err != nil {
		return err
	}

	return tui.Run(name, f, cfg.Left, cfg.Right, cfg.Solver(), frameRate)
}

func benchFunction(cmd *cobra.Command, args []string) error {
	name := args[0]

	f, cfg, err := buildSolve(cmd, name)
	if err != nil {
		return err
	}

	tolerances := []float64{1e-4, 1e-8, 1e-12}
	budgets := []int{10, 100, 1000}

	fmt.Printf("benchmarking %s on [%g, %g]\n\n", name, cfg.Left, cfg.Right)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOLERANCE\tBUDGET\tOUTCOME\tITERS\tTIME")

	for _, tol := range tolerances {
		for _, budget := range budgets {
			sc := solver.Config{
				Tolerance:     tol,
				MaxIterations: budget,
				MinInterval:   cfg.MinInterval,
			}

			start := time.Now()
			outcome := solver.Find(f, cfg.Left, cfg.Right, sc)
			elapsed := time.Since(start)

			iters := 0
			switch o := outcome.(type) {
			case solver.Success:
				iters = o.Iterations
			case solver.MaxIterationsReached:
				iters = o.Iterations
			}

			fmt.Fprintf(w, "%.0e\t%d\t%s\t%d\t%v\n",
				tol, budget, outcome.Kind(), iters, elapsed)
		}
	}

	return w.Flush()
}
