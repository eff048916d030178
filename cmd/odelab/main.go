package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/automation"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/dataset"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/fit"
	"github.com/san-kum/odelab/internal/optim"
	"github.com/san-kum/odelab/internal/plot"
	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/tui"
	"github.com/san-kum/odelab/internal/units"
	"github.com/san-kum/odelab/internal/vec"
	"github.com/san-kum/odelab/internal/water"
)

var (
	dataDir    string
	verbose    bool
	method     string
	tol        float64
	startTime  float64
	endTime    float64
	samples    int
	y0Flag     string
	paramFlags []string
	configFile string
	preset     string
	label      string
	// phase plot axes
	xAxis int
	yAxis int
	// spectrum component
	component int
	// tolerance sweep
	tolsFlag string
	// monte carlo
	trials         int
	mcPerturbation float64
	seed           int64
	// parameter sweep bounds
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// grid search
	gridFlags  []string
	metricFlag string
	// csv fitting
	fitColumn string
	fitDegree int
	// lyapunov estimation
	lyapSpan         float64
	lyapSamples      int
	lyapPerturbation float64
	lyapTol          float64
	// live view pacing
	frameSpan float64
	// rendered plot output
	outFile string
	// water property query
	pressureMPa float64
	tempC       float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "adaptive ode integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSystem,
	}
	runCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	addGridFlags(runCmd)
	addStateFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&label, "label", "", "label for the saved run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list systems and methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			fmt.Println("systems:")
			for _, s := range registry.ListSystems() {
				fmt.Printf("  %s\n", s)
			}
			fmt.Println("methods:")
			for _, m := range registry.ListMethods() {
				fmt.Printf("  %s\n", m)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run components in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space scatter plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render run components to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	htmlCmd := &cobra.Command{
		Use:   "html [run_id]",
		Short: "render run components to a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE:  renderHTML,
	}
	htmlCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state component to analyze")

	fitCmd := &cobra.Command{
		Use:   "fit [file.csv]",
		Short: "fit a polynomial to a CSV time series column",
		Args:  cobra.ExactArgs(1),
		RunE:  fitSeries,
	}
	fitCmd.Flags().StringVar(&fitColumn, "column", "", "column name (default first value column)")
	fitCmd.Flags().IntVar(&fitDegree, "degree", 3, "polynomial degree")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [system]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  lyapunovRun,
	}
	lyapunovCmd.Flags().Float64Var(&lyapSpan, "span", 20.0, "time span")
	lyapunovCmd.Flags().IntVar(&lyapSamples, "samples", 501, "trajectory samples")
	lyapunovCmd.Flags().Float64Var(&lyapPerturbation, "perturbation", 1e-8, "initial separation")
	lyapunovCmd.Flags().Float64Var(&lyapTol, "tol", 1e-9, "error tolerance")
	addStateFlags(lyapunovCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [system] [method1] [method2] ...",
		Short: "compare methods on the same system",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	addGridFlags(compareCmd)
	addStateFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [system]",
		Short: "sweep tolerances and report cost against accuracy",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepTolerances,
	}
	sweepCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	addGridFlags(sweepCmd)
	addStateFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&tolsFlag, "tols", "1e-3,1e-6,1e-9", "tolerances, comma separated")

	benchCmd := &cobra.Command{
		Use:   "bench [system]",
		Short: "benchmark every method across tolerances",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSystem,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a multi-step scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo [system]",
		Short: "probe stability under perturbed initial states",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	montecarloCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	addGridFlags(montecarloCmd)
	addStateFlags(montecarloCmd)
	montecarloCmd.Flags().IntVar(&trials, "trials", 16, "number of trials")
	montecarloCmd.Flags().Float64Var(&mcPerturbation, "perturbation", 0.01, "initial state perturbation")
	montecarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	paramsweepCmd := &cobra.Command{
		Use:   "paramsweep [system] [param]",
		Short: "sweep one system parameter",
		Args:  cobra.ExactArgs(2),
		RunE:  runParamSweep,
	}
	paramsweepCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	addGridFlags(paramsweepCmd)
	addStateFlags(paramsweepCmd)
	paramsweepCmd.Flags().Float64Var(&sweepMin, "min", 0.0, "lowest parameter value")
	paramsweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "highest parameter value")
	paramsweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of sweep points")

	tuneCmd := &cobra.Command{
		Use:   "tune [system]",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneSystem,
	}
	tuneCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	addGridFlags(tuneCmd)
	addStateFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridFlags, "grid", nil, "candidate values, name=v1,v2,v3 (repeatable)")
	tuneCmd.Flags().StringVar(&metricFlag, "metric", "energy_drift", "metric to minimize")

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "watch an integration live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&method, "method", "dopri5", "integration method")
	liveCmd.Flags().Float64Var(&tol, "tol", 1e-6, "error tolerance")
	addStateFlags(liveCmd)
	liveCmd.Flags().Float64Var(&frameSpan, "frame", 0.05, "simulated time per frame")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	propsCmd := &cobra.Command{
		Use:   "props",
		Short: "query water properties at a state point",
		RunE:  waterProps,
	}
	propsCmd.Flags().Float64Var(&pressureMPa, "pressure", 0.101325, "pressure in MPa")
	propsCmd.Flags().Float64Var(&tempC, "temp", 20.0, "temperature in Celsius")

	rootCmd.AddCommand(runCmd, listCmd, systemsCmd, presetsCmd, plotCmd, phaseCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, svgCmd, htmlCmd, analyzeCmd,
		fitCmd, lyapunovCmd, compareCmd, sweepCmd, benchCmd, batchCmd,
		montecarloCmd, paramsweepCmd, tuneCmd, liveCmd, propsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "error tolerance")
	cmd.Flags().Float64Var(&startTime, "start", 0.0, "start time")
	cmd.Flags().Float64Var(&endTime, "end", 10.0, "end time")
	cmd.Flags().IntVar(&samples, "samples", 201, "output samples")
}

func addStateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&y0Flag, "y0", "", "initial state, comma separated")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "system parameter, name=value (repeatable)")
}

// resolveConfig merges defaults, preset, config file, and flags, in
// that order. A flag only wins when it was set on the command line.
func resolveConfig(cmd *cobra.Command, system string) (experiment.Config, error) {
	cfg := *config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(system, preset)
		if p == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(system))
		}
		cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tol = tol
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = startTime
	}
	if cmd.Flags().Changed("end") {
		cfg.End = endTime
	}
	if cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if y0Flag != "" {
		y0, err := parseFloats(y0Flag)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("bad --y0: %w", err)
		}
		cfg.Y0 = y0
	}
	if len(paramFlags) > 0 {
		// presets hand out shared maps; overrides go onto a copy
		merged := make(map[string]float64, len(cfg.Params)+len(paramFlags))
		for k, v := range cfg.Params {
			merged[k] = v
		}
		for _, pf := range paramFlags {
			name, value, err := parseParam(pf)
			if err != nil {
				return experiment.Config{}, err
			}
			merged[name] = value
		}
		cfg.Params = merged
	}

	cfg.System = system
	return cfg.Experiment(), nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseParam(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("bad --param %q, want name=value", s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad --param %q: %w", s, err)
	}
	return name, v, nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runSystem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, registry).WithLogger(newLogger())

	fmt.Printf("running %s with %s...\n", cfg.System, cfg.Method)
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(label, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Printf("accepted: %d  rejected: %d  evals: %d\n",
		result.Stats.Accepted, result.Stats.Rejected, result.Stats.Evals)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSYSTEM\tMETHOD\tTIME\tSPAN\tSAMPLES\tTOL\tLABEL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%d\t%.0e\t%s\n",
			run.ID, run.System, run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.End-run.Start, run.Samples, run.Tol, run.Label)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, states, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("samples: %d\n\n", len(states))

	dim := len(states[0])
	if dim > 6 {
		dim = 6
	}
	for idx := 0; idx < dim; idx++ {
		chart, err := plot.Ascii(states, idx, fmt.Sprintf("x%d vs time", idx))
		if err != nil {
			return err
		}
		fmt.Println(chart)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, states, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	line, err := plot.Phase(states, xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Print(plot.Scatter(line.X, line.Y, 70, 20))
	return nil
}

// loadResult rebuilds a run from its saved metadata and samples.
func loadResult(runID string) (*experiment.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	times, states, err := st.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &experiment.Result{
		System: meta.System,
		Method: meta.Method,
		Times:  times,
		States: states,
		Stats: solver.Stats{
			Accepted: meta.Accepted,
			Rejected: meta.Rejected,
			Evals:    meta.Evals,
		},
		Metrics: meta.Metrics,
	}, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, result)
}

func renderLines(result *experiment.Result) ([]plot.Line, error) {
	if len(result.States) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	dim := len(result.States[0])
	if dim > 6 {
		dim = 6
	}
	lines := make([]plot.Line, 0, dim)
	for idx := 0; idx < dim; idx++ {
		line, err := plot.TimeSeries(result.Times, result.States, idx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func writeOut(content string) error {
	if outFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	lines, err := renderLines(result)
	if err != nil {
		return err
	}
	return writeOut(plot.SVG(lines, 960, 540))
}

func renderHTML(cmd *cobra.Command, args []string) error {
	result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	lines, err := renderLines(result)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s (%s)", result.System, result.Method)
	return writeOut(plot.HTML(title, plot.SVG(lines, 960, 540)))
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("system: %s\n\n", meta.System)

	data, err := plot.Component(states, component)
	if err != nil {
		return err
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := analysis.PowerSpectrum(padded)
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (x%d)", component)),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := times[1] - times[0]
	freq := analysis.DominantFrequency(padded, dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	sum := analysis.Summarize(data)
	fmt.Printf("x%d range: [%.4g, %.4g]  mean: %.4g  std: %.4g\n",
		component, sum.Min, sum.Max, sum.Mean, sum.Std)
	return nil
}

func fitSeries(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(args[0])
	if err != nil {
		return err
	}
	col := fitColumn
	if col == "" {
		col = ds.Columns[0]
	}
	ys, err := ds.Column(col)
	if err != nil {
		return err
	}

	poly, err := fit.Polyfit(ds.Times, ys, fitDegree)
	if err != nil {
		return err
	}

	fmt.Printf("fit of %s, %d rows, degree %d\n", col, ds.Len(), fitDegree)
	fmt.Printf("p(t) = %s\n\n", poly)

	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))
	var sse, sst, worst float64
	for i, y := range ys {
		r := y - poly.Eval(ds.Times[i])
		sse += r * r
		sst += (y - mean) * (y - mean)
		worst = math.Max(worst, math.Abs(r))
	}
	fmt.Printf("rmse: %.4g  max residual: %.4g\n", math.Sqrt(sse/float64(len(ys))), worst)
	if sst > 0 {
		fmt.Printf("r2: %.6f\n", 1-sse/sst)
	}

	fitted := make([]float64, ds.Len())
	for i, tv := range ds.Times {
		fitted[i] = poly.Eval(tv)
	}
	fmt.Println()
	fmt.Println(plot.AsciiSeries(fitted, "fitted "+col))
	return nil
}

func lyapunovRun(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(args[0])
	if err != nil {
		return err
	}
	for _, pf := range paramFlags {
		name, value, err := parseParam(pf)
		if err != nil {
			return err
		}
		if err := sys.SetParam(name, value); err != nil {
			return err
		}
	}
	y0 := sys.DefaultState()
	if y0Flag != "" {
		parsed, err := parseFloats(y0Flag)
		if err != nil {
			return fmt.Errorf("bad --y0: %w", err)
		}
		y0 = vec.VecN(parsed)
	}

	fmt.Printf("estimating largest lyapunov exponent for %s...\n", args[0])
	lam, err := analysis.LyapunovExponent(sys, y0, lyapSpan, lyapSamples, lyapPerturbation, lyapTol)
	if err != nil {
		return err
	}
	fmt.Printf("lambda: %.4f\n", lam)
	if lam > 0 {
		fmt.Printf("chaotic; nearby trajectories double apart every %.3f s\n", math.Ln2/lam)
	} else {
		fmt.Println("no divergence on this window")
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	fmt.Printf("comparing methods for %s (tol=%.0e, span=[%.4g, %.4g])\n\n",
		base.System, base.Tol, base.Start, base.End)
	fmt.Printf("%-10s  %-12s  %-12s  %-8s  %-8s  %-10s\n",
		"method", "final_x0", "energy_drift", "accepted", "evals", "time_ms")
	fmt.Println(strings.Repeat("-", 70))

	for _, name := range args[1:] {
		cfg := base
		cfg.Method = name
		result, err := experiment.New(cfg, registry).WithLogger(newLogger()).Run(context.Background())
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}
		finalX0 := 0.0
		if n := len(result.States); n > 0 && len(result.States[n-1]) > 0 {
			finalX0 = result.States[n-1][0]
		}
		fmt.Printf("%-10s  %12.6f  %12.2e  %8d  %8d  %10.2f\n",
			name, finalX0, result.Metrics["energy_drift"],
			result.Stats.Accepted, result.Stats.Evals,
			float64(result.Elapsed.Microseconds())/1000)
	}
	return nil
}

func sweepTolerances(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	tols, err := parseFloats(tolsFlag)
	if err != nil {
		return fmt.Errorf("bad --tols: %w", err)
	}

	fmt.Printf("tolerance sweep for %s (%s)\n\n", base.System, base.Method)
	points := experiment.Sweep(context.Background(), experiment.NewRegistry(), base, tols)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOL\tACCEPTED\tREJECTED\tEVALS\tMAX_DIFF")
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%.0e\terror: %v\n", pt.Tol, pt.Err)
			continue
		}
		fmt.Fprintf(w, "%.0e\t%d\t%d\t%d\t%.3e\n",
			pt.Tol, pt.Stats.Accepted, pt.Stats.Rejected, pt.Stats.Evals, pt.MaxDiff)
	}
	return w.Flush()
}

func benchSystem(cmd *cobra.Command, args []string) error {
	system := args[0]
	registry := experiment.NewRegistry()
	tols := []float64{1e-3, 1e-6, 1e-9}

	fmt.Printf("benchmarking %s\n\n", system)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tTOL\tACCEPTED\tREJECTED\tEVALS\tTIME\tEVALS/SEC")

	for _, m := range registry.ListMethods() {
		for _, tv := range tols {
			cfg := experiment.Config{System: system, Method: m, Tol: tv, End: 10, Samples: 201}
			result, err := experiment.New(cfg, registry).Run(context.Background())
			if err != nil {
				return err
			}
			perSec := float64(result.Stats.Evals) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%.0e\t%d\t%d\t%d\t%v\t%.0f\n",
				m, tv, result.Stats.Accepted, result.Stats.Rejected,
				result.Stats.Evals, result.Elapsed, perSec)
		}
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), st, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSYSTEM\tMETHOD\tACCEPTED\tEVALS\tELAPSED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%v\n",
			i+1, r.System, r.Method, r.Stats.Accepted, r.Stats.Evals, r.Elapsed)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: mcPerturbation,
		NumTrials:    trials,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(context.Background(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d", len(results), stable, unstable)
	if len(results) > 0 {
		fmt.Printf("  (%v stable)", units.Ratio(float64(stable)/float64(len(results))))
	}
	fmt.Print("\n\n")
	for _, r := range results {
		status := "stable"
		if !r.Stable {
			status = "unstable"
		}
		fmt.Printf("  trial %d: final %v (%s)\n", r.TrialID, r.FinalState, status)
	}
	return nil
}

func runParamSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sw := &automation.ParameterSweep{
		Base:      base,
		ParamName: args[1],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(context.Background(), sw, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(args[1])+"\tFINAL_X0\tEVALS")
	for _, r := range results {
		x0 := 0.0
		if len(r.FinalState) > 0 {
			x0 = r.FinalState[0]
		}
		fmt.Fprintf(w, "%.4g\t%.6f\t%d\n", r.ParamValue, x0, r.Evals)
	}
	return w.Flush()
}

func tuneSystem(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if len(gridFlags) == 0 {
		return fmt.Errorf("need at least one --grid")
	}

	names := make([]string, 0, len(gridFlags))
	values := make([][]float64, 0, len(gridFlags))
	for _, gf := range gridFlags {
		name, raw, ok := strings.Cut(gf, "=")
		if !ok {
			return fmt.Errorf("bad --grid %q, want name=v1,v2,...", gf)
		}
		vs, err := parseFloats(raw)
		if err != nil {
			return fmt.Errorf("bad --grid %q: %w", gf, err)
		}
		names = append(names, name)
		values = append(values, vs)
	}

	g, err := optim.NewGridSearch(names, values)
	if err != nil {
		return err
	}

	fmt.Printf("searching %d combinations for minimal %s...\n", g.Combinations(), metricFlag)
	params, best, err := g.Search(context.Background(), experiment.NewRegistry(), base, metricFlag)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g\n", metricFlag, best)
	for _, name := range sortedKeys(params) {
		fmt.Printf("  %s = %.6g\n", name, params[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(cfg.System)
	if err != nil {
		return err
	}
	for name, value := range cfg.Params {
		if err := sys.SetParam(name, value); err != nil {
			return err
		}
	}
	tab, err := registry.GetMethod(cfg.Method)
	if err != nil {
		return err
	}

	y0 := sys.DefaultState()
	if len(cfg.Y0) > 0 {
		y0 = vec.VecN(cfg.Y0)
	}
	if len(y0) != sys.Dim() {
		return fmt.Errorf("initial state has %d components, %s needs %d", len(y0), sys.Name(), sys.Dim())
	}

	return tui.Run(tui.NewModel(sys, tab, cfg.Method, y0, cfg.Tol, frameSpan))
}

func waterProps(cmd *cobra.Command, args []string) error {
	T := float64(units.Celsius(tempC).Kelvin())
	p := pressureMPa

	region, err := water.Region(p, T)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "pressure\t%.6g MPa\n", p)
	fmt.Fprintf(w, "temperature\t%v (%v)\n", units.Celsius(tempC), units.Celsius(tempC).Kelvin())
	fmt.Fprintf(w, "region\t%d\n", region)

	pr, err := water.Props(p, T)
	if err != nil {
		fmt.Fprintf(w, "properties\tunavailable: %v\n", err)
		return w.Flush()
	}
	fmt.Fprintf(w, "density\t%.4f kg/m3\n", pr.Density())
	fmt.Fprintf(w, "volume\t%.6g m3/kg\n", pr.Volume)
	fmt.Fprintf(w, "enthalpy\t%.3f kJ/kg\n", pr.Enthalpy)
	fmt.Fprintf(w, "entropy\t%.4f kJ/(kg K)\n", pr.Entropy)
	fmt.Fprintf(w, "cp\t%.4f kJ/(kg K)\n", pr.Cp)
	if eta, err := water.Viscosity(p, T); err == nil {
		fmt.Fprintf(w, "viscosity\t%.4g Pa s\n", eta)
	}
	if ts, err := water.SaturationTemperature(p); err == nil {
		fmt.Fprintf(w, "boils at\t%v (%v)\n", units.Kelvin(ts), units.Kelvin(ts).Celsius())
	}
	return w.Flush()
}
