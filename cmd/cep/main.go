package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avalamontes/cepsim/internal/analysis"
	"github.com/avalamontes/cepsim/internal/config"
	"github.com/avalamontes/cepsim/internal/cycle"
	"github.com/avalamontes/cepsim/internal/metrics"
	"github.com/avalamontes/cepsim/internal/phase"
	"github.com/avalamontes/cepsim/internal/storage"
	"github.com/avalamontes/cepsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	cycles     int
	gridSize   int
	numStrings int
	deltaChi   float64
	sigma      float64
	samples    int
	factor     int
	power      int
	steps      int
	epsilon    float64
	omega      float64
	seed       int64
	parallel   bool
	saveFields bool
	configFile string
	preset     string
	// per-command
	cycleNum int
	sizeList string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
})

func main() {
	rootCmd := &cobra.Command{
		Use:   "cepsim",
		Short: "chirality echo protocol cycle simulator",
		// Bare invocation reproduces the reference run: five cycles
		// with default knobs.
		RunE: runSimulation,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cepsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation cycles",
		RunE:  runSimulation,
	}
	addRunFlags(rootCmd)
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-cycle results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	sliceCmd := &cobra.Command{
		Use:   "slice [run_id]",
		Short: "render the mid-z slice of a saved field",
		Args:  cobra.ExactArgs(1),
		RunE:  sliceRun,
	}
	sliceCmd.Flags().IntVar(&cycleNum, "cycle", 1, "cycle number")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of the reheating trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&cycleNum, "cycle", 1, "cycle number")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSONStdout(args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-cycle results to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "lambda vs grid size convergence sweep",
		RunE:  convergeSweep,
	}
	convergeCmd.Flags().StringVar(&sizeList, "sizes", "15,20,25,30", "comma-separated grid sizes")
	convergeCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark cycle throughput",
		RunE:  benchCycles,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run cycles with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, sliceCmd, analyzeCmd,
		exportCmd, exportCSVCmd, convergeCmd, benchCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cycles, "cycles", config.DefaultCycles, "number of cycles")
	cmd.Flags().IntVar(&gridSize, "size", config.DefaultSize, "grid side length")
	cmd.Flags().IntVar(&numStrings, "strings", config.DefaultStrings, "string segments per cycle")
	cmd.Flags().Float64Var(&deltaChi, "delta", config.DefaultDeltaChi, "chirality asymmetry")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "Gaussian kernel width")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "samples per segment")
	cmd.Flags().IntVar(&factor, "stretch", config.DefaultFactor, "inflation stretch factor")
	cmd.Flags().IntVar(&power, "power", config.DefaultPower, "dilution power")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "reheating steps")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "reheating gain amplitude")
	cmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "reheating angular frequency")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run cycles concurrently with derived seeds")
	cmd.Flags().BoolVar(&saveFields, "save-fields", false, "dump final fields as raw binary")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file, and changed CLI flags, in
// that order of increasing precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cycles") {
		cfg.Cycles = cycles
	}
	if flags.Changed("size") {
		cfg.Grid.Size = gridSize
	}
	if flags.Changed("strings") {
		cfg.Grid.Strings = numStrings
	}
	if flags.Changed("delta") {
		cfg.Grid.DeltaChi = deltaChi
	}
	if flags.Changed("sigma") {
		cfg.Grid.Sigma = sigma
	}
	if flags.Changed("samples") {
		cfg.Grid.Samples = samples
	}
	if flags.Changed("stretch") {
		cfg.Stretch.Factor = factor
	}
	if flags.Changed("power") {
		cfg.Stretch.Power = power
	}
	if flags.Changed("steps") {
		cfg.Reheat.Steps = steps
	}
	if flags.Changed("epsilon") {
		cfg.Reheat.Epsilon = epsilon
	}
	if flags.Changed("omega") {
		cfg.Reheat.Omega = omega
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("save-fields") {
		cfg.SaveFields = saveFields
	}
	if cfg.Seed != 0 && !flags.Changed("seed") {
		seed = cfg.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger.Debug("starting run",
		"cycles", cfg.Cycles, "size", cfg.Grid.Size, "strings", cfg.Grid.Strings,
		"seed", seed, "parallel", cfg.Parallel)

	start := time.Now()
	driver := cycle.New(cfg.ToCycle())

	var results []*cycle.Result
	if cfg.Parallel {
		results, err = cycle.NewEnsemble(driver, cfg.Cycles, seed).Run(context.Background())
	} else {
		rng := rand.New(rand.NewSource(seed))
		results, err = driver.RunN(context.Background(), rng, cfg.Cycles)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, res := range results {
		fmt.Printf("Cycle %d: λ=%.4f, v_peak=%.0f km/s, Helicity=%s, Net L=%.1f\n",
			i+1, res.Lambda, res.VPeak, res.Helicity, res.NetLPostReheat)
		if !res.Field.IsFinite() {
			logger.Warn("non-finite values in final field", "cycle", i+1)
		}
	}

	lambdas := cycle.Lambdas(results)
	fmt.Printf("\nMean λ = %.4f ± %.4f\n", metrics.Mean(lambdas), metrics.Std(lambdas))

	runID, err := st.Save(cfg, seed, results)
	if err != nil {
		return err
	}
	logger.Info("run complete", "id", runID, "elapsed", elapsed.Round(time.Millisecond))

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
	fmt.Fprintln(w, "ID\tTIME\tCYCLES\tSIZE\tSTRINGS\tMEAN λ\tSTD λ")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.4f\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Cycles,
			run.Config.Grid.Size,
			run.Config.Grid.Strings,
			run.Metrics["mean_lambda"],
			run.Metrics["std_lambda"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadCycles(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	lambdas := make([]float64, len(rows))
	netL := make([]float64, len(rows))
	for i, row := range rows {
		lambdas[i] = row.Lambda
		netL[i] = row.NetLPostReheat
	}

	fmt.Printf("run: %s (%d cycles)\n\n", args[0], len(rows))

	fmt.Println(asciigraph.Plot(lambdas,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("lambda per cycle"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(netL,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("net L after reheating"),
	))

	return nil
}

func sliceRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := st.LoadField(args[0], cycleNum)
	if err != nil {
		return fmt.Errorf("no field dump for cycle %d (run with --save-fields): %w", cycleNum, err)
	}

	fmt.Printf("run: %s, cycle %d, mid-z slice of %d³ field\n\n", args[0], cycleNum, f.Side())
	fmt.Print(viz.Heatmap(f.SliceZ(f.Side() / 2)))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0], cycleNum)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no reheating trace for cycle %d", cycleNum)
	}

	ps := analysis.PowerSpectrum(trace)

	plotData := ps
	if len(plotData) > 4 {
		plotData = ps[:len(ps)/4*3]
	}

	fmt.Printf("reheating spectrum: %s, cycle %d (%d steps)\n\n", args[0], cycleNum, len(trace))
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("power spectrum of net L"),
	))

	freq := analysis.DominantFrequency(ps, phase.OscDt)
	fmt.Printf("\ndominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadCycles(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"cycle", "net_l_pre", "net_l_post_infl", "net_l_post_reheat", "lambda", "v_peak", "helicity"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		rec := []string{
			strconv.Itoa(row.Cycle),
			strconv.FormatFloat(row.NetLPre, 'f', 6, 64),
			strconv.FormatFloat(row.NetLPostInfl, 'f', 6, 64),
			strconv.FormatFloat(row.NetLPostReheat, 'f', 6, 64),
			strconv.FormatFloat(row.Lambda, 'f', 6, 64),
			strconv.FormatFloat(row.VPeak, 'f', 6, 64),
			row.Helicity,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

func convergeSweep(cmd *cobra.Command, args []string) error {
	sizes, err := parseSizes(sizeList)
	if err != nil {
		return err
	}

	lambdas := make([]float64, 0, len(sizes))
	rng := rand.New(rand.NewSource(seed))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tCELLS\tLAMBDA\tV_PEAK\tHELICITY")

	for _, size := range sizes {
		cfg := config.DefaultConfig()
		cfg.Grid.Size = size
		if err := cfg.Validate(); err != nil {
			return err
		}

		res, err := cycle.New(cfg.ToCycle()).Run(context.Background(), rng)
		if err != nil {
			return fmt.Errorf("size %d: %w", size, err)
		}

		lambdas = append(lambdas, res.Lambda)
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.0f\t%s\n",
			size, res.Field.Volume(), res.Lambda, res.VPeak, res.Helicity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(lambdas,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("lambda vs grid size"),
	))
	fmt.Printf("\nMean λ = %.4f\n", metrics.Mean(lambdas))

	return nil
}

func parseSizes(list string) ([]int, error) {
	parts := strings.Split(list, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad size %q: %w", p, err)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}

func benchCycles(cmd *cobra.Command, args []string) error {
	sizes := []int{10, 15, 20}
	stringCounts := []int{25, 50}

	fmt.Println("benchmarking one cycle per configuration")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTRINGS\tFINAL CELLS\tTIME\tCELLS/SEC")

	for _, size := range sizes {
		for _, count := range stringCounts {
			cfg := config.DefaultConfig()
			cfg.Grid.Size = size
			cfg.Grid.Strings = count

			rng := rand.New(rand.NewSource(42))
			start := time.Now()
			res, err := cycle.New(cfg.ToCycle()).Run(context.Background(), rng)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			cells := res.Field.Volume()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
				size, count, cells, elapsed.Round(time.Millisecond),
				float64(cells)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewLive(cfg.ToCycle(), cfg.Cycles, seed)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
