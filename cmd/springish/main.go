package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/springish/internal/analysis"
	"github.com/san-kum/springish/internal/config"
	"github.com/san-kum/springish/internal/logging"
	"github.com/san-kum/springish/internal/maxima"
	"github.com/san-kum/springish/internal/oscillator"
	"github.com/san-kum/springish/internal/style"
	"github.com/san-kum/springish/internal/sweep"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	theme      string
	// Oscillator parameters
	amplitude    float64
	stiffness    float64
	damping      float64
	phaseOffset  float64
	minAmplitude float64
	maxIter      int
	// Sweep
	offsetMin float64
	offsetMax float64
	steps     int
	workers   int
	// Verify
	sampleDt float64
	samples  int
	fps      int
	frames   int

	logger *zap.Logger
	// Resolved in setup before any command runs.
	cfg *config.Config
	// Replaced in setup once the theme flag is parsed.
	styles = style.New(style.ThemeDefault)
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Fail.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "springish",
		Short:             "damped spring keyframe extraction",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset oscillator parameters")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (console, json)")
	pf.StringVar(&theme, "theme", style.ThemeDefault.Name, "output theme (default, plain)")
	pf.Float64Var(&amplitude, "amplitude", oscillator.DefaultAmplitude, "initial amplitude")
	pf.Float64Var(&stiffness, "stiffness", oscillator.DefaultStiffness, "spring stiffness k")
	pf.Float64Var(&damping, "damping", oscillator.DefaultDamping, "damping coefficient")
	pf.Float64Var(&phaseOffset, "offset", oscillator.DefaultPhaseOffset, "phase offset (rad)")
	pf.Float64Var(&minAmplitude, "min-y", oscillator.DefaultMinAmplitude, "settle threshold")
	pf.IntVar(&maxIter, "max-iter", 0, "extremum search cap (0 derives it from the model)")

	maximaCmd := &cobra.Command{
		Use:   "maxima",
		Short: "extract extremum samples",
		Args:  cobra.NoArgs,
		RunE:  runMaxima,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "show derived oscillator quantities",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "extract over a range of phase offsets",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&offsetMin, "offset-min", -math.Pi, "first phase offset")
	sweepCmd.Flags().Float64Var(&offsetMax, "offset-max", math.Pi, "last phase offset")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSweepSteps, "number of offsets")
	sweepCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel workers")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "cross-check the closed form numerically",
		Args:  cobra.NoArgs,
		RunE:  runVerify,
	}
	verifyCmd.Flags().Float64Var(&sampleDt, "dt", 0.01, "fft sample spacing")
	verifyCmd.Flags().IntVar(&samples, "samples", 4096, "fft sample count")
	verifyCmd.Flags().IntVar(&fps, "fps", 60, "spring stepper frame rate")
	verifyCmd.Flags().IntVar(&frames, "frames", 180, "spring stepper frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(maximaCmd, inspectCmd, sweepCmd, verifyCmd, presetsCmd, initCmd)
	return rootCmd
}

// setup resolves the configuration and builds the logger from its log
// section, so a config file can set the level and format.
func setup(cmd *cobra.Command, args []string) error {
	styles = style.New(style.GetTheme(theme))

	resolved, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg = resolved

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	return err
}

// loadConfig returns the configuration resolved in setup.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg == nil {
		return nil, errors.New("configuration not resolved")
	}
	logger.Debug("configuration loaded",
		zap.String("config", configFile),
		zap.String("preset", preset),
		logging.Params(cfg.Oscillator),
	)
	return cfg, nil
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		if err := config.Merge(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("amplitude") {
		cfg.Oscillator.Amplitude = amplitude
	}
	if flags.Changed("stiffness") {
		cfg.Oscillator.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Oscillator.Damping = damping
	}
	if flags.Changed("offset") {
		cfg.Oscillator.PhaseOffset = phaseOffset
	}
	if flags.Changed("min-y") {
		cfg.Oscillator.MinAmplitude = minAmplitude
	}
	if flags.Changed("max-iter") {
		cfg.Extraction.MaxIterations = maxIter
	}
	if flags.Changed("offset-min") {
		cfg.Sweep.OffsetMin = offsetMin
	}
	if flags.Changed("offset-max") {
		cfg.Sweep.OffsetMax = offsetMax
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = steps
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func buildModel(cmd *cobra.Command) (*config.Config, *oscillator.Model, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	m, err := cfg.Model()
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func runMaxima(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	seq, st, err := cfg.Extractor().ExtractWithStats(m)
	if err != nil {
		var divErr *maxima.DivergenceError
		if errors.As(err, &divErr) {
			logger.Warn("extraction diverged",
				zap.Bool("undamped", divErr.Undamped),
				zap.Int("iterations", divErr.Iterations),
			)
		}
		return err
	}
	logger.Debug("extracted", zap.Int("samples", len(seq)), logging.Stats(st))

	fmt.Println(styles.Title.Render("maxima"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTIME\tDISPLACEMENT\tOFFSET")
	times, ys := seq.Times(), seq.Displacements()
	for i, kf := range seq.Keyframes() {
		fmt.Fprintf(w, "%d\t%.4fs\t%.4f\t%.2f%%\n", i, times[i], ys[i], 100*kf.Offset)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	printValue("samples", fmt.Sprintf("%d", len(seq)))
	printValue("duration", fmt.Sprintf("%.4fs", seq.Duration()))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	p := m.Params()
	omega := m.AngularFrequency()
	y0, v0 := m.State(0)

	fmt.Println(styles.Title.Render("oscillator"))
	printValue("amplitude", fmt.Sprintf("%g", p.Amplitude))
	printValue("stiffness", fmt.Sprintf("%g", p.Stiffness))
	printValue("damping", fmt.Sprintf("%g", p.Damping))
	printValue("phase offset", fmt.Sprintf("%g rad", p.PhaseOffset))
	printValue("threshold", fmt.Sprintf("%g", p.MinAmplitude))
	fmt.Println()
	printValue("angular frequency", fmt.Sprintf("%.4f rad/s", omega))
	printValue("natural frequency", fmt.Sprintf("%.4f rad/s", m.NaturalFrequency()))
	printValue("damping ratio", fmt.Sprintf("%.4f", m.DampingRatio()))
	printValue("period", fmt.Sprintf("%.4fs", 2*math.Pi/omega))
	printValue("settle time", fmt.Sprintf("%.4fs", m.SettleTime()))
	printValue("first extremum", fmt.Sprintf("p=%d t=%.4fs", m.FirstExtremumIndex(), m.TimeOfExtremum(m.FirstExtremumIndex())))
	printValue("initial state", fmt.Sprintf("y=%.4f v=%.4f", y0, v0))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params := sweep.PhaseOffsets(cfg.Oscillator, cfg.Sweep.OffsetMin, cfg.Sweep.OffsetMax, cfg.Sweep.Steps)
	runner := sweep.New(cfg.Extractor(), cfg.Sweep.Workers)

	logger.Info("sweeping phase offsets",
		zap.Float64("from", cfg.Sweep.OffsetMin),
		zap.Float64("to", cfg.Sweep.OffsetMax),
		zap.Int("steps", len(params)),
		zap.Int("workers", cfg.Sweep.Workers),
	)

	results, err := runner.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render("phase sweep"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tSAMPLES\tDURATION\tSKIPPED\tSTATUS")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t-\t%s\n", r.Params.PhaseOffset, r.Err)
			continue
		}
		fmt.Fprintf(w, "%.4f\t%d\t%.4fs\t%d\tok\n", r.Params.PhaseOffset, r.Samples, r.Duration, r.Stats.Skipped)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := sweep.Summarize(results)
	fmt.Println()
	printValue("runs", fmt.Sprintf("%d (%d failed)", s.Count, s.Failed))
	printValue("samples", fmt.Sprintf("%d..%d", s.MinSamples, s.MaxSamples))
	printValue("max skipped", fmt.Sprintf("%d", s.MaxSkipped))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	seq, err := cfg.Extractor().Extract(m)
	if err != nil {
		return err
	}

	scale := math.Abs(m.Params().Amplitude) * (m.AngularFrequency() + m.Damping())
	worst := analysis.MaxResidual(analysis.Residuals(m, seq))
	residualOK := worst <= 1e-5*scale

	wantHz := m.AngularFrequency() / (2 * math.Pi)
	gotHz, err := analysis.DominantFrequency(m, sampleDt, samples)
	if err != nil {
		return err
	}
	freqOK := math.Abs(gotHz-wantHz) <= 2/(sampleDt*float64(samples))

	drift := analysis.MaxTraceError(analysis.Trace(m, fps, frames))
	traceOK := drift <= 1e-6*math.Max(1, math.Abs(m.Params().Amplitude))

	fmt.Println(styles.Title.Render("verify"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tVALUE\tEXPECTED\tSTATUS")
	fmt.Fprintf(w, "extremum velocity\t%.3g\t0\t%s\n", worst, styles.Check(residualOK))
	fmt.Fprintf(w, "dominant frequency\t%.4f hz\t%.4f hz\t%s\n", gotHz, wantHz, styles.Check(freqOK))
	fmt.Fprintf(w, "spring stepper drift\t%.3g\t0\t%s\n", drift, styles.Check(traceOK))
	if err := w.Flush(); err != nil {
		return err
	}

	if !residualOK || !freqOK || !traceOK {
		return errors.New("verification failed")
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAMPLITUDE\tSTIFFNESS\tDAMPING\tOFFSET\tMIN_Y")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n", name, p.Amplitude, p.Stiffness, p.Damping, p.PhaseOffset, p.MinAmplitude)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", args[0]))
	return nil
}

func printValue(label, value string) {
	fmt.Printf("%s %s\n", styles.Label.Render(fmt.Sprintf("%-18s", label+":")), styles.Value.Render(value))
}
