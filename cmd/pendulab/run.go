package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/pendulab/internal/analysis"
	"github.com/san-kum/pendulab/internal/config"
	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/export"
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/sim"
)

// stabilityThreshold is the angular speed (rad/s) above which a frame counts
// as unstable.
const stabilityThreshold = 100.0

const (
	lyapunovFrames       = 2000
	lyapunovPerturbation = 1e-8
	svgWidth, svgHeight  = 800, 800
)

func runMetrics(p *pendulum.Pendulum) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(&p.Config),
		metrics.NewEnergyDrift(&p.Config),
		metrics.NewStability(stabilityThreshold),
		metrics.NewFinite(),
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if csvOut && jsonOut {
		return fmt.Errorf("--csv and --json are mutually exclusive")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p := cfg.NewPendulum()
	runner := sim.New(newController(p, logger))
	for _, m := range runMetrics(p) {
		runner.AddMetric(m)
	}

	var script sim.Script
	if drag != "" {
		to, err := parsePoint(drag)
		if err != nil {
			return err
		}
		script = sim.DragScript(p.Bob1(), to, 0, hold)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	logger.Info("run started", zap.String("preset", cfg.Preset), zap.Int("frames", cfg.Frames))
	result, err := runner.Run(ctx, sim.Config{Frames: cfg.Frames, Script: script, StopOnInvalid: strict})
	if err != nil {
		return err
	}
	if result.FirstInvalid >= 0 {
		logger.Warn("state became non-finite", zap.Int("frame", result.FirstInvalid))
	}
	logger.Info("run finished", zap.Int("samples", len(result.States)))

	if svgFile != "" {
		if err := writeSVG(svgFile, p, result, svgWidth, svgHeight); err != nil {
			return err
		}
		logger.Info("svg written", zap.String("path", svgFile))
	}

	out := cmd.OutOrStdout()
	switch {
	case csvOut:
		return export.CSV(out, result)
	case jsonOut:
		return export.JSON(out, p, result)
	}
	return printRun(out, cfg, result)
}

// writeSVG leaves no file behind when rendering or closing fails.
func writeSVG(path string, p *pendulum.Pendulum, result *sim.Result, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = export.SVG(f, p, result, width, height)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func printRun(w io.Writer, cfg *config.Config, result *sim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "preset\t%s\n", orDefault(cfg.Preset, "-"))
	fmt.Fprintf(tw, "frames\t%d\n", len(result.States)-1)
	fmt.Fprintf(tw, "time\t%.3fs\n", result.Times[len(result.Times)-1])
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(tw, "%s\t%.6g\n", name, result.Metrics[name])
	}
	upper := column(result.States, 0)
	fmt.Fprintf(tw, "dominant_frequency\t%.4g Hz\n", analysis.DominantFrequency(upper, pendulum.FrameDt))
	fmt.Fprintf(tw, "lyapunov\t%.4g 1/s\n", analysis.Lyapunov(cfg.Pendulum, cfg.InitMotion(), lyapunovFrames, lyapunovPerturbation))
	if err := tw.Flush(); err != nil {
		return err
	}

	for i, caption := range []string{"θ1 (rad)", "θ2 (rad)"} {
		series := column(result.States, i)
		if len(series) < 2 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(caption)))
	}

	if phase {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "phase θ1 / ω1")
		fmt.Fprint(w, analysis.PhaseToASCII(analysis.Phase(result.States, 0, 2), 70, 20))
		fmt.Fprintln(w, "poincaré section (θ1 upward through 0): θ2 / ω2")
		fmt.Fprint(w, analysis.PhaseToASCII(analysis.Poincare(result.States, 0, 0, 1, 3), 70, 20))
	}
	return nil
}

// column extracts one state component up to the first non-finite sample.
func column(states []dynamo.State, i int) []float64 {
	out := make([]float64, 0, len(states))
	for _, s := range states {
		if i >= len(s) || math.IsNaN(s[i]) || math.IsInf(s[i], 0) {
			break
		}
		out = append(out, s[i])
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	names := config.ListPresets()
	cases := make([]sim.Case, 0, len(names))
	for _, name := range names {
		pr := config.GetPreset(name)
		cases = append(cases, sim.Case{
			Name:    name,
			Config:  pr.Pendulum,
			Motion:  pr.InitState.Motion(),
			Metrics: runMetrics,
		})
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	logger.Info("sweep started", zap.Int("cases", len(cases)), zap.Int("frames", cfg.Frames))
	outcomes, err := sim.Sweep(ctx, cases, sim.Config{Frames: cfg.Frames})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tENERGY\tDRIFT\tSTABILITY\tLYAPUNOV\tFIRST INVALID")
	for i, o := range outcomes {
		m := o.Result.Metrics
		lambda := analysis.Lyapunov(cases[i].Config, cases[i].Motion, lyapunovFrames, lyapunovPerturbation)
		fmt.Fprintf(tw, "%s\t%.2f\t%.4g\t%.3f\t%.3f\t%d\n", o.Name, m["energy"], m["energy_drift"], m["stability"], lambda, o.Result.FirstInvalid)
	}
	return tw.Flush()
}
