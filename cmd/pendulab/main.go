package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/pendulab/internal/config"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/logging"
	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/server"
	"github.com/san-kum/pendulab/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	fps        int
	theta1     float64
	theta2     float64
	omega1     float64
	omega2     float64
	// headless
	frames  int
	csvOut  bool
	jsonOut bool
	drag    string
	hold    int
	svgFile string
	phase   bool
	strict  bool
	// websocket host
	addr        string
	maxSessions int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "pendulab",
		Short:        "interactive double pendulum",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&theta1, "theta1", 0, "initial angle of the upper rod (rad)")
	pf.Float64Var(&theta2, "theta2", 0, "initial angle of the lower rod (rad)")
	pf.Float64Var(&omega1, "omega1", 0, "initial angular velocity of the upper rod")
	pf.Float64Var(&omega2, "omega2", 0, "initial angular velocity of the lower rod")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the pendulum in the terminal (drag bobs with the mouse)",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write the trajectory as CSV to stdout")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as JSON to stdout")
	runCmd.Flags().StringVar(&drag, "drag", "", "drag the upper bob to x,y before the first frame")
	runCmd.Flags().IntVar(&hold, "hold", 30, "frames to hold the drag before release")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "draw the lower bob's path to this SVG file")
	runCmd.Flags().BoolVar(&phase, "phase", false, "print phase portrait and Poincaré section")
	runCmd.Flags().BoolVar(&strict, "strict", false, "fail at the first non-finite frame")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run every preset in parallel and compare",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve pendulums to browsers over websockets",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().IntVar(&maxSessions, "max-sessions", config.DefaultMaxSessions, "concurrent session limit (0 = unlimited)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tθ1\tθ2\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", name, p.InitState.Theta1, p.InitState.Theta2, p.Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, sweepCmd, serveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the config file, the preset and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Changed("theta1") {
		cfg.InitState.Theta1 = theta1
	}
	if flags.Changed("theta2") {
		cfg.InitState.Theta2 = theta2
	}
	if flags.Changed("omega1") {
		cfg.InitState.Omega1 = omega1
	}
	if flags.Changed("omega2") {
		cfg.InitState.Omega2 = omega2
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if flags.Changed("max-sessions") {
		cfg.Server.MaxSessions = maxSessions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns the configured logger. The terminal host owns the
// screen, so without a log file it logs nowhere.
func newLogger(cfg *config.Config, terminal bool) (*zap.Logger, error) {
	if cfg.LogFile != "" {
		return logging.New(cfg.LogLevel, cfg.LogFile)
	}
	if terminal {
		return logging.Nop(), nil
	}
	return logging.New(cfg.LogLevel)
}

func newController(p *pendulum.Pendulum, logger *zap.Logger) *interact.Controller {
	return interact.New(p, interact.WithTransitionHook(func(from, to interact.DragState) {
		logger.Debug("drag transition", zap.Stringer("from", from), zap.Stringer("to", to))
	}))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting live view", zap.String("preset", cfg.Preset), zap.Int("fps", cfg.FPS))
	ctrl := newController(cfg.NewPendulum(), logger)
	return viz.Run(ctrl, viz.LiveOptions{FPS: cfg.FPS, Logger: logger})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext(cmd)
	defer stop()

	srv := server.New(server.Options{
		Addr:        cfg.Server.Addr,
		MaxSessions: cfg.Server.MaxSessions,
		FPS:         cfg.FPS,
		NewPendulum: cfg.NewPendulum,
		Logger:      logger,
	})
	return srv.ListenAndServe(ctx)
}

// parsePoint parses "x,y" in rendering space.
func parsePoint(s string) (pendulum.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pendulum.Vec2{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return pendulum.Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return pendulum.Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	return pendulum.Vec2{X: x, Y: y}, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}
