package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/extrema/internal/config"
	"github.com/san-kum/extrema/internal/export"
	"github.com/san-kum/extrema/internal/logging"
	"github.com/san-kum/extrema/internal/session"
	"github.com/san-kum/extrema/internal/tui"
	"github.com/san-kum/extrema/internal/viz"
)

var (
	configFile string
	preset     string
	svgPath    string
	logLevel   string
	policy     string
	renderer   string
	theme      string
	variable   string
	domainMin  float64
	domainMax  float64
	samples    int
	diffOrder  int
	jsonOut    bool
	csvPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "extrema",
		Short:        "find, classify and plot critical points, and integrate",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a preset function (see presets)")
	pf.StringVar(&svgPath, "svg", "", "also write the plot to this svg file")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.StringVar(&policy, "policy", config.DefaultPolicy, "non-real candidates: skip or strict")
	pf.StringVar(&renderer, "renderer", config.DefaultRenderer, "plot renderer: ascii or braille")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "plot theme")
	pf.StringVar(&variable, "var", config.DefaultVariable, "variable name")
	pf.Float64Var(&domainMin, "min", config.DefaultDomainMin, "plot domain start")
	pf.Float64Var(&domainMax, "max", config.DefaultDomainMax, "plot domain end")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "plot samples")

	classifyCmd := &cobra.Command{
		Use:   "classify [function]",
		Short: "list critical points and their classification",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClassify,
	}
	classifyCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as json")

	plotCmd := &cobra.Command{
		Use:   "plot [function]",
		Short: "plot a function with its critical points marked",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&csvPath, "csv", "", "also write the sampled curve to this csv file")

	integrateCmd := &cobra.Command{
		Use:   "integrate [function] [lower] [upper]",
		Short: "definite integral between two limits",
		Args:  cobra.RangeArgs(0, 3),
		RunE:  runIntegrate,
	}

	diffCmd := &cobra.Command{
		Use:   "diff [function]",
		Short: "print derivatives",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiff,
	}
	diffCmd.Flags().IntVar(&diffOrder, "order", 2, "highest derivative to print")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list example functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.OutOrStdout())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(classifyCmd, plotCmd, integrateCmd, diffCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and finally any
// flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("svg") {
		cfg.SVG = svgPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("renderer") {
		cfg.Plot.Renderer = renderer
	}
	if flags.Changed("theme") {
		cfg.Plot.Theme = theme
	}
	if flags.Changed("var") {
		cfg.Variable = variable
	}
	if flags.Changed("min") {
		cfg.Domain.Min = domainMin
	}
	if flags.Changed("max") {
		cfg.Domain.Max = domainMax
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds the session for a command. Positional arguments, when
// present, replace the configured function and bounds.
func newSession(cmd *cobra.Command, args []string) (*session.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Function = args[0]
	}
	switch len(args) {
	case 3:
		cfg.Bounds = config.BoundsConfig{Lower: args[1], Upper: args[2]}
	case 2:
		return nil, errors.New("integrate needs both a lower and an upper limit")
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	logger.Debug("config", "function", cfg.Function, "variable", cfg.Variable, "policy", cfg.Policy, "renderer", cfg.Plot.Renderer)
	in := tui.NewReader(os.Stdin, cmd.OutOrStdout())
	return session.New(cfg, in, cmd.OutOrStdout(), session.WithLogger(logger))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = s.Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, tui.ErrInterrupted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}
	return err
}

func runClassify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	expr, err := s.Function()
	if err != nil {
		return err
	}
	res, err := s.Classify(expr)
	if err != nil {
		return err
	}
	if jsonOut {
		return export.WriteJSON(cmd.OutOrStdout(), res)
	}
	s.Report(res)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	expr, err := s.Function()
	if err != nil {
		return err
	}
	res, err := s.Classify(expr)
	if err != nil {
		return err
	}
	if err := s.Plot(res); err != nil {
		return err
	}
	if csvPath == "" {
		return nil
	}
	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteCSV(f, s.Figure(res))
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	expr, err := s.Function()
	if err != nil {
		return err
	}
	in, err := s.Integrate(cmd.Context(), expr)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if in.Antiderivative != nil {
		fmt.Fprintf(out, "%s %s\n", viz.Label.Render("antiderivative:"), viz.Value.Render(in.Antiderivative.String()))
	}
	fmt.Fprintf(out, "%s %s\n", viz.Label.Render("area:"), viz.Value.Render(session.DescribeArea(in)))
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	expr, err := s.Function()
	if err != nil {
		return err
	}
	v := s.Variable()
	out := cmd.OutOrStdout()
	d := expr
	for n := 1; n <= diffOrder; n++ {
		d = s.Engine().Diff(d, v)
		label := fmt.Sprintf("f%s(%s) =", strings.Repeat("'", n), v)
		fmt.Fprintf(out, "%s %s\n", viz.Label.Render(label), viz.Value.Render(d.String()))
	}
	return nil
}

func listPresets(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFUNCTION\tBOUNDS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t[%s, %s]\t%s\n", name, p.Function, p.Bounds.Lower, p.Bounds.Upper, p.Description)
	}
	return w.Flush()
}
