// Command spikeinfo synthesizes a stack of spiky spectra and reports how the
// spike remover treats it.
//
// Usage:
//
//	spikeinfo [flags]
//
// Examples:
//
//	spikeinfo
//	spikeinfo --nav 4,4 --length 256 --spike 1,2:40:5 --spike 3,0:0:2
//	spikeinfo --threshold 0.5 --interpolator spline --order 3
//	spikeinfo --config despike.yaml --diagnose
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectra/dsp/despike"
	"github.com/cwbudde/algo-spectra/dsp/interp"
	"github.com/cwbudde/algo-spectra/dsp/signal"
)

type options struct {
	nav          string
	length       int
	spikes       []string
	noise        float64
	seed         int64
	configPath   string
	threshold    float64
	width        int
	interpolator string
	order        int
	noNoise      bool
	diagnose     bool
	verbose      bool
}

var defaultSpikes = []string{"1,0:1:2", "0,2:29:1", "1,2:14:1"}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "spikeinfo",
		Short: "Detect and remove spikes from a synthetic spectrum stack",
		Long: `spikeinfo builds a stack of flat spectra with Gaussian noise, adds the
requested spikes and runs the batch spike remover over it, printing every
repair. With --diagnose it prints the first-difference histogram used by the
automatic threshold instead.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), o, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.nav, "nav", "2,3", "navigation shape, comma separated")
	f.IntVar(&o.length, "length", 30, "samples per spectrum")
	f.StringArrayVar(&o.spikes, "spike", defaultSpikes, "spike as nav:sample:amplitude, e.g. 1,0:1:2")
	f.Float64Var(&o.noise, "noise", 1e-3, "standard deviation of the background noise")
	f.Int64Var(&o.seed, "seed", 1, "random seed for background and repair noise")
	f.StringVar(&o.configPath, "config", "", "YAML remover configuration")
	f.Float64Var(&o.threshold, "threshold", 0, "fixed detection threshold (default: automatic)")
	f.IntVar(&o.width, "width", 5, "repair half-width in samples")
	f.StringVar(&o.interpolator, "interpolator", "linear", "linear, nearest or spline")
	f.IntVar(&o.order, "order", 3, "spline order")
	f.BoolVar(&o.noNoise, "no-noise", false, "do not add noise to repaired windows")
	f.BoolVar(&o.diagnose, "diagnose", false, "print the derivative histogram instead of removing spikes")
	f.BoolVar(&o.verbose, "verbose", false, "log every detection and repair to stderr")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers explicitly set flags over the config file, or over the
// defaults when no file is given.
func resolveConfig(cmd *cobra.Command, o options) (despike.Config, error) {
	cfg := despike.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = despike.LoadConfig(o.configPath); err != nil {
			return despike.Config{}, err
		}
	}

	f := cmd.Flags()
	if f.Changed("threshold") {
		cfg.Threshold = o.threshold
		cfg.AutoThreshold = false
	}
	if f.Changed("width") {
		cfg.SpikeWidth = o.width
	}
	if f.Changed("interpolator") {
		kind, err := interp.ParseKind(o.interpolator)
		if err != nil {
			return despike.Config{}, err
		}
		cfg.Interpolator = kind
		if kind == interp.KindSpline {
			cfg.SplineOrder = o.order
		}
	}
	if f.Changed("order") {
		cfg.SplineOrder = o.order
	}
	if f.Changed("no-noise") {
		cfg.AddNoise = !o.noNoise
	}
	if f.Changed("seed") || o.configPath == "" {
		cfg.Seed = o.seed
	}
	return cfg, nil
}

func run(out io.Writer, o options, cfg despike.Config) error {
	s, err := buildStack(o)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	opts := []despike.Option{
		despike.WithConfig(cfg),
		despike.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	}

	if o.diagnose {
		h, err := despike.Diagnose(s, opts...)
		if err != nil {
			return err
		}
		return printHistogram(out, h)
	}

	before := s.Clone()
	r, err := despike.Run(s, opts...)
	if err != nil {
		return err
	}
	return printRepairs(out, r, before, s)
}

func buildStack(o options) (*signal.Signal, error) {
	nav, err := parseInts(o.nav)
	if err != nil {
		return nil, fmt.Errorf("--nav: %w", err)
	}
	s, err := signal.Full(1, nav, []int{o.length})
	if err != nil {
		return nil, err
	}
	if err := signal.NewGenerator(signal.WithSeed(o.seed)).AddGaussianNoise(s, o.noise); err != nil {
		return nil, err
	}
	s.SetNoiseVariance(o.noise * o.noise)

	for _, arg := range o.spikes {
		idx, sample, amp, err := parseSpike(arg)
		if err != nil {
			return nil, err
		}
		if err := signal.AddSpike(s, idx, sample, amp); err != nil {
			return nil, fmt.Errorf("--spike %s: %w", arg, err)
		}
	}
	return s, nil
}

// parseSpike reads "i,j:sample:amplitude". An empty navigation part addresses
// a stack without navigation axes.
func parseSpike(arg string) (nav []int, sample int, amplitude float64, err error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return nil, 0, 0, fmt.Errorf("--spike %q: want nav:sample:amplitude", arg)
	}
	if nav, err = parseInts(parts[0]); err != nil {
		return nil, 0, 0, fmt.Errorf("--spike %q: %w", arg, err)
	}
	if sample, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return nil, 0, 0, fmt.Errorf("--spike %q: %w", arg, err)
	}
	if amplitude, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
		return nil, 0, 0, fmt.Errorf("--spike %q: %w", arg, err)
	}
	return nav, sample, amplitude, nil
}

func parseInts(list string) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []int{}, nil
	}
	fields := strings.Split(list, ",")
	out := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func printRepairs(out io.Writer, r *despike.Remover, before, after *signal.Signal) error {
	cfg := r.Config()
	if _, err := fmt.Fprintf(out, "threshold %.6g, width %d, interpolator %s, add noise %t\n\n",
		cfg.Threshold, cfg.SpikeWidth, cfg.Interpolator, cfg.AddNoise); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Position\tSample\tJump\tWindow\tBefore\tAfter\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------\t------\t----\t------\t------\t-----\n"); err != nil {
		return err
	}
	for _, rec := range r.Repairs() {
		was, err := before.At(rec.Indices)
		if err != nil {
			return err
		}
		now, err := after.At(rec.Indices)
		if err != nil {
			return err
		}
		loc := rec.Spike.Location
		if _, err := fmt.Fprintf(tw, "%v\t%d\t%.4f\t[%d,%d]\t%.4f\t%.4f\n",
			rec.Indices, loc, rec.Spike.Jump, rec.Window.Lo, rec.Window.Hi, was[loc], now[loc]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d repairs\n", len(r.Repairs()))
	return err
}

func printHistogram(out io.Writer, h *despike.Histogram) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "From\tTo\tCount\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t--\t-----\n"); err != nil {
		return err
	}
	for i, c := range h.Counts {
		if _, err := fmt.Fprintf(tw, "%.4g\t%.4g\t%d\n", h.Edges[i], h.Edges[i+1], int(c)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nautomatic threshold %.6g (%d differences)\n", h.Threshold(), int(h.Total()))
	return err
}
