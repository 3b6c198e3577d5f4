package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/brettbedarf/foldertree/config"
	"github.com/brettbedarf/foldertree/harness"
	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/brettbedarf/foldertree/metrics"
	"github.com/brettbedarf/foldertree/tree"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	var (
		verbose    int
		configPath string
		scriptPath string
		stress     bool
	)
	fset := flag.NewFlagSet("foldertree", flag.ContinueOnError)
	fset.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	fset.StringVar(&configPath, "c", "", "--config (shorthand)")
	fset.StringVar(&scriptPath, "script", "", "Path to a script of operations to run instead of the demo")
	fset.StringVar(&scriptPath, "s", "", "--script (shorthand)")
	fset.BoolVar(&stress, "stress", false, "Run a randomized stress workload using the stress config section")
	fset.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	fset.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// an explicit flag wins over config and environment
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "v" || f.Name == "verbose" {
			cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
		}
	})
	util.InitializeLogger(cfg.LogLvl, os.Stderr)
	logger := util.GetLogger("main")
	logger.Info().
		Str("config", configPath).
		Str("script", scriptPath).
		Bool("stress", stress).
		Bool("metrics", cfg.Metrics).
		Msg("foldertree initializing")

	var reg *prometheus.Registry
	opts := []tree.Option{}
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, tree.WithMetrics(metrics.New(reg)))
	}
	t := tree.New(cfg, opts...)

	var code int
	if stress {
		code = runStress(t, cfg, out)
	} else {
		code = runScript(t, scriptPath, out)
	}

	if reg != nil {
		if err := printMetrics(out, reg); err != nil {
			logger.Error().Err(err).Msg("Failed to gather metrics")
		}
	}
	return code
}

func runScript(t *tree.Tree, path string, out io.Writer) int {
	logger := util.GetLogger("main")
	defer t.Close()

	script := harness.DemoScript()
	if path != "" {
		var err error
		if script, err = harness.LoadScript(path); err != nil {
			logger.Error().Err(err).Str("script", path).Msg("Failed to load script")
			return 1
		}
	}

	outcomes, err := harness.RunScript(t, script)
	for _, o := range outcomes {
		line := fmt.Sprintf("%s = %s", o.Operation, o.Result)
		if o.Failure != "" {
			line += "  # " + o.Failure
		}
		fmt.Fprintln(out, line)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Script failed")
		return 1
	}
	return 0
}

func runStress(t *tree.Tree, cfg *config.Config, out io.Writer) int {
	logger := util.GetLogger("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	harness.RunSomeCreates(harness.NewRNG(0), t)
	report, err := harness.Stress(ctx, t, cfg.Stress)

	fmt.Fprintf(out, "run %s: %d ops by %d workers in %s\n", report.ID, report.Ops, report.Workers, report.Duration)
	for _, code := range slices.Sorted(maps.Keys(report.Codes)) {
		fmt.Fprintf(out, "  %-12s %d\n", code, report.Codes[code])
	}

	if errors.Is(err, harness.ErrDeadlock) {
		// stuck workers still hold locks, so the tree cannot be torn down
		logger.Error().Err(err).Msg("Stress run failed")
		return 1
	}
	t.Close()
	return 0
}

// printMetrics writes every gathered sample as "name{labels} value"
func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				if labels != "" {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), labels, value)
		}
	}
	return nil
}
