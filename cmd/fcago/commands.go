package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/fcago"
	"github.com/hupe1980/fcago/prommetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
	json      bool
	metrics   bool

	registry *prometheus.Registry
	prom     *prommetrics.Collector
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "fcago",
		Short:         "Formal concept analysis on context snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error); empty disables logging")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")
	root.PersistentFlags().BoolVar(&g.json, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&g.metrics, "metrics", false, "print Prometheus metrics to stderr after the command")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		return g.setupMetrics()
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return g.dumpMetrics(cmd.ErrOrStderr())
	}

	root.AddCommand(
		newInfoCmd(g),
		newConceptsCmd(g),
		newFactorizeCmd(g),
		newConvertCmd(g),
	)
	return root
}

// logger builds the logger selected by the global flags. Logs go to stderr.
func (g *globalFlags) logger() (*fcago.Logger, error) {
	if g.logLevel == "" {
		return fcago.NoopLogger(), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}

	hopts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(g.logFormat) {
	case "text":
		return fcago.NewLogger(slog.NewTextHandler(os.Stderr, hopts)), nil
	case "json":
		return fcago.NewLogger(slog.NewJSONHandler(os.Stderr, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", g.logFormat)
	}
}

// load reads the snapshot at path.
func (g *globalFlags) load(path string) (*fcago.Context, *fcago.Logger, error) {
	logger, err := g.logger()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	c, err := fcago.ReadContext(f, fcago.WithLogger(logger), fcago.WithMetricsCollector(g.collector()))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c, logger, nil
}

// setupMetrics registers a Prometheus collector on a private registry when
// --metrics is set.
func (g *globalFlags) setupMetrics() error {
	if !g.metrics {
		return nil
	}
	g.registry = prometheus.NewRegistry()
	col, err := prommetrics.New(func(o *prommetrics.Options) {
		o.Registerer = g.registry
	})
	if err != nil {
		return err
	}
	g.prom = col
	return nil
}

// collector returns the collector selected by --metrics.
func (g *globalFlags) collector() fcago.MetricsCollector {
	if g.prom == nil {
		return fcago.NoopMetricsCollector{}
	}
	return g.prom
}

// dumpMetrics writes the gathered metrics in the Prometheus text format.
func (g *globalFlags) dumpMetrics(w io.Writer) error {
	if g.registry == nil {
		return nil
	}
	families, err := g.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// conceptJSON is the JSON form of a concept.
type conceptJSON struct {
	Extent []string `json:"extent"`
	Intent []string `json:"intent"`
}

func toJSON(c fcago.Concept) conceptJSON {
	return conceptJSON{Extent: c.Extent.Labels(), Intent: c.Intent.Labels()}
}
