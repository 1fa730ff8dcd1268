package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/relgraph/config"
	"github.com/c360studio/relgraph/export"
	"github.com/c360studio/relgraph/ontology"
	"github.com/c360studio/relgraph/pipeline"
	"github.com/c360studio/relgraph/source"
)

// materializeFlags overlay config values from the command line.
type materializeFlags struct {
	configPath  string
	ontology    string
	sources     []string
	formats     []string
	dest        string
	natsURL     string
	metricsAddr string
}

func (f *materializeFlags) apply(cfg *config.Config) {
	if f.ontology != "" {
		cfg.Ontology = f.ontology
	}
	if len(f.sources) > 0 {
		cfg.Sources.Patterns = f.sources
	}
	if len(f.formats) > 0 {
		cfg.Export.Formats = f.formats
	}
	if f.dest != "" {
		cfg.Export.Destination = f.dest
	}
	if f.natsURL != "" {
		cfg.NATS.URL = f.natsURL
	}
}

func materializeCmd() *cobra.Command {
	flags := &materializeFlags{}

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Load tabular sources and serialize the resulting graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			metrics, stop, err := setupMetrics(flags.metricsAddr)
			if err != nil {
				return err
			}
			defer stop()
			report, err := materialize(cmd.Context(), cfg, metrics)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			return nil
		},
	}

	addMaterializeFlags(cmd, flags)
	return cmd
}

func addMaterializeFlags(cmd *cobra.Command, flags *materializeFlags) {
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to config file (default: layered lookup)")
	cmd.Flags().StringVar(&flags.ontology, "ontology", "", "ontology to materialize against")
	cmd.Flags().StringArrayVarP(&flags.sources, "source", "s", nil, "source glob pattern (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.formats, "format", "f", nil, "output format (repeatable)")
	cmd.Flags().StringVarP(&flags.dest, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&flags.natsURL, "nats-url", "", "publish materialized entities to this NATS server")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics at this address (e.g. :9090)")
}

func loadConfig(flags *materializeFlags) (*config.Config, error) {
	var cfg *config.Config
	if flags.configPath != "" {
		loaded, err := config.LoadFromFile(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = config.DefaultConfig()
		cfg.Merge(loaded)
	} else {
		loaded, err := config.NewLoader(slog.Default()).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// materialize executes one full run from configuration. The metrics
// argument is shared across runs in watch mode and may be nil.
func materialize(ctx context.Context, cfg *config.Config, metrics *pipeline.Metrics) (*pipeline.Report, error) {
	registry, mappings, err := ontology.Load(cfg.Ontology)
	if err != nil {
		return nil, err
	}

	formats := make([]export.Format, 0, len(cfg.Export.Formats))
	for _, name := range cfg.Export.Formats {
		format, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}

	paths, err := source.Discover(cfg.Sources.Patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no sources matched %v", cfg.Sources.Patterns)
	}

	tables := make([]*source.Table, 0, len(paths))
	for _, path := range paths {
		table, err := source.ReadCSVFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	opts := []pipeline.Option{pipeline.WithLogger(slog.Default())}
	if metrics != nil {
		opts = append(opts, pipeline.WithMetrics(metrics))
	}
	p, err := pipeline.New(registry, mappings, opts...)
	if err != nil {
		return nil, err
	}

	report, err := p.Run(tables, formats, cfg.Export.Destination)
	if err != nil {
		return report, err
	}

	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name(appName))
		if err != nil {
			return report, fmt.Errorf("connect NATS: %w", err)
		}
		defer nc.Close()
		publisher := pipeline.NewPublisher(nc, cfg.NATS.Subject, appName)
		if err := publisher.Publish(ctx, p.Store()); err != nil {
			return report, err
		}
		slog.Info("published graph", "url", cfg.NATS.URL, "entities", len(p.Store().Subjects()))
	}

	return report, nil
}

// setupMetrics registers the run collectors and serves them over HTTP at
// addr. An empty addr disables metrics entirely; the returned stop function
// shuts the endpoint down.
func setupMetrics(addr string) (*pipeline.Metrics, func(), error) {
	if addr == "" {
		return nil, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	metrics, err := pipeline.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{Addr: addr, Handler: metricsHandler(reg)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics endpoint failed", "addr", addr, "error", err)
		}
	}()
	slog.Info("serving metrics", "addr", addr, "path", "/metrics")

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return metrics, stop, nil
}

// metricsHandler exposes the collectors of one registry.
func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
