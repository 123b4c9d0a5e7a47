package cli

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/internal/metrics"
	"github.com/matzehuels/tooltipper/internal/server"
	"github.com/matzehuels/tooltipper/pkg/observability"
)

type serveOpts struct {
	addr    string
	metrics bool
	cache   cacheFlags
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: envOrDefault("TOOLTIPPER_ADDR", ":8080"), metrics: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement and simulation HTTP API",
		Example: `  tooltipper serve --addr :8080
  tooltipper serve --cache redis --redis-url redis://cache:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address (env TOOLTIPPER_ADDR)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics on /metrics")
	opts.cache.register(cmd, cacheMemory)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := opts.cache.open(ctx, c.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srvOpts := []server.Option{
		server.WithLogger(c.Logger),
		server.WithCache(store, opts.cache.ttl),
	}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics.New(metrics.WithRegistry(reg)).Install()
		defer observability.Reset()
		srvOpts = append(srvOpts, server.WithGatherer(reg))
	}

	c.Logger.Info("starting", "addr", opts.addr, "cache", opts.cache.kind, "metrics", opts.metrics)
	return server.New(srvOpts...).Run(ctx, opts.addr)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
