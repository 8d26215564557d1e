package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/arbor/internal/config"
	"github.com/vango-dev/arbor/internal/demo"
	"github.com/vango-dev/arbor/pkg/arbor"
	"github.com/vango-dev/arbor/pkg/inspect"
	"github.com/vango-dev/arbor/pkg/middleware"
)

func inspectCmd(flags *globalFlags) *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the inspector over a ticking demo tree",
		Long: `Mount a counter and a keyed list, change them on every tick and
serve the inspector.

Endpoints:
  GET /scopes        latest scope snapshot
  GET /scopes/{id}   one scope
  GET /stats         model counters
  GET /errors        recent update failures
  GET /metrics       Prometheus metrics
  GET /ws            snapshot stream

Examples:
  arbor inspect
  arbor inspect --addr 127.0.0.1:9090 --interval 500ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Inspector.Addr = addr
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runInspect(ctx, cfg, interval)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "Time between demo updates")

	return cmd
}

func runInspect(ctx context.Context, cfg *config.Config, interval time.Duration) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rec := inspect.NewRecorder()
	observers := []arbor.Observer{rec}
	if cfg.Metrics.Enabled {
		opts := append(cfg.MetricsOptions(), middleware.WithRegistry(registry))
		observers = append(observers, middleware.Prometheus(opts...))
	}

	m, err := newModel(cfg, arbor.WithObserver(observers...))
	if err != nil {
		return err
	}
	logger := m.Logger()
	srv := inspect.NewServer(rec, inspect.WithGatherer(registry), inspect.WithLogger(logger))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, cfg.Inspector.Addr)
	}()

	items := []string{"a", "b", "c", "d"}
	surface, err := demo.Mount(m,
		demo.Counter.New(demo.CounterParams{}),
		demo.List.New(demo.ListParams{Items: items}),
	)
	if err != nil {
		return err
	}
	success("Inspector on http://%s", cfg.Inspector.Addr)
	info("Press Ctrl+C to stop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	button := surface.Root().FindButton("+")

	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			button.Click()
			items = demo.Rotate(items)
			if _, err := demo.Mount(m,
				demo.Counter.New(demo.CounterParams{}),
				demo.List.New(demo.ListParams{Items: items}),
			); err != nil {
				logger.Error("demo update failed", "error", err)
			}
			if err := m.Flush(); err != nil {
				logger.Error("flush failed", "error", err)
			}
		case <-ctx.Done():
			if err := m.Unmount(); err != nil {
				logger.Warn("unmount failed", "error", err)
			}
			return <-errCh
		}
	}
}
