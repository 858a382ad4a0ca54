package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/csdlgen/pkg/adapters/http"
	"github.com/aretw0/csdlgen/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve [graph]",
	Short: "Serve the rendered document over HTTP",
	Long: `Starts an HTTP server exposing GET /$metadata, /$metadata/schemas, /healthz, /metrics and the
documents of the configured store. The graph is re-read on every request.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, args)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			a.cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		store, closeStore, err := a.store()
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		handler := httpAdapter.NewHandler(httpAdapter.Options{
			Emitter:  a.emitter(store, metrics),
			Source:   a.program,
			Store:    store,
			Gatherer: reg,
			Logger:   a.logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.logger.Info("Serving graph", "path", a.cfg.Graph)
		return httpAdapter.ListenAndServe(ctx, a.cfg.Server.Addr, handler, a.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
