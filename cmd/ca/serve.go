package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"camusicgen/internal/worker"
)

func newServeCmd(e *env) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer init/step/generate messages as JSON lines on stdin/stdout",
		Long: "Read one JSON message per line from stdin and write one JSON response per\n" +
			"line to stdout. Messages are handled concurrently (--workers) but answered\n" +
			"in the order they arrived. Responses echo the message id, or carry a\n" +
			"generated one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			metrics := worker.NewMetrics(reg)
			pool := worker.NewPool(worker.NewHandler(e.log, metrics), e.cfg.Workers)

			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						e.log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics listener stopped")
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			e.log.Info().Int("workers", e.cfg.Workers).Str("metrics", metricsAddr).Msg("serving")
			err := pool.Serve(ctx, e.in, e.out)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			e.log.Info().Msg("input closed")
			return err
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (disabled when empty)")
	return cmd
}
