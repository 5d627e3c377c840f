package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/epigraph"
	"github.com/aretw0/epigraph/internal/metrics"
	httpAdapter "github.com/aretw0/epigraph/pkg/adapters/http"
	"github.com/aretw0/epigraph/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/epigraph/pkg/adapters/redis"
	"github.com/aretw0/epigraph/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves the model built from the resolved parameters over HTTP.
Compiled models are cached by parameter fingerprint, in memory or in Redis
when --redis-addr is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			redisAddr, _ := cmd.Flags().GetString("redis-addr")
			redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")

			p, err := loadParams(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}

			var store ports.ModelStore = memory.NewStore()
			if redisAddr != "" {
				rs := redisAdapter.New(redisAddr, os.Getenv("EPIGRAPH_REDIS_PASSWORD"), 0, redisAdapter.WithTTL(redisTTL))
				defer rs.Close()
				store = rs
				logger.Info("using redis model store", "addr", redisAddr)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			m := metrics.New(reg)

			builder := epigraph.New(
				epigraph.WithLogger(logger),
				epigraph.WithStore(store),
				epigraph.WithHooks(m.Hooks()),
			)
			server := httpAdapter.NewServer(builder, p, reg)

			// Fail fast on a base parameter set that cannot build.
			if _, err := server.Model(cmd.Context()); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    ":" + port,
				Handler: httpAdapter.NewHandler(server),
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("starting epigraph server", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				logger.Info("shutdown signal received")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					srv.Close()
					return fmt.Errorf("graceful shutdown did not complete: %w", err)
				}
				logger.Info("epigraph server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().String("redis-addr", "", "Redis address for the model cache (default in-memory)")
	cmd.Flags().Duration("redis-ttl", 0, "Expiration of cached models in Redis (0 keeps them)")
	return cmd
}
