package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meteradmin/internal/api"
	"meteradmin/internal/app"
	"meteradmin/internal/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	var configPath, listen, dataDir, backend string
	var verbose bool

	root := &cobra.Command{
		Use:          "meterd",
		Short:        "Serve the meteradmin HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if dataDir != "" {
				cfg.DataDir, cfg.SQLitePath, cfg.TokenSecretFile = dataDir, "", ""
				cfg.ApplyDefaults()
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, log)
		},
	}
	f := root.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&listen, "listen", "", "listen address (overrides the config)")
	f.StringVar(&dataDir, "data-dir", "", "data directory (overrides the config)")
	f.StringVar(&backend, "backend", "", "document backend: file or sqlite")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg app.Config, log *zap.Logger) error {
	w, err := app.NewWire(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	srv := api.NewHTTPServer(cfg.Listen, w.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("meterd listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("backend", cfg.Backend),
			zap.String("dataDir", cfg.DataDir),
		)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
