package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"neuronwatch"
	_ "neuronwatch/docs"
	"neuronwatch/internal/handlers"
	"neuronwatch/internal/logger"
	"neuronwatch/internal/server"
	"neuronwatch/internal/service"
	"neuronwatch/internal/stream"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Monitor the stream and serve the live view over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (default from http.port)")
}

// newMonitor builds the monitor shared by serve and watch.
func newMonitor(cfg Config, log *logger.Logger, onEntry func(neuronwatch.LogEntry)) *service.Monitor {
	return service.NewMonitor(service.Options{
		Addr:          cfg.CortexURL,
		Dialer:        stream.NewWebsocketDialer(),
		Log:           log.Named("monitor"),
		LogCapacity:   cfg.LogCapacity,
		RetryInterval: cfg.RetryInterval,
		PulseWindow:   cfg.PulseWindow,
		OnEntry:       onEntry,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(viper.New(), configPath, cmd.Flags())
	if err != nil {
		return err
	}
	log := logger.Get(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := newMonitor(cfg, log, nil)
	apiHandler := handlers.NewHandler(service.NewService(monitor), log.Named("http"))

	srv := server.New(cfg.HTTPPort, apiHandler.InitRoutes())
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTPPort, err)
	}

	monitor.Start(ctx)
	defer monitor.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()
	log.Infow("http_listening", "addr", srv.Addr(), "cortex", cfg.CortexURL)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
