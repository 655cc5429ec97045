// chatbridged connects to a messaging host, taps every event stream into
// structured logs and Prometheus metrics, and serves health/metrics over
// HTTP. Useful as a standing diagnostic relay next to an application.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatbridge"
	"chatbridge/eventhub"
	"chatbridge/internal/config"
	"chatbridge/internal/metrics"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "chatbridged",
		Short:        "messaging host event relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "path to config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Error().Err(err).Msg("failed to load config")
		return err
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info().
		Str("config", configPath).
		Str("hostUrl", cfg.HostURL).
		Str("listenAddr", cfg.ListenAddr).
		Msg("starting chatbridged")

	reg := prometheus.NewRegistry()
	bridgeMetrics := metrics.New(reg)

	dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.GetDialTimeoutDuration())
	client, err := chatbridge.Dial(dialCtx, cfg.HostURL,
		chatbridge.WithLogger(logger),
		chatbridge.WithStats(bridgeMetrics),
		chatbridge.WithCallRecorder(bridgeMetrics),
		chatbridge.WithEventBuffer(cfg.EventBufferSize),
		chatbridge.WithPushDedupSize(cfg.PushDedupSize),
	)
	cancelDial()
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to host")
		return err
	}

	tapCtx, stopTaps := context.WithCancel(context.Background())
	var taps sync.WaitGroup
	for _, class := range chatbridge.EventClasses() {
		sub, err := client.Subscribe(class)
		if err != nil {
			logger.Error().Err(err).Str("class", string(class)).Msg("failed to subscribe")
			continue
		}
		taps.Add(1)
		go tap(tapCtx, &taps, logger, sub)
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server failed")
		}
	}()
	logger.Info().Str("addr", cfg.ListenAddr).Msg("serving health and metrics")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during http shutdown")
	}

	stopTaps()
	if err := client.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing bridge client")
	}
	taps.Wait()
	return nil
}

// tap mirrors one event stream into the log until the stream or the daemon
// stops.
func tap(ctx context.Context, wg *sync.WaitGroup, logger zerolog.Logger, sub *eventhub.Subscription) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			logger.Info().
				Str("class", string(ev.Class)).
				RawJSON("payload", ev.Payload).
				Msg("event")
		}
	}
}

// setupLogger configures the zerolog logger.
func setupLogger(level string) zerolog.Logger {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
