package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sderosiaux/reservo-sub001/internal/app"
	"github.com/sderosiaux/reservo-sub001/internal/clock"
	"github.com/sderosiaux/reservo-sub001/internal/config"
	"github.com/sderosiaux/reservo-sub001/internal/obs"
	"github.com/sderosiaux/reservo-sub001/internal/storage/postgres"
	storageredis "github.com/sderosiaux/reservo-sub001/internal/storage/redis"
	transporthttp "github.com/sderosiaux/reservo-sub001/internal/transport/http"
	"github.com/sderosiaux/reservo-sub001/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := obs.NewLogger()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect to db", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Error("db ping", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Error("apply migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	metrics := obs.NewMetrics()

	var settings app.SettingsStore = postgres.NewSettingsRepository(pool)
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(startupCtx).Err(); err != nil {
			logger.Warn("redis unreachable, settings cache disabled", map[string]any{"error": err.Error()})
		} else {
			settings = storageredis.NewSettingsCache(client, settings, cfg.SettingsCacheTTL)
			logger.Info("settings cache enabled", map[string]any{"addr": cfg.RedisAddr})
		}
	}

	resourceRepo := postgres.NewResourceRepository(pool)
	resourceSvc := app.NewResourceService(resourceRepo, clock.NewSystem(),
		app.WithResourceSettings(settings))
	reservationRepo := postgres.NewReservationRepository(pool)
	reservationSvc := app.NewReservationService(reservationRepo, clock.NewSystem(),
		app.WithReservationSettings(settings))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/resources", transporthttp.HandleResources(resourceSvc))
	mux.Handle("/resources/", transporthttp.HandleResourceByID(resourceSvc))
	mux.Handle("/reservations", transporthttp.HandleReservations(reservationSvc, metrics))
	mux.Handle("/reservations/", transporthttp.HandleReservationByID(reservationSvc, metrics))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(
		transporthttp.Instrument(
			transporthttp.CORS(cfg.CORSOrigins, mux),
			metrics,
		),
		logger,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", map[string]any{"port": cfg.Port})

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", map[string]any{"error": err.Error()})
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server", nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", map[string]any{"error": err.Error()})
	}
	logger.Info("server stopped", nil)
}
