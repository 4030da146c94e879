package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"pangate/internal/audit"
	"pangate/internal/cache"
	"pangate/internal/platform/config"
	"pangate/internal/platform/httpserver"
	"pangate/internal/platform/logger"
	"pangate/internal/platform/metrics"
	"pangate/internal/platform/middleware"
	"pangate/internal/platform/postgres"
	"pangate/internal/platform/redis"
	"pangate/internal/plugin/handler"
	"pangate/internal/plugin/models"
	"pangate/internal/plugin/providers"
	"pangate/internal/plugin/providers/nsdl"
	"pangate/internal/plugin/providers/unisen"
	"pangate/internal/plugin/service"
	"pangate/internal/plugin/store"
	"pangate/pkg/platform/sentinel"
	"pangate/pkg/secrets"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httpserver.Check{}

	plugins, db, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	if pg, ok := plugins.(*store.PostgresStore); ok {
		checks["postgres"] = pg.Health
	}

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithCircuitBreakers(cfg.Providers.BreakerThreshold, cfg.Providers.BreakerCooldown),
		service.WithCallTimeout(cfg.Providers.CallBudget()),
	}

	// The result cache is optional: an unreachable Redis only disables it,
	// a malformed REDIS_URL is a configuration error.
	rdb, err := redis.New(ctx, cfg.Redis)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		log.Warn("redis unavailable, pan result cache disabled", "error", err)
	case err != nil:
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = rdb.Health
		svcOpts = append(svcOpts, service.WithResultCache(cache.New(rdb.Client), cfg.PANResultCacheTTL))
	}

	recorder, closeAudit, err := buildAudit(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	svcOpts = append(svcOpts, service.WithAuditRecorder(recorder))

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	svc := service.New(plugins, registry, svcOpts...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Get("/health", httpserver.HealthHandler(checks))
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, cfg.AdminToken).Register(r)

	srv := httpserver.New(cfg.Addr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting pangate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore picks PostgreSQL when DATABASE_URL is set and the in-memory store otherwise.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.PluginStore, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, plugins are kept in memory")
		return store.NewInMemory(), nil, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	var opts []store.PostgresOption
	if cfg.CredentialsKey != "" {
		sealer, err := secrets.NewSealer(cfg.CredentialsKey)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		opts = append(opts, store.WithSealer(sealer))
	} else {
		log.Warn("CREDENTIALS_KEY not set, plugin secrets are stored unsealed")
	}
	return store.NewPostgres(db, opts...), db, nil
}

// buildAudit logs audit events, and also ships them to Kafka when brokers are configured.
func buildAudit(ctx context.Context, cfg config.Server, log *slog.Logger) (*audit.Recorder, func(), error) {
	logPublisher := audit.NewLogPublisher(log)
	if len(cfg.Audit.KafkaBrokers) == 0 {
		return audit.NewRecorder(logPublisher, audit.WithLogger(log)), func() {}, nil
	}

	kafka, err := audit.NewKafkaPublisher(cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, 1, 1); err != nil {
		log.Warn("could not ensure audit topic", "topic", kafka.Topic(), "error", err)
	}

	async := audit.NewAsyncPublisher(kafka, 1024, log)
	workerCtx, cancel := context.WithCancel(context.Background())
	go async.Run(workerCtx)

	closeFn := func() {
		cancel()
		async.Wait()
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := kafka.Close(flushCtx); err != nil {
			log.Warn("failed to flush audit producer", "error", err)
		}
	}
	return audit.NewRecorder(audit.Fanout(logPublisher, async), audit.WithLogger(log)), closeFn, nil
}

func buildRegistry(cfg config.Server) (*providers.Registry, error) {
	tracer := otel.Tracer("pangate/providers")
	opts := []providers.TransportOption{
		providers.WithMaxRetries(cfg.Providers.MaxRetries),
		providers.WithTracer(tracer),
	}
	return providers.NewRegistry(
		providers.Registration{
			Provider: models.ProviderNSDL,
			Impl:     nsdl.New(cfg.Providers.NSDLBaseURL, cfg.Providers.Timeout, opts...),
		},
		providers.Registration{
			Provider: models.ProviderUnisen,
			Impl:     unisen.New(cfg.Providers.UnisenBaseURL, cfg.Providers.Timeout, opts...),
		},
	)
}
