package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc/health"

	"github.com/af-corp/model-catalog/internal/auth"
	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/filter"
	"github.com/af-corp/model-catalog/internal/filter/policy"
	"github.com/af-corp/model-catalog/internal/ratelimit"
	"github.com/af-corp/model-catalog/internal/server"
	"github.com/af-corp/model-catalog/internal/store"
	"github.com/af-corp/model-catalog/internal/telemetry"
	"github.com/af-corp/model-catalog/internal/types"
)

var version = "dev"

func main() {
	configDir := flag.String("config", "configs", "path to configuration directory")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	loader := config.NewLoader(*configDir, logger)
	if err := loader.Load(); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	logger = telemetry.NewLogger(cfg.Telemetry, os.Stdout)
	slog.SetDefault(logger)

	if err := loader.Watch(); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg)

	// Redis backs the record cache and the rate limiter.
	rdb := store.NewRedis(cfg.Redis)
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not reachable (cache and rate limiting disabled)", "error", err)
			rdb.Close()
			rdb = nil
		} else {
			logger.Info("redis connected")
			defer rdb.Close()
		}
	}

	// Record source
	var (
		source catalog.RecordSource = catalog.FileSource{Path: cfg.Catalog.SnapshotPath}
		pool   *pgxpool.Pool
	)
	if cfg.Catalog.Backend == config.BackendPostgres {
		var err error
		pool, err = store.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("database connected")
		source = store.New(pool, rdb)
	}

	// Policy stage
	evaluator := policy.NewEvaluator(func() config.PolicyConfig {
		return loader.Config().Scoring.Policy
	})
	if cfg.Scoring.Policy.Enabled {
		if err := evaluator.Load(); err != nil {
			logger.Error("failed to load policies", "error", err)
			os.Exit(1)
		}
	}
	engine := filter.NewEngine(evaluator)

	// Record set
	holder := catalog.NewHolder()
	healthSrv := health.NewServer()
	var useCases atomic.Pointer[[]types.UseCase]

	reload := func(ctx context.Context) error {
		err := holder.Reload(ctx, source)
		records, _ := holder.Records()
		metrics.RecordReload(err, len(records))
		if err != nil {
			logger.Error("catalog reload failed", "error", err, "serving_previous", len(records))
		} else {
			logger.Info("catalog loaded", "records", len(records), "backend", string(loader.Config().Catalog.Backend))
		}
		server.SyncHealth(healthSrv, holder)

		ucs, ucErr := config.LoadUseCases(filepath.Join(*configDir, "usecases"))
		if ucErr != nil {
			logger.Warn("failed to load use cases", "error", ucErr)
		} else {
			useCases.Store(&ucs)
		}
		return err
	}
	_ = reload(ctx)

	loader.OnReload(func() {
		if loader.Config().Scoring.Policy.Enabled {
			if err := evaluator.Load(); err != nil {
				logger.Error("failed to reload policies", "error", err)
			}
		}
		_ = reload(ctx)
	})

	// HTTP
	handler := server.NewHandler(holder, engine, metrics, func() []types.UseCase {
		if p := useCases.Load(); p != nil {
			return *p
		}
		return nil
	}, version)

	opts := server.Options{Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
	if cfg.RateLimit.Enabled {
		opts.Limiter = ratelimit.NewLimiter(rdb)
		opts.RPM = cfg.RateLimit.RequestsPerMinute
	}

	if cfg.Admin.Enabled {
		var keys auth.KeyStore
		if pool != nil {
			keys = auth.NewCachedKeyStore(pool, rdb)
		} else {
			static := auth.NewStaticKeyStore(cfg.Admin.KeyHashes)
			if static.Len() == 0 {
				logger.Warn("admin api enabled without key_hashes; every admin request will be rejected")
			}
			keys = static
		}
		opts.Admin = auth.Middleware(keys)
		opts.Reload = reload
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// gRPC health
	grpcAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Error("failed to listen for grpc", "addr", grpcAddr, "error", err)
		os.Exit(1)
	}
	grpcSrv := server.NewGRPCServer(healthSrv)

	// Graceful shutdown
	errCh := make(chan error, 2)
	go func() {
		logger.Info("catalog service starting", "addr", addr, "grpc_addr", grpcAddr, "version", version)
		errCh <- srv.ListenAndServe()
	}()
	go func() {
		errCh <- grpcSrv.Serve(lis)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

wait:
	for {
		select {
		case sig := <-quit:
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading catalog")
				_ = reload(ctx)
				continue
			}
			logger.Info("received shutdown signal", "signal", sig)
			break wait
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "error", err)
				os.Exit(1)
			}
			break wait
		}
	}

	healthSrv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	grpcSrv.GracefulStop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog service stopped")
}
