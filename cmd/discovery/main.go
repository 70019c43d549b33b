package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel-discovery/internal/common/cache"
	"travel-discovery/internal/common/config"
	"travel-discovery/internal/common/dispatch"
	httpc "travel-discovery/internal/common/http"
	"travel-discovery/internal/common/logger"
	"travel-discovery/internal/common/metrics"
	"travel-discovery/internal/common/observability"
	"travel-discovery/internal/discovery"
	"travel-discovery/internal/loader"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./configs/config.yaml)")
	catalogPath := flag.String("catalog", "", "path to a JSON catalog replacing the built-in sample content")
	once := flag.Bool("once", false, "exit after the discover screen has loaded")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- UI-affine queue ---
	// Runs past the signal so loads cancelled by it still settle; Close stops it.
	queue := dispatch.NewQueue(cfg.Dispatch.QueueSize)
	queue.Start(context.Background())
	defer queue.Close()

	// --- Fetch layer ---
	var fetcher httpc.Fetcher = httpc.Default
	if cfg.Cache.Enabled {
		rc, err := cache.NewRedis(cfg.Cache.Redis)
		if err != nil {
			zapLog.Fatal("redis client init failed", zap.Error(err))
		}
		defer rc.Close()

		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable, responses will not be cached", map[string]interface{}{"error": err.Error()})
		} else {
			fetcher = cache.NewCachingFetcher(rc, fetcher, cfg.Cache.TTLDuration(), cfg.Cache.Prefix, log)
			zapLog.Info("response cache enabled", zap.String("redis", cfg.Cache.Redis.Address))
		}
	}

	// --- Instruments ---
	instruments := loader.Instruments{metrics.Instrument{}}
	if cfg.Metrics.Tracing {
		obs := observability.New(cfg.App.Name, observability.WithLogger(log), observability.WithGlobal())
		defer obs.Shutdown()
		instruments = append(instruments, obs)
	}

	var srv *http.Server
	if cfg.Metrics.Enabled {
		srv = serveMetrics(cfg.Metrics.Address, log)
	}

	client := discovery.NewClient(cfg.API.BaseURL,
		loader.WithFetcher(fetcher),
		loader.WithDispatcher(queue),
		loader.WithLogger(log),
		loader.WithInstrument(instruments),
	)

	catalog := discovery.DefaultCatalog()
	if *catalogPath != "" {
		if catalog, err = discovery.LoadCatalog(*catalogPath); err != nil {
			zapLog.Fatal("catalog load failed", zap.Error(err))
		}
	}

	zapLog.Info("loading discover screen", zap.String("baseUrl", client.BaseURL()))
	screen := loadDiscoverScreen(ctx, client, catalog, log)

	select {
	case <-screen.Done():
		zapLog.Info("discover screen settled",
			zap.Int("loaded", screen.Loaded()),
			zap.Int("failed", screen.Failed()),
		)
	case <-ctx.Done():
		grace, stop := context.WithTimeout(context.Background(), 2*time.Second)
		unsettled := screen.Unsettled(grace)
		stop()
		zapLog.Info("shutdown signal received before the screen settled",
			zap.Int("unsettled", unsettled),
			zap.Int("failed", screen.Failed()),
		)
	}

	if !*once && srv != nil {
		<-ctx.Done()
	}

	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}
	zapLog.Info("discovery stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func serveMetrics(addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics server listening", map[string]interface{}{"address": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	return srv
}
