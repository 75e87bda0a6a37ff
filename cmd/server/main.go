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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/a2a"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/api"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/cache"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/config"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/memory"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/metrics"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/storage"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.Open(cfg.DB.Driver, cfg.DB.DSN, log)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	suggestionCache, closeCache, err := newCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := suggest.Options{Cache: suggestionCache, Metrics: rec, Timeout: cfg.Gemini.Timeout}
	if cfg.Gemini.Configured() {
		gemini, err := suggest.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		defer gemini.Close()
		opts.AI = gemini
		log.Info("AI generation enabled", "model", cfg.Gemini.Model)
	} else {
		log.Warn("GEMINI_API_KEY not set, serving fallback content only")
	}
	svc := suggest.NewService(opts, log)

	baseURL := fmt.Sprintf("http://localhost:%s", cfg.Port)
	router := api.NewRouter(api.RouterConfig{
		Handler:        api.NewHandler(store, blueprint.NewClassifier(nil), svc, rec, log),
		AuthMiddleware: auth.NewMiddleware(cfg.JWT, store, log),
		A2A:            a2a.NewHandler(svc, memory.NewLoader(store, log), a2a.DefaultCard(baseURL), log),
		Metrics:        rec,
		Gatherer:       reg,
		Origins:        cfg.Origins,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Blueprint companion starting", "port", cfg.Port, "env", cfg.AppEnv)
		log.Info("Agent card available", "url", baseURL+"/.well-known/agent.json")
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

// newCache uses Redis when REDIS_ADDR is set and reachable, otherwise an
// in-process LRU.
func newCache(ctx context.Context, cfg config.Config, log *logger.Logger) (suggest.Cache, func(), error) {
	cacheCfg := cache.Config{TTL: cfg.Redis.CacheTTL}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Info("suggestion cache: redis", "addr", cfg.Redis.Addr)
			return cache.NewRedisCache(client, cacheCfg), func() { _ = client.Close() }, nil
		}
		log.Warn("redis unreachable, using in-process cache", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
	}
	lruCache, err := cache.NewLRUCache(cacheCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create cache: %w", err)
	}
	log.Info("suggestion cache: in-process")
	return lruCache, func() {}, nil
}
