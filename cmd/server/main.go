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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/adapter/chromedp_fetcher"
	"github.com/user/salesbot-service/internal/adapter/httpfetch"
	"github.com/user/salesbot-service/internal/adapter/memory"
	"github.com/user/salesbot-service/internal/adapter/openrouter"
	"github.com/user/salesbot-service/internal/adapter/postgres"
	redis_adapter "github.com/user/salesbot-service/internal/adapter/redis"
	"github.com/user/salesbot-service/internal/config"
	"github.com/user/salesbot-service/internal/delivery/http/handler"
	"github.com/user/salesbot-service/internal/delivery/http/router"
	"github.com/user/salesbot-service/internal/delivery/http/widget"
	"github.com/user/salesbot-service/internal/extractor"
	"github.com/user/salesbot-service/internal/monitoring"
	"github.com/user/salesbot-service/internal/proxy"
	"github.com/user/salesbot-service/internal/repository"
	"github.com/user/salesbot-service/internal/usecase"
	"github.com/user/salesbot-service/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const janitorInterval = time.Minute

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	var (
		factsCache repository.FactsCache
		sessions   repository.SessionRepository
	)
	switch cfg.CacheBackend {
	case config.CacheRedis:
		rdb, err := redis_adapter.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("unable to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		factsCache = redis_adapter.NewFactsCache(rdb, cfg.CacheTTL())
		sessions = redis_adapter.NewSessionRepo(rdb)
		log.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	default:
		memCache := memory.NewFactsCache(cfg.CacheTTL(), time.Now)
		go memCache.RunJanitor(ctx, janitorInterval)
		factsCache = memCache
		sessions = memory.NewSessionStore()
	}

	var archive repository.ExtractionArchive
	if cfg.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("unable to connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal("unable to migrate database", zap.Error(err))
		}
		archive = postgres.NewArchiveRepo(pool)
		log.Info("PostgreSQL archive enabled")
	}

	// --- Fetchers ---
	proxies, err := proxy.NewManager(cfg.Proxies(), nil)
	if err != nil {
		log.Fatal("invalid proxy configuration", zap.Error(err))
	}

	var primary repository.PageFetcher
	switch cfg.FetchStrategy {
	case config.FetchBrowser:
		browser := chromedp_fetcher.NewChromedpFetcher(cfg.BrowserMaxConcurrency, cfg.FetchTimeout(), proxies, log)
		defer browser.Close()
		primary = browser
	default:
		primary = httpfetch.NewBrowserFetcher(httpfetch.Options{
			Timeout:      cfg.FetchTimeout(),
			MaxRedirects: cfg.FetchMaxRedirects,
			MaxBodyBytes: cfg.FetchMaxBodyBytes,
			Proxies:      proxies,
		})
	}
	secondary := httpfetch.NewMinimalFetcher(cfg.FallbackTimeout(), cfg.FetchMaxBodyBytes)

	// --- Use Cases ---
	ex, err := extractor.New(extractor.Options{
		BrandTerms:          cfg.BrandTerms(),
		DescriptionKeywords: cfg.Keywords(),
	}, log.Named("extractor"))
	if err != nil {
		log.Fatal("invalid extractor configuration", zap.Error(err))
	}
	extraction := usecase.NewExtractionUseCase(factsCache, primary, secondary, ex, archive, metrics, log.Named("extraction"))

	chatOpts := usecase.ChatOptions{
		CompletionTimeout: cfg.LLMTimeout(),
		Metrics:           metrics,
		Logger:            log.Named("chat"),
	}
	if cfg.LLMEnabled() {
		chatOpts.Completer = openrouter.NewClient(openrouter.Config{
			APIKey:      cfg.OpenRouterAPIKey,
			BaseURL:     cfg.OpenRouterAPIURL,
			Model:       cfg.OpenRouterModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout(),
			Referer:     cfg.AppReferer,
			Title:       cfg.AppTitle,
			RatePerSec:  cfg.LLMRatePerSecond,
			Burst:       cfg.LLMBurst,
		})
		log.Info("Completion service enabled", zap.String("model", cfg.OpenRouterModel))
	} else {
		log.Info("OPENROUTER_API_KEY not set, replies use templates only")
	}
	chat := usecase.NewChatUseCase(sessions, chatOpts)

	// --- HTTP Server ---
	renderer, err := widget.NewRenderer()
	if err != nil {
		log.Fatal("could not build widget renderer", zap.Error(err))
	}
	apiHandler := handler.NewHandler(extraction, chat, renderer, version, log.Named("http"))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler, metrics, registry, log.Named("http")),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("could not start server", zap.Error(err))
			stop()
		}
	}()
	log.Info("Server started",
		zap.String("port", cfg.ServerPort),
		zap.String("version", version),
		zap.String("cache", cfg.CacheBackend),
		zap.String("fetch", primary.Name()),
	)

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server exiting")
}
