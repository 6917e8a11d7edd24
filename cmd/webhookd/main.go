package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ledgerline-systems/paddlehook/common/logging"
	"github.com/ledgerline-systems/paddlehook/internal/config"
	"github.com/ledgerline-systems/paddlehook/internal/handlers"
	"github.com/ledgerline-systems/paddlehook/internal/metrics"
	"github.com/ledgerline-systems/paddlehook/internal/ratelimit"
	"github.com/ledgerline-systems/paddlehook/internal/server"
	"github.com/ledgerline-systems/paddlehook/internal/sink"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/cache"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/dispatch"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("webhookd"))
	logging.SetDefault(logger)

	slog.Info("Starting webhook service",
		slog.Int("port", cfg.Server.Port),
		slog.String("webhook_path", cfg.Webhook.Path),
		slog.String("log_level", cfg.Logging.Level),
		slog.Bool("run_in_background", cfg.Webhook.RunInBackground),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	paddleClient := client.New(client.Config{
		BaseURL:    cfg.Paddle.BaseURL,
		APIKey:     cfg.Paddle.APIKey,
		APIVersion: cfg.Paddle.APIVersion,
		Timeout:    cfg.Paddle.Timeout,
	})

	// Background context for cache refresh loops, cancelled on shutdown.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()

	// Signing secrets come from the notification settings registered under
	// the configured host. The service is not ready until the first load.
	secrets := cache.NewSecretCache(paddleClient, cfg.Webhook.Host)
	var secretsLoaded atomic.Bool

	onCycle := func(name string, err error) {
		if err != nil {
			metrics.CacheRefreshTotal.WithLabelValues(name, "error").Inc()
			slog.Error("cache refresh failed", slog.String("cache", name), logging.Err(err))
			return
		}
		metrics.CacheRefreshTotal.WithLabelValues(name, "ok").Inc()
		switch name {
		case "secrets":
			secretsLoaded.Store(true)
			metrics.CacheSize.WithLabelValues(name).Set(float64(secrets.Len()))
		}
	}
	go cache.RunPeriodic(refreshCtx, "secrets", secrets, cfg.Caches.RefreshInterval, onCycle)

	// Catalog caches keep price and product lookups local. Webhook events
	// update them between periodic refreshes.
	dispatchHandlers := dispatch.Handlers{}
	if cfg.Caches.Prices {
		prices := cache.NewPriceCache(paddleClient, cfg.Paddle.PerPage)
		dispatchHandlers.Price = &dispatch.PriceHandler{
			Caches: []dispatch.PriceCacheSink{prices},
		}
		priceCycle := func(name string, err error) {
			onCycle(name, err)
			if err == nil {
				metrics.CacheSize.WithLabelValues(name).Set(float64(prices.Len()))
			}
		}
		go cache.RunPeriodic(refreshCtx, "prices", prices, cfg.Caches.RefreshInterval, priceCycle)
	}
	if cfg.Caches.Products {
		products := cache.NewProductCache(paddleClient, cfg.Paddle.PerPage)
		dispatchHandlers.Product = &dispatch.ProductHandler{
			Caches: []dispatch.ProductCacheSink{products},
		}
		productCycle := func(name string, err error) {
			onCycle(name, err)
			if err == nil {
				metrics.CacheSize.WithLabelValues(name).Set(float64(products.Len()))
			}
		}
		go cache.RunPeriodic(refreshCtx, "products", products, cfg.Caches.RefreshInterval, productCycle)
	}

	allowIgnored := make([]events.EventType, 0, len(cfg.Webhook.AllowIgnoredEvents))
	for _, name := range cfg.Webhook.AllowIgnoredEvents {
		t := events.EventType(name)
		if !t.Valid() {
			log.Printf("WARNING: ignoring unknown event type in allow_ignored_events: %s", name)
			continue
		}
		allowIgnored = append(allowIgnored, t)
	}

	dispatcher := dispatch.New(dispatchHandlers, dispatch.Options{
		RunInBackground:    cfg.Webhook.RunInBackground,
		AllowIgnoredEvents: allowIgnored,
	})

	// Initialize rate limiter
	var rateLimiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.NewRedisRateLimiter(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
		)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Redis rate limiter: %v", err)
			log.Println("Continuing without rate limiting")
			rateLimiter = &ratelimit.NoOpRateLimiter{}
		} else {
			rateLimiter = limiter
			log.Printf("Rate limiting enabled: %d requests per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	} else {
		rateLimiter = &ratelimit.NoOpRateLimiter{}
		log.Println("Rate limiting disabled in configuration")
	}
	defer rateLimiter.Close()

	// Optional NATS sink for downstream consumers
	var publisher handlers.Publisher
	if cfg.NATS.Enabled {
		sinkCfg := sink.DefaultConfig()
		sinkCfg.URL = cfg.NATS.URL
		sinkCfg.SubjectPrefix = cfg.NATS.SubjectPrefix
		natsSink, err := sink.NewNATSSink(sinkCfg)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsSink.Close()
		publisher = natsSink
		log.Printf("Event sink enabled (nats: %s, prefix: %s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	} else {
		log.Println("Event sink disabled")
	}

	// Initialize HTTP handlers
	handler := handlers.NewWebhookHandler(secrets, dispatcher, publisher, rateLimiter, logger, handlers.Config{
		MaxSignatureAgeSeconds: cfg.Webhook.MaxSignatureAgeSeconds,
		MaxBodySize:            cfg.Webhook.MaxBodySize,
		RunInBackground:        cfg.Webhook.RunInBackground,
	})
	router := server.NewRouter(cfg.Webhook.Path, handler, secretsLoaded.Load)

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Webhook service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop refresh loops, then drain background dispatches before the sink
	// and limiter close.
	stopRefresh()
	done := make(chan struct{})
	go func() {
		dispatcher.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		log.Println("WARNING: background dispatches did not drain in time")
	}

	log.Println("Server stopped")
}
