package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academic-planner/backend/internal/cache"
	"academic-planner/backend/internal/config"
	"academic-planner/backend/internal/handlers"
	"academic-planner/backend/internal/middleware"
	"academic-planner/backend/internal/monitoring"
	"academic-planner/backend/internal/notify"
	"academic-planner/backend/internal/storage"
	"academic-planner/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	adapter, err := storage.NewGormAdapter(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open storage at %s: %v", cfg.Storage.Path, err)
	}
	defer adapter.Close()

	plannerStore, err := store.New(adapter)
	if err != nil {
		log.Fatalf("Failed to load planner document: %v", err)
	}

	viewCache := buildCache(cfg)
	defer viewCache.Close()

	// Any mutation drops every cached derived view.
	plannerStore.Subscribe(func(changed store.Collection) {
		if err := viewCache.DeletePattern("views:*"); err != nil {
			log.Printf("Cache invalidation failed: %v", err)
		}
	})

	feed := notify.NewFeed(cfg.Notifier.FeedLimit)
	tracker := notify.NewTracker(plannerStore, cfg.Notifier.PollInterval)
	tracker.OnSignal(feed.Record)
	tracker.OnSignal(func(s notify.Signal) {
		log.Printf("Reminder fired: %s %q", s.Type, s.Task.Title)
	})
	tracker.Start()
	defer tracker.Stop()

	monitor := monitoring.NewMonitor()
	monitor.RegisterCheck("storage", func(ctx context.Context) error {
		return adapter.Health()
	})
	monitor.RegisterCheck("cache", func(ctx context.Context) error {
		return viewCache.Health()
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit)
		defer limiter.Stop()
	}

	router := handlers.NewRouter(handlers.Deps{
		Store:   plannerStore,
		Feed:    feed,
		Cache:   viewCache,
		Monitor: monitor,
		Limiter: limiter,
		CORS:    cfg.CORS,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Academic planner listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// buildCache picks the cache topology from configuration. With Redis disabled
// the in-process level serves alone.
func buildCache(cfg *config.Config) cache.Cache {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache()
	}
	redisCache := cache.NewRedisCache(&cache.RedisConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	return cache.NewMultiLevelCache(redisCache)
}
