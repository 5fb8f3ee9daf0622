package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gorent/internal/backend"
	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/jobs"
	"gorent/internal/middleware"
	"gorent/internal/notify"
	"gorent/internal/session"
	"gorent/pkg/cache"
	"gorent/pkg/logger"
	"gorent/pkg/websocket"
	"gorent/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis is optional; without it sessions live in memory and the stats
	// cache is disabled.
	var redisCache *cache.RedisCache
	var sessions session.Store
	if cfg.Session.InMemory {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		appLog.Info("Using in-memory session store")
	} else {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		sessions = session.NewRedisStore(redisCache, cfg.Session.TTL)
	}

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, appLog)

	queue := notify.NewQueue()
	defer queue.Close()

	ws := websocket.NewHandler(appLog)
	ws.BindQueue(queue)

	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(client, sessions, cfg, appLog),
		Cars:    handlers.NewCarHandler(client, appLog),
		Booking: handlers.NewBookingHandler(client, queue, appLog),
		Reviews: handlers.NewReviewHandler(client, queue, appLog),
		Admin:   handlers.NewAdminHandler(client, redisCache, ws, appLog),
		WS:      ws,
	}

	refresher := jobs.NewStatsRefresher(client, redisCache, cfg.Backend, ws, appLog)
	if err := refresher.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start stats refresher")
	}
	defer refresher.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLog))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLog.WithError(err).Fatal("Invalid trusted proxies")
		}
	}

	routes.Setup(router, h, sessions, cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLog.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.WithError(err).Error("Forced shutdown")
	}
}
