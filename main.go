// File: doclink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doclink/config"
	"doclink/cron"
	"doclink/handlers"
	"doclink/routes"
	"doclink/services/client"
	"doclink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb = utils.GetSessionCacheClient()
		utils.StartHealthMonitor(rootCtx, rdb, 10*time.Second)
	} else {
		logger.Warn("Redis disabled; long-lived session tier kept in memory")
	}

	registry := client.NewRegistry(client.Options{
		APIBaseURL:      cfg.APIBaseURL,
		HTTPClient:      &http.Client{Timeout: cfg.HTTPTimeout()},
		Redis:           rdb,
		SessionTTL:      cfg.SessionTTL(),
		EncryptionKey:   cfg.SessionKey,
		StrictRoleMatch: cfg.StrictRoleMatch,
		Logger:          logger,
	})

	scheduler, err := cron.StartRefreshWorker(cfg.RefreshSchedule, cfg.ClientIdle(), registry, logger)
	if err != nil {
		logger.Fatal("main: failed to start refresh worker", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlerBundle := handlers.NewHandlerBundle(registry, logger, cfg.MaxRequestsPerMin, cfg.AllowedOrigins())
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("backend", cfg.APIBaseURL))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	<-scheduler.Stop().Done()
	stopMonitors()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("main: server forced to shutdown", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("main: server stopped gracefully")
	_ = logger.Sync()
}
