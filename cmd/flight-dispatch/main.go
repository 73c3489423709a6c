package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ddrozdov/flight-dispatch/internal/api"
	"github.com/ddrozdov/flight-dispatch/internal/config"
	"github.com/ddrozdov/flight-dispatch/internal/dispatch"
	"github.com/ddrozdov/flight-dispatch/internal/logging"
	"github.com/ddrozdov/flight-dispatch/internal/repository"
	"github.com/ddrozdov/flight-dispatch/internal/weather"
	"github.com/ddrozdov/flight-dispatch/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.FetchTimeout)
	cache := weather.NewCache()
	evaluator := dispatch.NewEvaluator(client, cache, cfg.Weather.TTL)

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.BufferSize, db.Add)
	pool.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.API.RateLimitRPS, cfg.API.RateLimitRPS))

	handler := api.NewHandler(evaluator, db, pool)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	pool.Stop()

	slog.Info("shutdown complete")
}
