package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/api"
	"github.com/dynastycap/capmanager/internal/api/handlers"
	"github.com/dynastycap/capmanager/internal/api/middleware"
	"github.com/dynastycap/capmanager/internal/providers"
	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/internal/services"
	"github.com/dynastycap/capmanager/pkg/config"
	"github.com/dynastycap/capmanager/pkg/database"
	"github.com/dynastycap/capmanager/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Services
	cacheService := services.NewCacheService(redisClient)
	sleeperClient := providers.NewSleeperClient(log, cfg.SleeperAPITimeout, cfg.SleeperRateLimit)
	playerRepo := repository.NewPlayerRepository(db)
	resolver := services.NewStatsResolver(sleeperClient, playerRepo, log)

	statsSync := services.NewStatsSyncService(sleeperClient, playerRepo, resolver, log, func() string {
		return cfg.CurrentSeason
	})
	if cfg.EnableStatsSync {
		if err := statsSync.Start(); err != nil {
			log.Errorf("Failed to start stats sync: %v", err)
		}
		defer statsSync.Stop()
	}

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	router.GET("/health", handlers.Health)

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db, cacheService, resolver, statsSync, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
