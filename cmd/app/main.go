package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixel_plaza/internal/bot"
	"pixel_plaza/internal/config"
	"pixel_plaza/internal/db"
	httpServer "pixel_plaza/internal/http"
	"pixel_plaza/internal/http/middleware"
	"pixel_plaza/internal/jobs"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/service"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg := config.Load()
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	tasks := service.NewTaskService(dbPool, cfg.OneTimeTasksLock)
	if err := tasks.Seed(context.Background()); err != nil {
		logger.Fatal("failed to seed task catalog", "error", err)
	}
	events := service.NewEventService(dbPool)
	market := service.NewMarketService(dbPool)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Password")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, dbPool, cfg, version, events, tasks)

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()

	scheduler := jobs.NewScheduler(tasks, events, market)
	scheduler.Start(jobCtx)

	var tgBot *bot.Bot
	if cfg.BotEnabled {
		var err error
		tgBot, err = bot.New(cfg, dbPool, events, tasks)
		if err != nil {
			logger.Fatal("failed to start bot", "error", err)
		}
		go tgBot.Start()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if tgBot != nil {
		tgBot.Stop()
	}
	scheduler.Stop()
	jobCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
