package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/chat"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/config"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/database"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/handlers"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/middleware"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/models"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/presence"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/relay"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/routes"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Labor Hire Chat Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Redis
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("🔄 Running Database Migrations...")
	if err := database.DB.AutoMigrate(&models.ChatMessage{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate chat messages table")
	}
	logger.Info().Msg("✅ Database Migrations Complete")

	// 2. Build the chat core: store, presence table, relay
	store := chat.NewStore(database.DB)
	table := presence.NewTable()
	chatHandler := handlers.NewChatHandler(store)
	relaySvc := relay.New(table)

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Exempt the socket.io handshake from rate limiting
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	// 4. Register Routes
	api := r.Group("/api")
	routes.RegisterChatRoutes(api, chatHandler)

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "Labor Hire Chat Backend is running 🚀",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 5. Init Socket.io relay
	socketServer := handlers.InitSocketServer(table, relaySvc)
	defer socketServer.Close()

	r.GET("/socket.io/*any", handlers.SocketHandler(socketServer))
	r.POST("/socket.io/*any", handlers.SocketHandler(socketServer))

	// 6. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "3000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("✅ Server exited gracefully")
}
