package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentvoice-backend/internal/ai"
	"studentvoice-backend/internal/config"
	"studentvoice-backend/internal/logger"
	"studentvoice-backend/internal/telemetry"
	"studentvoice-backend/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration; missing Firebase values or Gemini key are fatal
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger.InitLogger(cfg)

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.OTLPEndpoint, cfg.GinMode, cfg.TraceSampleRatio)
		if err != nil {
			log.Fatal("Failed to initialize tracing: ", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdownTracer(ctx)
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics: ", err)
	}

	gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, metrics)
	if err != nil {
		log.Fatal("Failed to create Gemini client: ", err)
	}
	defer gemini.Close()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	routes.CheckPages(cfg)

	router, err := routes.NewRouter(cfg, gemini, metrics)
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Backend server running",
			"port", cfg.Port,
			"user_panel", "http://localhost:"+cfg.Port,
			"admin_panel", "http://localhost:"+cfg.Port+"/admin.html",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
