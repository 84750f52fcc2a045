package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Andrela2025/Agro-Conecta/internal/app"
	"github.com/Andrela2025/Agro-Conecta/internal/config"
	"github.com/Andrela2025/Agro-Conecta/internal/handler"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.SetupLogger()

	logrus.Infof("Agro-Conecta coffee assistant")
	logrus.Infof("Version: %s", Version)
	logrus.Infof("Build Time: %s", BuildTime)
	logrus.Infof("Git Commit: %s", GitCommit)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	var ledger handler.PurchaseLedger
	if a.Repo != nil {
		ledger = a.Repo
	} else {
		logrus.Warn("⚠️  No database configured - purchases will not be recorded")
		logrus.Warn("   Set DATABASE_URL and DB_DRIVER to enable the purchase ledger")
	}

	handlers := handler.Handlers{
		Ask:      handler.NewAskHandler(a.Router),
		Purchase: handler.NewPurchaseHandler(a.Calculator, ledger, cfg.Purchases.DefaultLimit, cfg.Purchases.MaxLimit),
		Options:  handler.NewOptionsHandler(a.Store),
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	handler.RegisterRoutes(router, handlers, handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	// Serve static files (frontend)
	if cfg.Server.StaticDir != "" {
		logrus.Infof("📦 Serving frontend from %s", cfg.Server.StaticDir)
		router.NoRoute(handler.StaticSite(os.DirFS(cfg.Server.StaticDir)))
	} else {
		router.NoRoute(handler.APINotFound)
	}

	addr := cfg.Addr()
	srv := &http.Server{Addr: addr, Handler: router}

	logrus.Infof("🚀 Starting server on %s", addr)
	logrus.Infof("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server shutdown failed: %v", err)
	}
	logrus.Info("✅ Server stopped")
}
