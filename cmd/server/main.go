package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foodgraph/internal/auth"
	"foodgraph/internal/catalog"
	"foodgraph/internal/commons"
	"foodgraph/internal/config"
	"foodgraph/internal/infrastructure/cache"
	"foodgraph/internal/infrastructure/graphdb"
	"foodgraph/internal/infrastructure/logger"
	"foodgraph/internal/infrastructure/token"
	"foodgraph/internal/order"
	"foodgraph/internal/server"
)

func main() {
	// Missing .env is fine; everything can come from the environment.
	godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := graphdb.NewStore(ctx, cfg.Graph, zapLogger)
	cancel()
	if err != nil {
		zapLogger.Fatal("connecting to graph store", zap.Error(err))
	}
	defer store.Close(context.Background())
	zapLogger.Info("graph store connected", zap.String("uri", cfg.Graph.URI))

	cacheClient := cache.NewClient(context.Background(), cfg.Cache.RedisAddr)
	tokenSvc := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	authCtrl := auth.NewModule(store, tokenSvc, zapLogger)
	catalogCtrl := catalog.NewModule(store, cacheClient, cfg, zapLogger)
	ordersCtrl := order.NewModule(store, cfg, zapLogger)

	router := server.NewRouter(authCtrl, catalogCtrl, ordersCtrl, tokenSvc, zapLogger)
	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
