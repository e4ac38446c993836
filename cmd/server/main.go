package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dukapro/dukapro/config"
	"github.com/dukapro/dukapro/internal/adapter/handler"
	"github.com/dukapro/dukapro/internal/adapter/storage"
	"github.com/dukapro/dukapro/internal/core/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	// Adapters
	store := storage.NewMySQLAdapter(db)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}
	if cfg.SeedDemoUser {
		if err := store.SeedDemoUser(ctx, cfg.DemoUsername, cfg.DemoPassword, cfg.DemoDisplayName); err != nil {
			logger.Fatal("failed to seed demo user", zap.Error(err))
		}
		logger.Info("demo user ready", zap.String("username", cfg.DemoUsername))
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := storage.NewRedisSessionStore(rdb, sessionTTL)

	// Services
	svc := handler.Services{
		Auth:      service.NewAuthService(store, sessions, logger),
		Sales:     service.NewSaleService(store, logger),
		Products:  service.NewProductService(store, logger),
		Debts:     service.NewDebtService(store, logger),
		Dashboard: service.NewDashboardService(store, logger),
	}

	router := handler.NewRouter(svc, cfg.CORSOrigin, int(sessionTTL.Seconds()), logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
