package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/felipet/finance-api/internal/app/di"
	"github.com/felipet/finance-api/internal/app/router"
	"github.com/felipet/finance-api/internal/feature/market/adapters"
	markethandler "github.com/felipet/finance-api/internal/feature/market/transport/handler"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
	"github.com/felipet/finance-api/internal/platform/config"
	platformdb "github.com/felipet/finance-api/internal/platform/db"
	platformhandler "github.com/felipet/finance-api/internal/platform/http/handler"
	applogger "github.com/felipet/finance-api/internal/platform/logger"
	platformredis "github.com/felipet/finance-api/internal/platform/redis"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("failed to create logger: %v", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	var db *gorm.DB
	if cfg.MarketSource == config.SourceDatabase {
		db, err = platformdb.Open(cfg.DB, logger)
		if err != nil {
			logger.Fatalf("failed to open database: %v", err)
		}
		if cfg.DB.RunMigrations {
			if err := adapters.NewMarketRepository(db).Migrate(ctx); err != nil {
				logger.Fatalf("failed to migrate: %v", err)
			}
		}
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis, logger); err != nil {
			logger.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logger.WithError(err).Error("failed to close Redis client")
				}
			}()
		}
	}

	// Repository
	repo, err := di.NewMarketRepository(cfg, db, rdb)
	if err != nil {
		logger.Fatalf("failed to create market repository: %v", err)
	}

	// Usecase
	marketUC := usecase.NewMarketUsecase(repo, logger)
	if err := marketUC.LoadAll(ctx); err != nil {
		logger.WithError(err).Warn("some markets could not be loaded; they will be retried on demand")
	}
	go marketUC.Run(ctx, cfg.RefreshInterval)

	// Handler
	opts := []router.Option{router.WithRequestLogger(logger)}
	if cfg.CORSEnabled {
		opts = append(opts, router.WithCORS())
	}
	r := router.NewRouter(markethandler.NewMarketHandler(marketUC), platformhandler.Health(marketUC), opts...)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"source":  cfg.MarketSource,
			"markets": marketUC.Loaded(),
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}
