package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staynest/rental-platform/internal/api"
	"github.com/staynest/rental-platform/internal/core/ports"
	"github.com/staynest/rental-platform/internal/infrastructure/config"
	mongodb "github.com/staynest/rental-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/staynest/rental-platform/internal/infrastructure/db/redis"
	"github.com/staynest/rental-platform/internal/infrastructure/storage"
	"github.com/staynest/rental-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo: start even when the initial ping fails. The driver retries per
	// operation, and /health/ready reports the degraded state.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  30 * time.Second,
	})
	if err != nil {
		if db == nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		log.Warn().Err(err).Msg("mongo unreachable, starting degraded")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err == nil {
		ensureIndexes(ctx, db, log)
	}

	// Redis backs the listing cache. Optional: a miss on every read is the
	// only consequence of running without it.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unreachable, listing cache disabled")
		rdb = nil
	}

	var imageStorage ports.ImageStorage
	if cfg.Storage.Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			log.Warn().Err(err).Msg("aws config load failed, image uploads disabled")
		} else {
			imageStorage = storage.NewS3Storage(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.PublicURL)
		}
	} else {
		log.Info().Msg("no storage bucket configured, image uploads disabled")
	}

	e := api.NewRouter(db, rdb, imageStorage, cfg.JWTSecret, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// ensureIndexes creates the indexes best-effort; the server still starts if
// index creation fails.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("user indexes")
	}
	if err := mongodb.NewPropertyRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("property indexes")
	}
}
