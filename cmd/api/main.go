package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapshift/parcel-system/internal/api"
	"github.com/zapshift/parcel-system/internal/infrastructure/config"
	mongodb "github.com/zapshift/parcel-system/internal/infrastructure/db/mongo"
	redisdb "github.com/zapshift/parcel-system/internal/infrastructure/db/redis"
	"github.com/zapshift/parcel-system/internal/infrastructure/identity"
	"github.com/zapshift/parcel-system/internal/infrastructure/payment"
	"github.com/zapshift/parcel-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store handles are opened here and closed at shutdown; everything
	// downstream receives them by injection.
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// The unique indexes on users.email and payments.transaction_id back the
	// registration and reconciliation idempotency guarantees.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewPaymentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("payment indexes failed")
	}

	e := api.NewRouter(api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Verifier: identity.NewJWTVerifier(cfg.JWTSecret),
		Checkout: payment.NewStripeProvider(cfg.StripeSecret, cfg.SiteDomain),
		Logger:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("parcel api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
