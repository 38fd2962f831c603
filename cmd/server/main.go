package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartadmin/user-api/internal/api"
	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/infrastructure/config"
	mongodb "github.com/smartadmin/user-api/internal/infrastructure/db/mongo"
	redisdb "github.com/smartadmin/user-api/internal/infrastructure/db/redis"
	"github.com/smartadmin/user-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; fall back to a bare stderr message.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "user-api",
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	standardTTL, qrTTL, err := cfg.TokenPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token policy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongo indexes")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	e := api.NewRouter(api.Deps{
		Mongo:            db,
		Redis:            redisClient,
		Tokens:           credentials.NewTokenManager(cfg.JWTSecret, standardTTL, qrTTL),
		Hasher:           credentials.NewHasher(credentials.DefaultArgon2Params()),
		MaxLoginAttempts: cfg.MaxLoginAttempts,
		Logger:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("user-api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
