package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/witthawin/moviebase-api/internal/config"
	"github.com/witthawin/moviebase-api/internal/handler"
	"github.com/witthawin/moviebase-api/internal/repository"
	"github.com/witthawin/moviebase-api/internal/usecase"
	"github.com/witthawin/moviebase-api/shared/auth"
	"github.com/witthawin/moviebase-api/shared/mongodb"
	"github.com/witthawin/moviebase-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load(&logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	db := client.Database(cfg.MongoDatabase)

	accountRepo := repository.NewAccountMongoRepository(ctx, &logger, db)
	commentRepo := repository.NewCommentMongoRepository(db)
	activityRepo := repository.NewActivityMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	accountUsecase := usecase.NewAccountUsecase(accountRepo, jwtAuth, cfg)
	commentUsecase := usecase.NewCommentUsecase(commentRepo, activityRepo)

	validator, err := validation.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	h := handler.New(&logger, validator, jwtAuth, cfg, accountUsecase, commentUsecase)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}
}
