package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akhilesh53/authcore/internal/api"
	"github.com/Akhilesh53/authcore/internal/infrastructure/config"
	mongodb "github.com/Akhilesh53/authcore/internal/infrastructure/db/mongo"
	redisdb "github.com/Akhilesh53/authcore/internal/infrastructure/db/redis"
	"github.com/Akhilesh53/authcore/internal/infrastructure/mail"
	"github.com/Akhilesh53/authcore/internal/infrastructure/queue"
	"github.com/Akhilesh53/authcore/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	smtp, err := mail.NewSMTPNotifier(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client setup failed")
	}

	dispatcher := queue.NewMailDispatcher(cfg.Auth.MailWorkers, smtp, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
