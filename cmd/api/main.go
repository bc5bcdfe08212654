package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digiwolf/leads/internal/config"
	"github.com/digiwolf/leads/internal/infra/auth"
	"github.com/digiwolf/leads/internal/infra/database"
	"github.com/digiwolf/leads/internal/infra/http/handlers"
	"github.com/digiwolf/leads/internal/infra/http/middleware"
	"github.com/digiwolf/leads/internal/infra/integration/facebook"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/mail"
	"github.com/digiwolf/leads/internal/infra/queue"
	"github.com/digiwolf/leads/internal/infra/worker"
	"github.com/digiwolf/leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("configuração inválida")
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	db, dialect, err := database.NewDBConnection(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("falha ao conectar no banco")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, dialect); err != nil {
		logger.Log.Fatal().Err(err).Msg("falha na migração")
	}
	logger.Log.Info().Str("dialect", dialect.String()).Msg("banco pronto")

	leadRepo := database.NewLeadRepository(db, dialect)
	adminRepo := database.NewAdminRepository(db, dialect)

	go worker.NewLeadGaugeWorker(leadRepo).Start(ctx)

	// 2. Integrações
	fbClient := facebook.NewClient(cfg.FacebookPixelID, cfg.FacebookAccessToken, cfg.FacebookTestEventCode)

	var notifier usecase.ConversionNotifier
	var rabbit *queue.RabbitMQ

	switch {
	case !fbClient.Configured():
		logger.Log.Warn().Msg("facebook conversion api desabilitada: FACEBOOK_PIXEL_ID/FACEBOOK_ACCESS_TOKEN ausentes")
	case cfg.AMQPURL != "":
		rabbit, err = queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("falha ao conectar no RabbitMQ")
		}
		defer rabbit.Close()

		notifier = queue.NewProducer(rabbit.Ch)

		consumer := queue.NewWorker(rabbit.Ch, fbClient)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				logger.Log.Error().Err(err).Msg("worker de conversões parou")
			}
		}()
	default:
		notifier = fbClient
	}

	var mailer usecase.LeadMailer
	if cfg.MailEnabled() {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.LeadNotifyTo)
	}

	// 3. Casos de uso
	leadUC := usecase.NewLeadUseCase(leadRepo, notifier, mailer, usecase.SystemClock{})
	leadUC.Currency = cfg.ConversionCurrency

	tokens := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	adminUC := usecase.NewAdminUseCase(adminRepo, tokens)

	// 4. HTTP
	health := handlers.NewHealthHandler(db, nil)
	if rabbit != nil {
		health.RabbitMQ = rabbit.Conn
	}
	health.Facebook = fbClient.Configured()
	health.Mail = cfg.MailEnabled()

	router := handlers.NewRouter(handlers.RouterConfig{
		Leads:          handlers.NewLeadHandler(leadUC),
		Admin:          handlers.NewAdminLeadHandler(leadUC),
		Auth:           handlers.NewAuthHandler(adminUC),
		Health:         health,
		Tokens:         tokens,
		RateLimiter:    middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Port).Msg("api de leads no ar")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("servidor caiu")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("desligando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("erro no shutdown")
	}
}
