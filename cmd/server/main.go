package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/folio/portfolio-cms/internal/challenge"
	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/database"
	"github.com/folio/portfolio-cms/internal/jobs"
	"github.com/folio/portfolio-cms/internal/notify"
	"github.com/folio/portfolio-cms/internal/redis"
	"github.com/folio/portfolio-cms/internal/repository"
	"github.com/folio/portfolio-cms/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := !cfg.IsDevelopment()
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// The pool is opened lazily by the first request that needs it.
	storage := database.NewManager(cfg.DatabaseURL)
	defer storage.Close()
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set: serving default content, writes disabled")
	}

	deps := routerDeps{storage: storage}

	var (
		store   challenge.Store
		limiter challenge.Limiter
	)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected")

		store = challenge.NewRedisStore(redisClient.Client)
		limiter = challenge.NewRedisLimiter(redisClient.Client, config.ChallengeIssueLimit, config.ChallengeIssueWindow)
		deps.redis = redisClient
	} else {
		memStore := challenge.NewMemoryStore()
		store = memStore
		limiter = challenge.NewMemoryLimiter(config.ChallengeIssueLimit, config.ChallengeIssueWindow)

		sweepJob := jobs.NewSweepJob(config.ChallengeSweepInterval)
		sweepJob.Register("login challenges", memStore)
		sweepJob.Start()
		defer sweepJob.Stop()
	}

	mailer := notify.NewPostmarkClient(cfg.PostmarkServerToken, cfg.EmailFrom)
	if !mailer.Configured() {
		log.Warn().Msg("POSTMARK_SERVER_TOKEN or EMAIL_FROM not set: login codes cannot be delivered")
	}
	forwarder := notify.NewForwarder(cfg.ContactWebhookURL, nil)

	deps.challenges = challenge.NewService(store, mailer, cfg.AdminEmail, cfg.AdminSecret,
		challenge.WithLimiter(limiter), challenge.WithTTL(cfg.ChallengeTTL()))
	deps.content = service.NewContentService(repository.NewSectionRepository(storage))
	deps.inbox = service.NewInboxService(repository.NewMessageRepository(storage), forwarder)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, deps),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Bool("production", isProduction).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
