package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nannytime/nannytime-api/internal/api"
	"github.com/nannytime/nannytime-api/internal/core/ports"
	"github.com/nannytime/nannytime-api/internal/core/service"
	"github.com/nannytime/nannytime-api/internal/infrastructure/ai"
	"github.com/nannytime/nannytime-api/internal/infrastructure/config"
	mongodb "github.com/nannytime/nannytime-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nannytime/nannytime-api/internal/infrastructure/db/redis"
	"github.com/nannytime/nannytime-api/internal/infrastructure/queue"
	"github.com/nannytime/nannytime-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongo")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	shiftRepo := mongodb.NewShiftRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	if err := shiftRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensuring shift indexes")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensuring user indexes")
	}

	sessionStore := redisdb.NewSessionStore(rdb)
	summaryCache := redisdb.NewSummaryCache(rdb)

	// --- Summarizer ---
	var summarizer ports.Summarizer = ai.NoopSummarizer{}
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiSummarizer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("initialising gemini client")
		}
		summarizer = gemini
	} else {
		log.Warn().Msg("no gemini api key configured, pay-stub summaries fall back to the canned note")
	}

	// --- Services ---
	profileService := service.NewProfileService(profileRepo, log)
	payrollService := service.NewPayrollService(shiftRepo, profileService, summarizer, summaryCache, log)

	dispatcher := queue.NewDispatcher(cfg.Prewarm.Workers, payrollService, log)
	dispatcher.Start(ctx)

	shiftService := service.NewShiftService(shiftRepo, dispatcher, log)

	sessionEvents := service.NewSessionEvents()
	sessionEvents.Subscribe(func(ev service.SessionEvent) {
		if ev.Type != service.SessionSignedOut {
			return
		}
		// A sign-out invalidates any cached summaries for the account.
		clearCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := summaryCache.Clear(clearCtx, ev.UserID); err != nil {
			log.Warn().Err(err).Str("user_id", ev.UserID).Msg("clearing summary cache on sign-out")
		}
	})

	authService := service.NewAuthService(authRepo, sessionStore, profileRepo, sessionEvents, cfg.JWTSecret, 24*time.Hour)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Shifts:    shiftService,
		Profiles:  profileService,
		Payroll:   payrollService,
		Sessions:  sessionStore,
		JWTSecret: cfg.JWTSecret,
		DB:        db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("starting http server")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("nannytime api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
}
