package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-voice-backend/internal/audit"
	"studio-voice-backend/internal/auth"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/config"
	"studio-voice-backend/internal/dialogue"
	"studio-voice-backend/internal/extract"
	"studio-voice-backend/internal/notify"
	"studio-voice-backend/internal/payments"
	"studio-voice-backend/internal/reporting"
	"studio-voice-backend/internal/session"
	"studio-voice-backend/internal/telephony"
	"studio-voice-backend/pkg/logger"
	"studio-voice-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local convenience; missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Collaborators, wired bottom-up.
	sessions := session.NewRedisStore(rdb, cfg.Session.TTL)
	bookings := booking.NewPostgresRepo(db)
	auditSvc := audit.NewService(audit.NewPostgresRepo(db))
	reports := reporting.NewService(reporting.NewPostgresRepo(db))

	chat := extract.NewOpenAIClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, 0)
	extractor := extract.NewExtractor(chat)

	stripe := payments.NewStripeClient(cfg.Stripe.APIKey, 0)
	stripe.SuccessURL = cfg.Stripe.SuccessURL
	stripe.CancelURL = cfg.Stripe.CancelURL

	sms := notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, 0)

	engine := dialogue.NewController(dialogue.ControllerDeps{
		Sessions:  sessions,
		Extractor: extractor,
		Bookings:  bookings,
		Payments:  stripe,
		Notifier:  sms,
		Audit:     auditSvc,
		Logger:    log,
	})

	var gate telephony.CallGate
	if cfg.Voice.MaxConcurrentCalls > 0 {
		gate = telephony.NewRedisCallGate(rdb, cfg.Voice.MaxConcurrentCalls, 0)
	}
	voice := telephony.NewVoiceWebhookHandler(engine, gate)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, routeDeps{
		Auth:     authManager,
		Voice:    voice,
		Bookings: bookings,
		Sessions: sessions,
		Reports:  reports,
		DB:       db,
		Redis:    rdb,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
