// Command api serves the board application intake HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	// Load env
	_ "github.com/joho/godotenv/autoload"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/config"
	"standards-board-backend/internal/database"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/logger"
	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/model"
	"standards-board-backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDBInstance(&database.DBConfig{Constr: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("database failed to initialize: %w", err)
	}
	defer func() { _ = db.Close() }()

	catalog, err := model.LoadCatalog(cfg.PositionsFile)
	if err != nil {
		return fmt.Errorf("failed to load positions: %w", err)
	}

	srv := &server.MyServer{
		Config:    cfg,
		DB:        db,
		Catalog:   catalog,
		Tokens:    auth.NewJWTManager(cfg.SecretKey, cfg.JWTIssuer, cfg.AccessTTL()),
		Blacklist: auth.NewInMemoryBlacklistStore(),
	}

	if cfg.RedisURL != "" {
		client, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis unavailable: %w", err)
		}
		defer func() { _ = client.Close() }()
		srv.Redis = client
		srv.Blacklist = auth.NewRedisBlacklistStore(client)
		log.Info("using redis for rate limits and token blacklist")
	}

	dispatcher := mailer.NewDispatcher(newSender(cfg, log), mailer.Options{
		From:         cfg.EmailFrom,
		CC:           cfg.EmailCC,
		SupportEmail: cfg.SupportEmail,
		MaxAttempts:  cfg.EmailMaxAttempts,
		BackoffBase:  cfg.BackoffBase(),
		Location:     cfg.Location(),
	}, log)
	srv.Mailer = dispatcher
	srv.Service = intake.NewService(db, dispatcher, catalog, intake.RetryPolicy{MaxAttempts: cfg.EmailRetryLimit}, log)

	httpServer := server.NewServer(srv)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("API started", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-quit:
	}
	log.Info("shutting down")

	// in-flight submissions may still be waiting on email attempts
	ctx, cancel := context.WithTimeout(context.Background(), httpServer.WriteTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", slog.String("error", err.Error()))
	}
	return nil
}

// newSender returns the SMTP transport, or a sender that always fails when credentials are missing
func newSender(cfg *config.Config, log *slog.Logger) mailer.Sender {
	if strings.TrimSpace(cfg.EmailUser) == "" || strings.TrimSpace(cfg.EmailPassword) == "" {
		log.Warn("EMAIL_USER or EMAIL_PASSWORD not set; confirmation emails will fail and can be retried later")
		return mailer.DisabledSender{}
	}

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPassword,
		Timeout:  cfg.SMTPTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sender.Verify(ctx); err != nil {
		log.Warn("SMTP verification failed", slog.String("error", err.Error()))
	} else {
		log.Info("SMTP connection verified", slog.String("host", cfg.SMTPHost))
	}
	return sender
}
