// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/config"
	"standards-board-backend/internal/database"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/model"
)

// MyServer holds everything the route handlers depend on
type MyServer struct {
	Config    *config.Config
	DB        *database.DBinstanceStruct
	Service   *intake.Service
	Mailer    intake.ConfirmationSender
	Catalog   *model.Catalog
	Tokens    *auth.JWTManager
	Blacklist auth.JwtBlacklistStore
	// Redis is optional; nil keeps rate-limit buckets in memory
	Redis *redis.Client
}

// requestMargin covers the database work around an email dispatch
const requestMargin = 30 * time.Second

// WriteTimeout leaves a submission enough time to wait out every email attempt and still respond
func WriteTimeout(cfg *config.Config) time.Duration {
	budget := mailer.MaxDispatchDuration(cfg.EmailMaxAttempts, cfg.BackoffBase(), cfg.SMTPTimeout())
	return max(budget+requestMargin, time.Minute)
}

// NewServer construct new http.Server serving s on the configured port
func NewServer(s *MyServer) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: WriteTimeout(s.Config),
	}
}
