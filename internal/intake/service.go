// Package intake implements the application submission, email retry and admin review workflows.
package intake

import (
	"context"
	"log/slog"
	"time"

	"standards-board-backend/internal/database"
	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/model"
)

// ConfirmationSender dispatches one confirmation email with its own bounded retry
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, p mailer.ConfirmationParams) mailer.Result
}

// RetryPolicy bounds the number of persisted dispatch invocations per application.
// The dispatch made at submission time counts toward MaxAttempts.
type RetryPolicy struct {
	MaxAttempts int
}

// DefaultRetryPolicy allows five dispatches in total
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5}

// Allows reports whether another dispatch may run after attempts
func (p RetryPolicy) Allows(attempts int) bool {
	return attempts < p.MaxAttempts
}

// Service runs the intake workflows against the database
type Service struct {
	DB      *database.DBinstanceStruct
	Mailer  ConfirmationSender
	Catalog *model.Catalog
	Policy  RetryPolicy
	Log     *slog.Logger
	// Now is the clock, replaced in tests
	Now func() time.Time
}

// NewService wires a Service. A nil catalog disables catalog checks at submission.
func NewService(db *database.DBinstanceStruct, sender ConfirmationSender, catalog *model.Catalog, policy RetryPolicy, log *slog.Logger) *Service {
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		DB:      db,
		Mailer:  sender,
		Catalog: catalog,
		Policy:  policy,
		Log:     log,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func confirmationParams(app *model.Application) mailer.ConfirmationParams {
	profile := app.Profile.Data()
	return mailer.ConfirmationParams{
		To:            profile.Email,
		Name:          profile.FullName,
		Positions:     app.PositionNames(),
		ApplicationID: app.ID,
		SubmittedAt:   app.SubmittedAt,
	}
}

// emailOutcome converts a dispatch result into the columns written back on the application
func (s *Service) emailOutcome(res mailer.Result) map[string]interface{} {
	cols := map[string]interface{}{
		"email_sent":    res.Success,
		"email_sent_at": nil,
		"email_error":   nil,
	}
	if res.Success {
		cols["email_sent_at"] = s.Now()
	} else {
		msg := res.Error
		if msg == "" {
			msg = "Unknown error"
		}
		cols["email_error"] = msg
	}
	return cols
}

// recordEmailOutcome persists a dispatch result. A failure never overwrites a recorded success.
func (s *Service) recordEmailOutcome(ctx context.Context, id string, res mailer.Result, extra map[string]interface{}) error {
	cols := s.emailOutcome(res)
	for k, v := range extra {
		cols[k] = v
	}

	q := s.DB.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id)
	if !res.Success {
		q = q.Where("email_sent = ?", false)
	}
	return q.Updates(cols).Error
}
