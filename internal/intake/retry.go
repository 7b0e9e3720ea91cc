package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/model"
)

// RetryEmail re-sends the confirmation email of the caller's own application.
// Every call that reaches the transport consumes one attempt from the RetryPolicy.
func (s *Service) RetryEmail(ctx context.Context, user model.User, applicationID string) (mailer.Result, error) {
	if user.ID == "" {
		return mailer.Result{}, ErrUnauthenticated
	}

	id := model.NormalizeRegNumber(applicationID)
	if id == "" {
		return mailer.Result{}, invalid("Application ID is required", map[string]string{
			"applicationId": "Application ID is required",
		})
	}

	app, err := s.load(ctx, id)
	if err != nil {
		return mailer.Result{}, err
	}

	switch {
	case app.UserID != user.ID:
		return mailer.Result{}, ErrForbidden
	case app.EmailStatus.Sent:
		return mailer.Result{}, ErrAlreadySent
	case !s.Policy.Allows(app.EmailStatus.Attempts):
		return mailer.Result{}, ErrRetryLimitExceeded
	}

	// reserve the attempt before dispatching so concurrent retries cannot exceed the ceiling
	res := s.DB.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND email_attempts = ? AND email_sent = ?", id, app.EmailStatus.Attempts, false).
		Update("email_attempts", gorm.Expr("email_attempts + ?", 1))
	if res.Error != nil {
		return mailer.Result{}, res.Error
	}
	if res.RowsAffected == 0 {
		return mailer.Result{}, ErrRetryInProgress
	}

	log := s.Log.With(slog.String("application_id", id), slog.Int("attempt", app.EmailStatus.Attempts+1))

	ctx = context.WithoutCancel(ctx)
	result := s.Mailer.SendConfirmation(ctx, confirmationParams(&app))
	if err := s.recordEmailOutcome(ctx, id, result, nil); err != nil {
		log.Error("failed to record email status", slog.String("error", err.Error()))
	}

	if !result.Success {
		log.Warn("confirmation email retry failed", slog.String("error", result.Error))
		return result, fmt.Errorf("%w: %s", ErrEmailDelivery, result.Error)
	}
	log.Info("confirmation email retry succeeded")
	return result, nil
}

func (s *Service) load(ctx context.Context, id string) (model.Application, error) {
	var app model.Application
	err := s.DB.WithContext(ctx).Where("id = ?", model.NormalizeRegNumber(id)).First(&app).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return app, ErrNotFound
	case err != nil:
		return app, err
	}
	return app, nil
}
