package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"standards-board-backend/internal/metrics"
	"standards-board-backend/internal/model"
	"standards-board-backend/internal/validation"
)

// SubmitInput is the applicant supplied part of an application
type SubmitInput struct {
	Profile   *model.ProfileData          `json:"profile"`
	Positions []model.PositionApplication `json:"positions"`
}

// SubmitResult is returned on successful submission
type SubmitResult struct {
	ApplicationID string
	EmailSent     bool
}

var errDuplicateKey = errors.New("duplicate key")

// Submit stores a new application for user and sends the confirmation email.
// Email failure does not fail the submission; it is recorded on the application instead.
func (s *Service) Submit(ctx context.Context, user model.User, in SubmitInput) (SubmitResult, error) {
	if user.ID == "" {
		return SubmitResult{}, ErrUnauthenticated
	}

	app, err := s.prepare(user, in)
	if err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return SubmitResult{}, err
	}

	log := s.Log.With(slog.String("application_id", app.ID), slog.String("user_id", user.ID))

	if err := s.create(ctx, app); err != nil {
		if IsConflict(err) {
			metrics.Submissions.WithLabelValues("duplicate").Inc()
		} else {
			metrics.Submissions.WithLabelValues(metrics.OutcomeFailure).Inc()
		}
		return SubmitResult{}, err
	}
	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("application submitted", slog.Int("positions", len(in.Positions)))

	// the application is committed; finish the email bookkeeping even if the client goes away
	ctx = context.WithoutCancel(ctx)

	res := s.Mailer.SendConfirmation(ctx, confirmationParams(app))
	if err := s.recordEmailOutcome(ctx, app.ID, res, map[string]interface{}{"email_attempts": 1}); err != nil {
		log.Error("failed to record email status", slog.String("error", err.Error()))
	}

	return SubmitResult{ApplicationID: app.ID, EmailSent: res.Success}, nil
}

// prepare checks the input and builds the pending application
func (s *Service) prepare(user model.User, in SubmitInput) (*model.Application, error) {
	if in.Profile == nil || len(in.Positions) == 0 {
		return nil, invalid("Invalid request body - profile and positions are required", nil)
	}
	if strings.TrimSpace(in.Profile.RegNumber) == "" {
		return nil, invalid("Registration number is required", map[string]string{
			"regNumber": "Registration number is required",
		})
	}

	profile := *in.Profile
	positions := s.canonicalPositions(in.Positions)

	if errs := validation.ValidateApplication(profile, positions, s.Catalog); len(errs) > 0 {
		return nil, invalid("Please correct the highlighted fields", errs)
	}

	profile.RegNumber = model.NormalizeRegNumber(profile.RegNumber)
	profile.FullName = strings.TrimSpace(profile.FullName)
	profile.Email = strings.TrimSpace(profile.Email)

	return &model.Application{
		ID:          profile.RegNumber,
		UserID:      user.ID,
		Profile:     datatypes.NewJSONType(profile),
		Positions:   datatypes.NewJSONType(positions),
		SubmittedAt: s.Now(),
		Status:      model.ApplicationStatusPending,
		EmailStatus: model.EmailStatus{},
	}, nil
}

// canonicalPositions replaces client supplied titles and question texts with the catalog's
func (s *Service) canonicalPositions(in []model.PositionApplication) []model.PositionApplication {
	out := make([]model.PositionApplication, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Answers = append([]model.PositionAnswer(nil), p.Answers...)

		if s.Catalog == nil {
			continue
		}
		pos, ok := s.Catalog.Get(p.PositionID)
		if !ok {
			continue
		}
		out[i].PositionName = pos.Title
		for j := range out[i].Answers {
			if j < len(pos.Questions) {
				out[i].Answers[j].Question = pos.Questions[j]
			}
		}
	}
	return out
}

// create inserts app and flags the owner as applied in one transaction.
// The primary key and the unique user_id index close the window between the checks and the insert.
func (s *Service) create(ctx context.Context, app *model.Application) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkDuplicates(tx, app); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateKey
			}
			return err
		}

		res := tx.Model(&model.User{}).Where("id = ?", app.UserID).Update("has_applied", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", app.UserID, ErrUnauthenticated)
		}
		return nil
	})

	if errors.Is(err, errDuplicateKey) {
		// lost a race with a concurrent submission; report which constraint it hit
		if cerr := checkDuplicates(s.DB.WithContext(ctx), app); cerr != nil {
			return cerr
		}
		return ErrDuplicateRegistration
	}
	return err
}

func checkDuplicates(tx *gorm.DB, app *model.Application) error {
	var count int64
	if err := tx.Model(&model.Application{}).Where("id = ?", app.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateRegistration
	}

	if err := tx.Model(&model.Application{}).Where("user_id = ?", app.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSubmission
	}
	return nil
}
