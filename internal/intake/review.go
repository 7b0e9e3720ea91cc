package intake

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"standards-board-backend/internal/metrics"
	"standards-board-backend/internal/model"
)

// StatusUpdate is a partial admin update. A nil field is left unchanged; an empty status
// counts as absent while empty notes clear them.
type StatusUpdate struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// ApplicationDetail is an application with its review history, oldest first
type ApplicationDetail struct {
	model.Application
	History []model.StatusChange `json:"history"`
}

// GetApplication returns one application for an admin
func (s *Service) GetApplication(ctx context.Context, actor model.User, id string) (ApplicationDetail, error) {
	if !actor.IsAdmin() {
		return ApplicationDetail{}, ErrForbidden
	}

	app, err := s.load(ctx, id)
	if err != nil {
		return ApplicationDetail{}, err
	}

	var history []model.StatusChange
	if err := s.DB.WithContext(ctx).
		Where("application_id = ?", app.ID).
		Order("changed_at ASC").
		Find(&history).Error; err != nil {
		return ApplicationDetail{}, err
	}

	return ApplicationDetail{Application: app, History: history}, nil
}

// UpdateStatus applies an admin review update and appends it to the history.
// Any status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, actor model.User, id string, upd StatusUpdate) (model.Application, error) {
	if !actor.IsAdmin() {
		return model.Application{}, ErrForbidden
	}

	id = model.NormalizeRegNumber(id)
	var app model.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&app).Error; err != nil {
			return err
		}

		newStatus := app.Status
		updates := map[string]interface{}{}
		if upd.Status != nil && *upd.Status != "" {
			if !model.IsValidStatus(*upd.Status) {
				return ErrInvalidStatus
			}
			newStatus = *upd.Status
			updates["status"] = newStatus
		}
		if upd.AdminNotes != nil {
			if *upd.AdminNotes == "" {
				updates["admin_notes"] = nil
			} else {
				updates["admin_notes"] = *upd.AdminNotes
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Application{}).Where("id = ?", app.ID).Updates(updates).Error; err != nil {
			return err
		}

		change := model.StatusChange{
			ID:            uuid.NewString(),
			ApplicationID: app.ID,
			ActorID:       actor.ID,
			FromStatus:    app.Status,
			ToStatus:      newStatus,
			NotesChanged:  upd.AdminNotes != nil,
			ChangedAt:     s.Now(),
		}
		if err := tx.Create(&change).Error; err != nil {
			return err
		}

		app.Status = newStatus
		if upd.AdminNotes != nil {
			if *upd.AdminNotes == "" {
				app.AdminNotes = nil
			} else {
				notes := *upd.AdminNotes
				app.AdminNotes = &notes
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Application{}, ErrNotFound
		}
		return model.Application{}, err
	}

	metrics.StatusUpdates.WithLabelValues(app.Status).Inc()
	s.Log.Info("application updated",
		slog.String("application_id", app.ID),
		slog.String("actor_id", actor.ID),
		slog.String("status", app.Status))
	return app, nil
}
