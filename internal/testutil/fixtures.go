package testutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/model"
)

// TestSender is an email transport whose failures can be switched on and off
type TestSender struct {
	Fail  atomic.Bool
	calls atomic.Int32
}

// Send implements mailer.Sender
func (s *TestSender) Send(_ context.Context, _ mailer.Message) error {
	s.calls.Add(1)
	if s.Fail.Load() {
		return errors.New("smtp: connection refused")
	}
	return nil
}

// Calls returns the number of transport attempts made so far
func (s *TestSender) Calls() int {
	return int(s.calls.Load())
}

// NewTestDispatcher wraps sender in a dispatcher that retries without waiting
func NewTestDispatcher(sender mailer.Sender) *mailer.Dispatcher {
	return mailer.NewDispatcher(sender, mailer.Options{
		From:         "Club <noreply@example.com>",
		SupportEmail: "support@example.com",
		MaxAttempts:  3,
		BackoffBase:  time.Millisecond,
	}, nil)
}

// TestCatalog is a two position catalog used by handler tests
func TestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog([]model.Position{
		{ID: "lead", Title: "Lead", Questions: []string{"Why lead?", "What would you change?"}, IsActive: true},
		{ID: "design-head", Title: "Design Head", Questions: []string{"Show your work"}, IsActive: true},
		{ID: "archived", Title: "Archived", Questions: []string{"Old"}, IsActive: false},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return catalog
}

// SubmissionBody is a valid submission request body for regNumber
func SubmissionBody(regNumber string, email string) gin.H {
	return gin.H{
		"profile": gin.H{
			"fullName":  "Asha Raman",
			"regNumber": regNumber,
			"email":     email,
			"phone":     "9876543210",
			"branch":    "CSE",
			"year":      "3rd Year",
		},
		"positions": []gin.H{{
			"positionId":   "lead",
			"positionName": "Lead",
			"answers": []gin.H{
				{"question": "Why lead?", "answer": Words(60)},
				{"question": "What would you change?", "answer": Words(60)},
			},
		}},
	}
}
