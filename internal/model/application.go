package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Application status values
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

// ApplicationStatuses lists every valid status in display order
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
}

// IsValidStatus reports whether s is one of ApplicationStatuses
func IsValidStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ProfileData is the applicant's personal information, immutable after submission
type ProfileData struct {
	FullName  string  `json:"fullName"`
	RegNumber string  `json:"regNumber"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Branch    string  `json:"branch"`
	Year      string  `json:"year"`
	PhotoURL  *string `json:"photoURL,omitempty"`
}

// PositionAnswer is a single answer to a position question
type PositionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PositionApplication is one selected position with its index-aligned answers
type PositionApplication struct {
	PositionID   string           `json:"positionId"`
	PositionName string           `json:"positionName"`
	Answers      []PositionAnswer `json:"answers"`
}

// EmailStatus records the confirmation email delivery outcome.
// Attempts never decreases and Sent never goes back to false.
type EmailStatus struct {
	Sent     bool       `gorm:"not null;default:false" json:"sent"`
	SentAt   *time.Time `json:"sentAt"`
	Error    *string    `gorm:"type:text" json:"error"`
	Attempts int        `gorm:"not null;default:0" json:"attempts"`
}

// Application is an applicant's board enrollment submission.
// ID is the normalized registration number; UserID is unique so one user owns at most one application.
type Application struct {
	ID          string                                    `gorm:"primaryKey;type:text" json:"id"`
	UserID      string                                    `gorm:"type:text;not null;uniqueIndex" json:"userId"`
	User        User                                      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Profile     datatypes.JSONType[ProfileData]           `json:"profile"`
	Positions   datatypes.JSONType[[]PositionApplication] `json:"positions"`
	SubmittedAt time.Time                                 `gorm:"not null;index" json:"submittedAt"`
	Status      string                                    `gorm:"type:text;not null;default:'pending';index" json:"status"`
	AdminNotes  *string                                   `gorm:"type:text" json:"adminNotes,omitempty"`
	EmailStatus EmailStatus                               `gorm:"embedded;embeddedPrefix:email_" json:"emailStatus"`
}

// NormalizeRegNumber trims whitespace and upper-cases a registration number
func NormalizeRegNumber(regNumber string) string {
	return strings.ToUpper(strings.TrimSpace(regNumber))
}

// PositionNames returns the applied position names in order
func (a *Application) PositionNames() []string {
	positions := a.Positions.Data()
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.PositionName)
	}
	return names
}

// AppliedTo reports whether the application includes the given position id
func (a *Application) AppliedTo(positionID string) bool {
	for _, p := range a.Positions.Data() {
		if p.PositionID == positionID {
			return true
		}
	}
	return false
}

// StatusChange is an append-only record of an admin status or notes update
type StatusChange struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	ApplicationID string    `gorm:"type:text;not null;index" json:"applicationId"`
	ActorID       string    `gorm:"type:text;not null" json:"actorId"`
	FromStatus    string    `gorm:"type:text" json:"fromStatus"`
	ToStatus      string    `gorm:"type:text" json:"toStatus"`
	NotesChanged  bool      `json:"notesChanged"`
	ChangedAt     time.Time `gorm:"not null" json:"changedAt"`
}
