// Package model contain gorm model for recording data to database
package model

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account created on first successful Google sign-in.
// ID is the identity provider UID.
type User struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Email       string    `gorm:"type:text;index" json:"email"`
	DisplayName string    `gorm:"type:text" json:"displayName"`
	PhotoURL    *string   `gorm:"type:text" json:"photoURL"`
	Role        string    `gorm:"type:text;not null;default:'user'" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	HasApplied  bool      `gorm:"not null;default:false" json:"hasApplied"`
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GoogleUserInfo is the payload returned by the Google userinfo endpoint
type GoogleUserInfo struct {
	GID            string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"picture"`
}

// FillGoogleInfo refreshes the mutable profile fields from Google user info.
// Role and HasApplied are never touched here.
func (u *User) FillGoogleInfo(info GoogleUserInfo) {
	u.Email = info.Email
	u.DisplayName = info.Name
	if info.ProfilePicture != "" {
		pic := info.ProfilePicture
		u.PhotoURL = &pic
	} else {
		u.PhotoURL = nil
	}
}

// LoginResponse struct holds the response data for login or registration
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}
