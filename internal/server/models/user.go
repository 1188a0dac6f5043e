// Package models defines the server-side records persisted in PostgreSQL.
package models

import "time"

// User is a stored identity. PasswordHash never leaves the server; use
// Public to build API payloads.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           string
	Avatar         *string
	PhoneNumber    *string
	DrivingLicense *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the representation of a user returned by the API.
type PublicUser struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Avatar         *string `json:"avatar,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	DrivingLicense *string `json:"drivingLicense,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Avatar:         u.Avatar,
		PhoneNumber:    u.PhoneNumber,
		DrivingLicense: u.DrivingLicense,
	}
}
