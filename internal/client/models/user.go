// Package models defines the client-side view of VoltDrive accounts and the
// session persisted between CLI runs.
package models

import "github.com/dmitrijs2005/voltdrive/internal/common"

// User mirrors the public user record returned by the API. The password
// hash never reaches the client.
type User struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Avatar         *string `json:"avatar,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	DrivingLicense *string `json:"drivingLicense,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == common.RoleAdmin
}

// RegisterData is the input of a registration attempt.
type RegisterData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginData is the input of a login attempt.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by the register and login endpoints.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}
