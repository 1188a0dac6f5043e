// Package common contains shared constants and sentinel errors used across
// VoltDrive components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token on
// outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the raw token in the Authorization header value.
const BearerPrefix = "Bearer "

// Roles a user can hold. Role checks are always made against the role
// claim of a verified session token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
