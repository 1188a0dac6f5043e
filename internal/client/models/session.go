package models

// Session is the authenticated state kept in memory and in the local store.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Valid reports whether the session carries both a token and a user.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil && s.User.ID != ""
}
