package domain

import "strings"

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session represents the currently authenticated visitor. A session exists
// if and only if the visitor is logged in; there are no intermediate states.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the session carries the privileged role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// DisplayName derives the visitor-facing name from an email address by
// taking the local part before the "@".
func DisplayName(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
