package domain

import "strings"

// Role distinguishes administrators (may post listings) from regular users.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a raw role value to a Role, defaulting to RoleUser.
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// Session is the active user identity. At most one session exists per
// client; it is created on login/registration, restored from durable
// storage at startup, and destroyed on logout.
type Session struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// IsAdmin reports whether the session may use the admin surface.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// DisplayName derives the name to show: an explicit name wins, then
// first+last, then the email address.
func DisplayName(name, firstName, lastName, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	full := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if full != "" {
		return full
	}
	return email
}
