package model

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Session is the console's view of a logged-in backend user.
// Token, Role and Username are the only persisted user fields.
type Session struct {
	ID        string
	Token     string
	Role      Role
	Username  string
	CreatedAt time.Time
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
