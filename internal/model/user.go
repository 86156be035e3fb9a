package model

import (
	"fmt"
	"math"
)

const DurationActive = "Active"

type PendingUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

type LogEntry struct {
	Username   string     `json:"username"`
	Name       string     `json:"name,omitempty"`
	Role       Role       `json:"role"`
	LoginTime  Timestamp  `json:"login_time"`
	LogoutTime *Timestamp `json:"logout_time,omitempty"`
}

func (l LogEntry) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Username
}

// Duration is the session length in whole minutes (rounded), or "Active"
// while the user has not logged out.
func (l LogEntry) Duration() string {
	if l.LogoutTime == nil {
		return DurationActive
	}
	d := l.LogoutTime.Sub(l.LoginTime.Time)
	return fmt.Sprintf("%d mins", int64(math.Round(d.Minutes())))
}
