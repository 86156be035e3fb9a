package config

import (
	"fmt"
	"strings"
)

// SessionDriver selects the session store backend.
type SessionDriver uint8

const (
	SessionDriverMemory SessionDriver = iota
	SessionDriverPostgres
	SessionDriverSQLite
)

func (d SessionDriver) String() string {
	return []string{"memory", "postgres", "sqlite"}[d]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *SessionDriver) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "memory":
		*d = SessionDriverMemory
	case "postgres":
		*d = SessionDriverPostgres
	case "sqlite":
		*d = SessionDriverSQLite
	default:
		return fmt.Errorf("unknown session driver: %s", text)
	}
	return nil
}

func (d SessionDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Session struct {
	Driver       SessionDriver `env:"SESSION_DRIVER" envDefault:"memory"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"ic_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	// LogoutOnUnauthorized ends the session when the backend rejects its token with 401.
	LogoutOnUnauthorized bool `env:"SESSION_LOGOUT_ON_UNAUTHORIZED" envDefault:"false"`
}
