package config

import (
	"fmt"
	"log/slog"
	"strings"
)

type Log struct {
	Format    LogFormat  `env:"LOG_FORMAT" envDefault:"JSON"`
	Level     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	AddSource bool       `env:"LOG_ADD_SOURCE" envDefault:"true"`
	// NoColor disables ANSI colors of the text format, e.g. when stdout is a file.
	NoColor bool `env:"LOG_NO_COLOR" envDefault:"false"`
}

// LogFormat selects the slog handler: JSON for shipping, TEXT (tint) for a terminal.
type LogFormat uint8

const (
	LogFormatJSON LogFormat = iota
	LogFormatText
)

var logFormatNames = []string{"JSON", "TEXT"}

func (f LogFormat) String() string {
	if int(f) >= len(logFormatNames) {
		return fmt.Sprintf("LogFormat(%d)", f)
	}
	return logFormatNames[f]
}

// UnmarshalText implements [encoding.TextUnmarshaler]. "TINT" is accepted
// as an alias of TEXT.
func (f *LogFormat) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "JSON":
		*f = LogFormatJSON
	case "TEXT", "TINT":
		*f = LogFormatText
	default:
		return fmt.Errorf("unknown log format: %s", text)
	}
	return nil
}

func (f LogFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
