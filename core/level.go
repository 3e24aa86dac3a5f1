package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the severity of an entry. Destinations only ever report at
// WarnLevel or ErrorLevel; DebugLevel and InfoLevel belong to callers.
type Level int8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Allows reports whether an entry at level passes a minimum of l.
func (l Level) Allows(level Level) bool {
	return level >= l
}

// ParseLevel reads a level name case-insensitively. An empty name is
// InfoLevel; an unknown one is an error and also yields InfoLevel.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "":
		return InfoLevel, nil
	case "WARNING":
		return WarnLevel, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return InfoLevel, errors.Errorf("unknown level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Level can sit
// in any config struct decoded from text.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
