package logger

import "github.com/philipp01105/loguploader/core"

// Level is the severity of an entry
type Level = core.Level

const (
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
)

// ParseLevel reads a level name; see core.ParseLevel
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
