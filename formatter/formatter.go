package formatter

import (
	"github.com/philipp01105/loguploader/core"
)

// Formatter renders entries for a log file.
type Formatter interface {
	// AppendEntry appends the rendered entry, including its line ending,
	// to dst and returns the extended slice.
	AppendEntry(dst []byte, entry *core.Entry) ([]byte, error)
}

// Config holds the options shared by the formatters
type Config struct {
	// IncludeCaller writes the call site when the entry carries one
	IncludeCaller bool
	// TimestampFormat is the time layout (empty for the formatter default)
	TimestampFormat string
	// Context fields follow the entry's own fields on every line
	Context []core.Field
}

// Format renders entry into a new slice.
func Format(f Formatter, entry *core.Entry) ([]byte, error) {
	return f.AppendEntry(nil, entry)
}
