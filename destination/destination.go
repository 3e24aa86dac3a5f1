package destination

import (
	"io"

	"github.com/pkg/errors"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/queue"
)

var (
	// ErrNoWriter is the panic value of Output on a FileDestination built
	// without a FileWriter.
	ErrNoWriter = errors.New("destination: file destination has no FileWriter")
	// ErrPathRequired is returned when a FileDestination is built without a path.
	ErrPathRequired = errors.New("destination: path is required")
)

// Owner is the logger a destination is attached to.
type Owner interface {
	// Error reports a failure through the owner's own destinations
	Error(msg string, fields ...core.Field)
	// Warn reports a warning through the owner's own destinations
	Warn(msg string, fields ...core.Field)
	// Queue returns the serial queue entries are written on, or nil when
	// the owner writes synchronously.
	Queue() *queue.Serial
}

// Destination is a registered sink for log entries.
type Destination interface {
	// Identifier names the destination inside its owner's registry
	Identifier() string
	// Attach hands the destination to owner; nil detaches it
	Attach(owner Owner)
	// Output writes one entry. The entry must not be retained.
	Output(entry *core.Entry)
	// Close releases everything the destination holds
	Close() error
}

// FileWriter renders an entry into an open log file.
type FileWriter interface {
	WriteEntry(w io.Writer, entry *core.Entry) error
}

// FileWriterFunc adapts a function to FileWriter.
type FileWriterFunc func(w io.Writer, entry *core.Entry) error

// WriteEntry calls f(w, entry).
func (f FileWriterFunc) WriteEntry(w io.Writer, entry *core.Entry) error {
	return f(w, entry)
}
