package destination

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/formatter"
)

// ConsoleConfig holds configuration for a console destination
type ConsoleConfig struct {
	// Writer is the output (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Identifier names the destination (default: "console")
	Identifier string
}

func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Identifier == "" {
		cfg.Identifier = "console"
	}
}

// ConsoleDestination writes formatted entries to an io.Writer it does
// not own. Closing it leaves the writer open.
type ConsoleDestination struct {
	mu         sync.Mutex
	writer     io.Writer
	fw         *FormatWriter
	identifier string
	stats      *Stats
}

// NewConsoleDestination creates a console destination
func NewConsoleDestination(cfg ConsoleConfig) *ConsoleDestination {
	applyConsoleDefaults(&cfg)
	return &ConsoleDestination{
		writer:     cfg.Writer,
		fw:         NewFormatWriter(cfg.Formatter),
		identifier: cfg.Identifier,
		stats:      NewStats(),
	}
}

// Identifier returns the destination name
func (c *ConsoleDestination) Identifier() string {
	return c.identifier
}

// Attach is a no-op; the writer is usable regardless of owner.
func (c *ConsoleDestination) Attach(Owner) {}

// Output writes entry to the writer
func (c *ConsoleDestination) Output(entry *core.Entry) {
	c.mu.Lock()
	err := c.fw.WriteEntry(c.writer, entry)
	c.mu.Unlock()
	if err != nil {
		c.stats.incrementFailed()
		return
	}
	c.stats.incrementWritten()
}

// Stats returns a snapshot of the entry counters
func (c *ConsoleDestination) Stats() Snapshot {
	return c.stats.Snapshot()
}

// Close implements Destination
func (c *ConsoleDestination) Close() error {
	return nil
}
