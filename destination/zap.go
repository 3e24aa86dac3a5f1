package destination

import (
	"go.uber.org/zap"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/formatter"
)

// ZapDestination forwards entries to a zap logger, keeping their
// original timestamps and fields.
type ZapDestination struct {
	logger     *zap.Logger
	identifier string
}

// NewZapDestination creates a destination writing to l under identifier
// (default: "zap").
func NewZapDestination(l *zap.Logger, identifier string) *ZapDestination {
	if identifier == "" {
		identifier = "zap"
	}
	return &ZapDestination{logger: l, identifier: identifier}
}

// Identifier returns the destination name
func (z *ZapDestination) Identifier() string {
	return z.identifier
}

// Attach is a no-op; the zap logger has its own lifecycle.
func (z *ZapDestination) Attach(Owner) {}

// Output writes entry through the zap logger when its level is enabled
func (z *ZapDestination) Output(entry *core.Entry) {
	ce := z.logger.Check(formatter.ZapLevel(entry.Level), entry.Message)
	if ce == nil {
		return
	}
	ce.Time = entry.Time
	ce.Write(formatter.ZapFields(entry.Fields)...)
}

// Close syncs the zap logger. Sync errors are ignored because syncing a
// terminal fails on most platforms.
func (z *ZapDestination) Close() error {
	_ = z.logger.Sync()
	return nil
}
