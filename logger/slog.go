package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/loguploader/core"
)

// SlogHandler adapts a Logger to slog.Handler so code written against
// log/slog reaches the logger's destinations.
type SlogHandler struct {
	logger *Logger
	attrs  []core.Field
	group  string
}

// NewSlogHandler creates a slog.Handler writing through l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the logger accepts records at level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.level.Allows(slogLevelToCore(level))
}

// Handle converts record into an entry carrying the record's time and,
// when the logger records callers, the record's call site.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.level.Allows(level) {
		return nil
	}
	t := record.Time
	if t.IsZero() {
		t = time.Now()
	}

	fields := make([]core.Field, 0, len(s.attrs)+record.NumAttrs())
	fields = append(fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})

	s.logger.log(t, level, record.Message, fields, record.PC)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{logger: s.logger, attrs: newAttrs, group: s.group}
}

// WithGroup returns a new SlogHandler whose attribute keys are prefixed with name
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{logger: s.logger, attrs: s.attrs, group: group}
}

func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr converts a, flattening groups into dotted keys. Empty
// attributes are dropped and groups with an empty key are inlined.
func appendAttr(fields []core.Field, prefix string, a slog.Attr) []core.Field {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() == slog.KindAny && v.Any() == nil {
		return fields
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	switch v.Kind() {
	case slog.KindGroup:
		for _, ga := range v.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	case slog.KindString:
		return append(fields, core.String(key, v.String()))
	case slog.KindInt64:
		return append(fields, core.Int64(key, v.Int64()))
	case slog.KindUint64:
		return append(fields, core.Uint64(key, v.Uint64()))
	case slog.KindFloat64:
		return append(fields, core.Float64(key, v.Float64()))
	case slog.KindBool:
		return append(fields, core.Bool(key, v.Bool()))
	case slog.KindTime:
		return append(fields, core.Time(key, v.Time()))
	case slog.KindDuration:
		return append(fields, core.Duration(key, v.Duration()))
	}
	if err, ok := v.Any().(error); ok {
		f := core.Err(err)
		f.Key = key
		return append(fields, f)
	}
	return append(fields, core.Any(key, v.Any()))
}
