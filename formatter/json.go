package formatter

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/loguploader/core"
)

// JSONFormatter writes one JSON object per line using zapcore's JSON
// encoder with the keys time, level and message.
type JSONFormatter struct {
	cfg     Config
	enc     zapcore.Encoder
	context []zap.Field
}

// NewJSONFormatter creates a JSON formatter (default layout: RFC3339Nano)
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(cfg.TimestampFormat),
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.IncludeCaller {
		encCfg.CallerKey = "caller"
		encCfg.FunctionKey = "function"
	}
	return &JSONFormatter{
		cfg:     cfg,
		enc:     zapcore.NewJSONEncoder(encCfg),
		context: ZapFields(cfg.Context),
	}
}

// AppendEntry implements Formatter.
func (f *JSONFormatter) AppendEntry(dst []byte, entry *core.Entry) ([]byte, error) {
	fields := ZapFields(entry.Fields)
	if len(f.context) > 0 {
		fields = append(fields, f.context...)
	}
	buf, err := f.enc.EncodeEntry(f.zapEntry(entry), fields)
	if err != nil {
		return dst, err
	}
	dst = append(dst, buf.Bytes()...)
	buf.Free()
	return dst, nil
}

func (f *JSONFormatter) zapEntry(entry *core.Entry) zapcore.Entry {
	ze := zapcore.Entry{
		Level:   ZapLevel(entry.Level),
		Time:    entry.Time,
		Message: entry.Message,
	}
	if f.cfg.IncludeCaller && entry.Caller.Defined() {
		ze.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     entry.Caller.File,
			Line:     entry.Caller.Line,
			Function: entry.Caller.Function,
		}
	}
	return ze
}

// ZapLevel maps a core level onto the matching zapcore level
func ZapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ZapFields converts core fields into zap fields
func ZapFields(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case core.StringKind, core.ErrorKind:
			out = append(out, zap.String(f.Key, f.Str()))
		case core.Int64Kind:
			out = append(out, zap.Int64(f.Key, f.Int64()))
		case core.Uint64Kind:
			out = append(out, zap.Uint64(f.Key, f.Uint64()))
		case core.Float64Kind:
			out = append(out, zap.Float64(f.Key, f.Float64()))
		case core.BoolKind:
			out = append(out, zap.Bool(f.Key, f.Bool()))
		case core.TimeKind:
			out = append(out, zap.Time(f.Key, f.Time()))
		case core.DurationKind:
			out = append(out, zap.Duration(f.Key, f.Duration()))
		default:
			out = append(out, zap.Any(f.Key, f.Interface()))
		}
	}
	return out
}
