package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/loguploader/core"
)

// TextFormatter writes one human-readable line per entry:
//
//	2024-05-07T13:00:00Z [ERROR] [file.go:42] Unable to open file path=/logs/app.log
type TextFormatter struct {
	cfg Config
}

// NewTextFormatter creates a text formatter (default layout: RFC3339)
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{cfg: cfg}
}

// AppendEntry implements Formatter. It never fails.
func (f *TextFormatter) AppendEntry(dst []byte, entry *core.Entry) ([]byte, error) {
	dst = entry.Time.AppendFormat(dst, f.cfg.TimestampFormat)
	dst = append(dst, " ["...)
	dst = append(dst, entry.Level.String()...)
	dst = append(dst, "] "...)

	if f.cfg.IncludeCaller && entry.Caller.Defined() {
		dst = append(dst, '[')
		dst = append(dst, entry.Caller.ShortFile()...)
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, int64(entry.Caller.Line), 10)
		dst = append(dst, "] "...)
	}

	dst = append(dst, entry.Message...)
	dst = appendPairs(dst, entry.Fields)
	dst = appendPairs(dst, f.cfg.Context)
	return append(dst, '\n'), nil
}

func appendPairs(dst []byte, fields []core.Field) []byte {
	for _, field := range fields {
		dst = append(dst, ' ')
		dst = append(dst, field.Key...)
		dst = append(dst, '=')
		start := len(dst)
		dst = field.AppendText(dst)
		if needsQuote(string(dst[start:])) {
			value := string(dst[start:])
			dst = strconv.AppendQuote(dst[:start], value)
		}
	}
	return dst
}

// needsQuote reports whether v would be misread as more than one pair.
func needsQuote(v string) bool {
	if v == "" {
		return false
	}
	return strings.ContainsAny(v, " =\"\t\r\n") || !strconv.CanBackquote(v)
}
