package destination

import (
	"io"
	"sync"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/formatter"
)

// lines larger than this are not kept for reuse
const maxPooledLine = 64 << 10

var linePool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

// FormatWriter is a FileWriter that renders each entry with a formatter
// and hands it to the file in a single Write.
type FormatWriter struct {
	formatter formatter.Formatter
}

// NewFormatWriter creates a FileWriter backed by f (default: TextFormatter)
func NewFormatWriter(f formatter.Formatter) *FormatWriter {
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{})
	}
	return &FormatWriter{formatter: f}
}

// WriteEntry formats entry and writes it to w. Nothing is written when
// formatting fails.
func (fw *FormatWriter) WriteEntry(w io.Writer, entry *core.Entry) error {
	bp := linePool.Get().(*[]byte)
	line, err := fw.formatter.AppendEntry((*bp)[:0], entry)
	if err == nil {
		_, err = w.Write(line)
	}
	if cap(line) <= maxPooledLine {
		*bp = line
		linePool.Put(bp)
	}
	return err
}
