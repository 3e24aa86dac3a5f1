package destination

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/formatter"
	"github.com/philipp01105/loguploader/queue"
	"github.com/philipp01105/loguploader/uploader"
)

type report struct {
	msg    string
	fields []core.Field
}

// recordingOwner collects what destinations report to their owner.
type recordingOwner struct {
	mu       sync.Mutex
	errors   []report
	warnings []report
	queue    *queue.Serial
}

func (o *recordingOwner) Error(msg string, fields ...core.Field) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errors = append(o.errors, report{msg, fields})
}

func (o *recordingOwner) Warn(msg string, fields ...core.Field) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, report{msg, fields})
}

func (o *recordingOwner) Queue() *queue.Serial { return o.queue }

func (o *recordingOwner) errorReports() []report {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]report(nil), o.errors...)
}

func textWriter() FileWriter {
	return NewFormatWriter(formatter.NewTextFormatter(formatter.Config{}))
}

func newEntry(msg string) *core.Entry {
	return &core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: msg}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewFileDestination_RequiresPath(t *testing.T) {
	_, err := NewFileDestination(FileConfig{})
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestNewFileDestination_Defaults(t *testing.T) {
	d, err := NewFileDestination(FileConfig{Path: filepath.Join(t.TempDir(), "app.json")})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, "app.json", d.Identifier())
	assert.Equal(t, "json", d.DefaultFileExtension())
	assert.Nil(t, d.Owner())
	assert.Nil(t, d.Uploader())
	assert.False(t, d.IsOpen(), "a detached destination must not hold a file")
}

func TestFileDestination_AttachCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter()})
	require.NoError(t, err)
	defer d.Close()

	owner := &recordingOwner{}
	d.Attach(owner)

	require.True(t, d.IsOpen())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Empty(t, owner.errorReports())

	d.Attach(nil)
	assert.False(t, d.IsOpen())
	d.Attach(nil)
	assert.False(t, d.IsOpen())
	assert.NoError(t, d.CloseFile())
}

func TestFileDestination_OwnerInConfigOpensImmediately(t *testing.T) {
	owner := &recordingOwner{}
	d, err := NewFileDestination(FileConfig{
		Path:   filepath.Join(t.TempDir(), "app.log"),
		Writer: textWriter(),
		Owner:  owner,
	})
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.IsOpen())
	assert.Same(t, owner, d.Owner())
}

func TestFileDestination_OpenFileDetachedIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter()})
	require.NoError(t, err)

	d.OpenFile()

	assert.False(t, d.IsOpen())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file may be created while detached")
}

func TestFileDestination_OpenFailureReported(t *testing.T) {
	// A directory cannot be opened for writing.
	path := t.TempDir()
	owner := &recordingOwner{}
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter(), Owner: owner})
	require.NoError(t, err)
	defer d.Close()

	assert.False(t, d.IsOpen())
	reports := owner.errorReports()
	require.Len(t, reports, 1)
	assert.Equal(t, "Unable to open file", reports[0].msg)

	p, ok := core.Lookup(reports[0].fields, "path")
	require.True(t, ok)
	assert.Equal(t, path, p.Str())
	cause, ok := core.Lookup(reports[0].fields, "error")
	require.True(t, ok)
	assert.Contains(t, cause.Str(), path)

	d.Output(newEntry("dropped"))
	assert.Equal(t, uint64(1), d.Stats().Dropped)
}

func TestFileDestination_OutputAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter(), Owner: &recordingOwner{}})
	require.NoError(t, err)

	d.Output(newEntry("first"))
	d.Output(newEntry("second"))
	require.NoError(t, d.Close())

	content := readFile(t, path)
	assert.True(t, strings.HasPrefix(content, "existing\n"), content)
	assert.Contains(t, content, "[INFO] first")
	assert.Contains(t, content, "[INFO] second")
	assert.Equal(t, uint64(2), d.Stats().Written)
}

func TestFileDestination_SetFileURLReopens(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.log")
	newPath := filepath.Join(dir, "rotated", "new.txt")

	d, err := NewFileDestination(FileConfig{Path: oldPath, Writer: textWriter(), Owner: &recordingOwner{}})
	require.NoError(t, err)
	defer d.Close()

	d.Output(newEntry("before move"))
	d.SetFileURL(newPath)
	d.Output(newEntry("after move"))
	require.NoError(t, d.CloseFile())

	assert.Equal(t, newPath, d.Path())
	assert.Equal(t, "txt", d.DefaultFileExtension())
	assert.Contains(t, readFile(t, oldPath), "before move")
	assert.NotContains(t, readFile(t, oldPath), "after move")
	assert.Contains(t, readFile(t, newPath), "after move")
}

func TestFileDestination_SetFileURLSamePathKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter(), Owner: &recordingOwner{}})
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < 5; i++ {
		d.Output(newEntry("line"))
		d.SetFileURL(path)
		require.True(t, d.IsOpen())
	}
	require.NoError(t, d.CloseFile())

	assert.Equal(t, 5, strings.Count(readFile(t, path), "line"))
}

// trackOpens records every handle the destinations of a test open.
func trackOpens(t *testing.T) func() []*os.File {
	t.Helper()
	var mu sync.Mutex
	var opened []*os.File
	openFile = func(name string, flag int, perm os.FileMode) (*os.File, error) {
		f, err := os.OpenFile(name, flag, perm)
		if err == nil {
			mu.Lock()
			opened = append(opened, f)
			mu.Unlock()
		}
		return f, err
	}
	t.Cleanup(func() { openFile = os.OpenFile })
	return func() []*os.File {
		mu.Lock()
		defer mu.Unlock()
		return append([]*os.File(nil), opened...)
	}
}

func TestFileDestination_ReopenClosesPreviousHandle(t *testing.T) {
	opened := trackOpens(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter(), Owner: &recordingOwner{}})
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < 4; i++ {
		d.SetFileURL(path)
	}
	d.SetFileURL(filepath.Join(dir, "other.log"))
	d.Attach(&recordingOwner{})

	handles := opened()
	require.Len(t, handles, 7, "initial open, five SetFileURL calls and one Attach")
	for i, f := range handles[:len(handles)-1] {
		_, err := f.Write([]byte("leak\n"))
		assert.ErrorIs(t, err, os.ErrClosed, "handle %d was not closed by the reopen after it", i)
	}

	last := handles[len(handles)-1]
	_, err = last.Write([]byte("current\n"))
	require.NoError(t, err, "the current handle must stay usable")

	require.NoError(t, d.Close())
	_, err = last.Write([]byte("after close\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NotContains(t, readFile(t, path), "leak")
}

func TestFileDestination_SetFileURLDetachedOnlyStores(t *testing.T) {
	dir := t.TempDir()
	d, err := NewFileDestination(FileConfig{Path: filepath.Join(dir, "a.log"), Writer: textWriter()})
	require.NoError(t, err)

	next := filepath.Join(dir, "b.log")
	d.SetFileURL(next)

	assert.Equal(t, next, d.Path())
	assert.False(t, d.IsOpen())
	_, err = os.Stat(next)
	assert.True(t, os.IsNotExist(err))
}

func TestFileDestination_OutputWithoutWriterPanics(t *testing.T) {
	d, err := NewFileDestination(FileConfig{
		Path:  filepath.Join(t.TempDir(), "app.log"),
		Owner: &recordingOwner{},
	})
	require.NoError(t, err)
	defer d.Close()

	assert.PanicsWithValue(t, ErrNoWriter, func() {
		d.Output(newEntry("no writer"))
	})
}

func TestFileDestination_WriterErrorCounted(t *testing.T) {
	failing := FileWriterFunc(func(io.Writer, *core.Entry) error {
		return errors.New("disk full")
	})
	d, err := NewFileDestination(FileConfig{
		Path:   filepath.Join(t.TempDir(), "app.log"),
		Writer: failing,
		Owner:  &recordingOwner{},
	})
	require.NoError(t, err)
	defer d.Close()

	d.Output(newEntry("lost"))

	snap := d.Stats()
	assert.Equal(t, uint64(1), snap.Failed)
	assert.Zero(t, snap.Written)
}

func TestFileDestination_FlushWithoutQueue(t *testing.T) {
	tests := []struct {
		name  string
		owner Owner
	}{
		{"attached", &recordingOwner{}},
		{"detached", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewFileDestination(FileConfig{
				Path:   filepath.Join(t.TempDir(), "app.log"),
				Writer: textWriter(),
				Owner:  tt.owner,
			})
			require.NoError(t, err)
			defer d.Close()

			calls := 0
			d.Flush(func() { calls++ })
			assert.Equal(t, 1, calls, "callback must run synchronously exactly once")

			d.Flush(nil)
		})
	}
}

func TestFileDestination_FlushOnQueueAfterWrites(t *testing.T) {
	q := queue.New(queue.Config{Size: 8})
	defer q.Close()

	path := filepath.Join(t.TempDir(), "app.log")
	d, err := NewFileDestination(FileConfig{
		Path:   path,
		Writer: textWriter(),
		Owner:  &recordingOwner{queue: q},
	})
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < 20; i++ {
		q.Async(func() { d.Output(newEntry("queued")) })
	}

	var calls int
	var seen string
	done := make(chan struct{})
	d.Flush(func() {
		calls++
		data, _ := os.ReadFile(path)
		seen = string(data)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("flush callback never ran")
	}
	q.Sync(func() {})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 20, strings.Count(seen, "queued"), "flush must observe every write queued before it")
}

func TestFileDestination_CloseIdempotent(t *testing.T) {
	d, err := NewFileDestination(FileConfig{
		Path:   filepath.Join(t.TempDir(), "app.log"),
		Writer: textWriter(),
		Owner:  &recordingOwner{},
	})
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.False(t, d.IsOpen())
	assert.Nil(t, d.Owner())

	d.Flush(nil)
	d.Output(newEntry("after close"))
	assert.Equal(t, uint64(1), d.Stats().Dropped)
}

func TestFileDestination_Uploader(t *testing.T) {
	conf, err := uploader.NewConfiguration("s3", t.TempDir())
	require.NoError(t, err)

	d, err := NewFileDestination(FileConfig{
		Path:     conf.LogPath("app.log"),
		Writer:   textWriter(),
		Uploader: conf,
	})
	require.NoError(t, err)

	assert.Same(t, conf, d.Uploader())
}

func TestFileDestination_ConcurrentOutputAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	d, err := NewFileDestination(FileConfig{Path: path, Writer: textWriter(), Owner: &recordingOwner{}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				d.Output(newEntry("concurrent"))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				d.Flush(nil)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, d.Close())

	assert.Equal(t, 200, strings.Count(readFile(t, path), "concurrent"))
}

func BenchmarkFileDestination_Output(b *testing.B) {
	d, err := NewFileDestination(FileConfig{
		Path:   filepath.Join(b.TempDir(), "bench.log"),
		Writer: textWriter(),
		Owner:  &recordingOwner{},
	})
	if err != nil {
		b.Fatal(err)
	}
	defer d.Close()

	entry := newEntry("benchmark message")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Output(entry)
	}
}
