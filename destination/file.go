package destination

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/uploader"
)

// swapped in tests to observe the handles a destination opens
var openFile = os.OpenFile

// FileConfig holds configuration for a file destination
type FileConfig struct {
	// Path is the log file location
	Path string
	// Identifier names the destination (default: base name of Path)
	Identifier string
	// Writer renders entries into the file. Output panics when it is nil.
	Writer FileWriter
	// Uploader is the uploader that ships this file, if any
	Uploader *uploader.Configuration
	// Owner attaches the destination immediately when set
	Owner Owner
	// FileMode is used when the file is created (default: 0644)
	FileMode os.FileMode
	// DirMode is used when parent directories are created (default: 0755)
	DirMode os.FileMode
}

func applyFileDefaults(cfg *FileConfig) {
	if cfg.Identifier == "" {
		cfg.Identifier = filepath.Base(cfg.Path)
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
}

// FileDestination writes entries to a single log file that is open
// exactly while the destination is attached to an owner.
//
// Reconfiguration (Attach, SetFileURL) is not meant to race with itself;
// callers that reconfigure from several goroutines synchronize
// externally. Output, Flush and Close may run concurrently with each
// other.
type FileDestination struct {
	mu         sync.Mutex
	owner      Owner
	path       string
	file       *os.File
	uploader   *uploader.Configuration
	identifier string
	writer     FileWriter
	fileMode   os.FileMode
	dirMode    os.FileMode
	stats      *Stats
}

// NewFileDestination creates a file destination. When cfg.Owner is set
// the file is opened before NewFileDestination returns; open failures are
// reported to that owner.
func NewFileDestination(cfg FileConfig) (*FileDestination, error) {
	if cfg.Path == "" {
		return nil, ErrPathRequired
	}
	applyFileDefaults(&cfg)

	d := &FileDestination{
		path:       cfg.Path,
		uploader:   cfg.Uploader,
		identifier: cfg.Identifier,
		writer:     cfg.Writer,
		fileMode:   cfg.FileMode,
		dirMode:    cfg.DirMode,
		stats:      NewStats(),
	}
	if cfg.Owner != nil {
		d.Attach(cfg.Owner)
	}
	return d, nil
}

// Identifier returns the destination name
func (d *FileDestination) Identifier() string {
	return d.identifier
}

// Uploader returns the uploader configuration, or nil
func (d *FileDestination) Uploader() *uploader.Configuration {
	return d.uploader
}

// Path returns the current log file path
func (d *FileDestination) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// DefaultFileExtension returns the extension of the current path without the dot
func (d *FileDestination) DefaultFileExtension() string {
	return strings.TrimPrefix(filepath.Ext(d.Path()), ".")
}

// Owner returns the owner the destination is attached to, or nil
func (d *FileDestination) Owner() Owner {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owner
}

// IsOpen reports whether a file handle is currently held
func (d *FileDestination) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file != nil
}

// Stats returns a snapshot of the entry counters
func (d *FileDestination) Stats() Snapshot {
	return d.stats.Snapshot()
}

// Attach sets the owner. A non-nil owner (re)opens the file, nil closes
// it. Close failures on detach are reported to the previous owner.
func (d *FileDestination) Attach(owner Owner) {
	d.mu.Lock()
	prev := d.owner
	d.owner = owner
	d.mu.Unlock()

	if owner != nil {
		d.OpenFile()
		return
	}
	if err := d.CloseFile(); err != nil && prev != nil {
		prev.Error("Unable to close file", core.Err(err))
	}
}

// OpenFile opens the file at the current path for appending, creating
// it and its parent directories when absent. Any handle already held is
// closed first. Detached destinations do nothing. Failures are reported
// to the owner and leave the destination closed.
func (d *FileDestination) OpenFile() {
	d.mu.Lock()
	owner := d.owner
	if owner == nil {
		d.mu.Unlock()
		return
	}
	path := d.path
	closeErr := d.closeLocked()
	openErr := d.openLocked()
	d.mu.Unlock()

	// reported unlocked, the owner writes the report back through us
	if closeErr != nil {
		owner.Error("Unable to close file", core.Err(closeErr))
	}
	if openErr != nil {
		owner.Error("Unable to open file", core.Path(path), core.Err(openErr))
	}
}

func (d *FileDestination) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(d.path), d.dirMode); err != nil {
		return errors.Wrapf(err, "create directory for %s", d.path)
	}
	file, err := openFile(d.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, d.fileMode)
	if err != nil {
		return errors.Wrapf(err, "open %s", d.path)
	}
	d.file = file
	return nil
}

// CloseFile syncs and closes the held file handle. Calling it on a
// closed destination is a no-op.
func (d *FileDestination) CloseFile() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeLocked()
}

func (d *FileDestination) closeLocked() error {
	if d.file == nil {
		return nil
	}
	name := d.file.Name()
	err := multierr.Combine(d.file.Sync(), d.file.Close())
	d.file = nil
	return errors.Wrapf(err, "close %s", name)
}

// Flush forces written data to storage and then calls onComplete.
// When the owner has a queue the sync runs on it, after every entry
// queued before it; otherwise it runs on the calling goroutine.
// onComplete, if non-nil, is called exactly once whatever the sync result.
func (d *FileDestination) Flush(onComplete func()) {
	flush := func() {
		d.mu.Lock()
		if d.file != nil {
			_ = d.file.Sync()
		}
		d.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
	}

	if owner := d.Owner(); owner != nil {
		if q := owner.Queue(); q != nil {
			q.Async(flush)
			return
		}
	}
	flush()
}

// SetFileURL moves the destination to path and reopens it there.
func (d *FileDestination) SetFileURL(path string) {
	d.mu.Lock()
	d.path = path
	d.mu.Unlock()
	d.OpenFile()
}

// Output hands entry to the FileWriter. Entries arriving while the file
// is closed are dropped.
func (d *FileDestination) Output(entry *core.Entry) {
	if d.writer == nil {
		panic(ErrNoWriter)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		d.stats.incrementDropped()
		return
	}
	if err := d.writer.WriteEntry(d.file, entry); err != nil {
		d.stats.incrementFailed()
		return
	}
	d.stats.incrementWritten()
}

// Close detaches the destination and closes its file. It is safe to call
// more than once and must be called on every teardown path.
func (d *FileDestination) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.owner = nil
	return d.closeLocked()
}
