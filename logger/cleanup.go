package logger

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/philipp01105/loguploader/uploader"
)

// NoUploadersWarning is logged when a cleanup finds no uploader directories.
const NoUploadersWarning = "There are no uploaders with existing logfiles!"

// swapped in tests to force enumeration and removal failures
var (
	readDir   = os.ReadDir
	removeAll = os.RemoveAll
)

// UploaderHomeDirs returns the distinct home directories of the uploaders
// configured on the registered file destinations, sorted. Destinations
// without an uploader are skipped.
func (l *Logger) UploaderHomeDirs() []string {
	seen := make(map[string]struct{})
	for _, fd := range l.FileDestinations() {
		if conf := fd.Uploader(); conf != nil {
			seen[conf.HomeDir] = struct{}{}
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// DeleteAllLogFiles deletes everything inside every uploader home
// directory. Without any uploader directories it logs a warning and
// reports success without touching the file system.
func (l *Logger) DeleteAllLogFiles() bool {
	homes := l.UploaderHomeDirs()
	if len(homes) == 0 {
		l.Warn(NoUploadersWarning)
		return true
	}
	return l.deleteContents(homes)
}

// DeleteSuccessfulLogFiles deletes everything inside the successful
// subdirectory of every uploader home directory. The home directories
// themselves are left alone. A missing successful directory is a failure.
func (l *Logger) DeleteSuccessfulLogFiles() bool {
	homes := l.UploaderHomeDirs()
	if len(homes) == 0 {
		l.Warn(NoUploadersWarning)
		return true
	}

	successful := make([]string, len(homes))
	for i, home := range homes {
		successful[i] = filepath.Join(home, uploader.SuccessfulDirName)
	}
	return l.deleteContents(successful)
}

// deleteContents empties each directory in turn. The first failure is
// logged and aborts the whole call; directories after it are untouched
// and nothing already removed is restored.
func (l *Logger) deleteContents(dirs []string) bool {
	for _, dir := range dirs {
		if err := clearDir(dir); err != nil {
			l.Error("An error occurred when trying to delete contents", Path(dir), Err(err))
			return false
		}
	}
	return true
}

func clearDir(dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		return errors.Wrapf(err, "list %s", dir)
	}
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if err := removeAll(p); err != nil {
			return errors.Wrapf(err, "remove %s", p)
		}
	}
	return nil
}
