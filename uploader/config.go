// Package uploader describes where an uploader keeps the log files it
// ships. The upload itself lives elsewhere; destinations and cleanup only
// need the directory layout.
package uploader

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// SuccessfulDirName is the subdirectory of an uploader home that holds
// files already uploaded successfully.
const SuccessfulDirName = "successful"

// ErrHomeDirRequired is returned when a configuration has no home directory.
var ErrHomeDirRequired = errors.New("uploader home directory is required")

// Configuration is the part of an uploader's settings used to group log
// files.
type Configuration struct {
	// Name identifies the uploader in diagnostics
	Name string
	// HomeDir is the absolute directory under which the uploader keeps its files
	HomeDir string
}

// NewConfiguration validates home and returns a configuration rooted at
// its absolute, cleaned form.
func NewConfiguration(name, home string) (*Configuration, error) {
	if home == "" {
		return nil, ErrHomeDirRequired
	}
	abs, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve uploader home %s", home)
	}
	return &Configuration{Name: name, HomeDir: abs}, nil
}

// SuccessfulDir returns HomeDir/successful.
func (c *Configuration) SuccessfulDir() string {
	return filepath.Join(c.HomeDir, SuccessfulDirName)
}

// LogPath returns the path of a log file named name inside HomeDir.
func (c *Configuration) LogPath(name string) string {
	return filepath.Join(c.HomeDir, name)
}
