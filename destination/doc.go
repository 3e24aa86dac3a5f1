// Package destination provides the sinks a logger fans entries out to.
//
// FileDestination owns the lifecycle of one log file. It opens (creating
// the file and its parent directories when absent) as soon as it is
// attached to an Owner, closes when detached, and is torn down with
// Close. The bytes written for each entry come from a FileWriter supplied
// at construction; FormatWriter adapts any formatter.Formatter, so plain
// text and JSON files need no subclassing:
//
//	d, err := destination.NewFileDestination(destination.FileConfig{
//	    Path:     conf.LogPath("app.log"),
//	    Writer:   destination.NewFormatWriter(formatter.NewJSONFormatter(formatter.Config{})),
//	    Uploader: conf,
//	})
//
// A FileDestination without a Writer panics with ErrNoWriter on the first
// Output. That is a broken wiring, not a runtime condition.
//
// Failures to open a file never surface as return values. They are
// reported through Owner.Error with the path and cause, and the
// destination stays closed until it is re-attached or pointed at another
// path with SetFileURL. IsOpen exposes the resulting state.
//
// ConsoleDestination and ZapDestination are not file backed and are
// therefore invisible to the logger's cleanup operations.
package destination
