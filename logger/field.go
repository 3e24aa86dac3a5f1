package logger

import "github.com/philipp01105/loguploader/core"

// Field constructors, re-exported so callers need only this package.
var (
	String   = core.String
	Int      = core.Int
	Int64    = core.Int64
	Uint64   = core.Uint64
	Float64  = core.Float64
	Bool     = core.Bool
	Time     = core.Time
	Duration = core.Duration
	Any      = core.Any

	// Err is the "error" field of failure reports
	Err = core.Err
	// Path is the "path" field of file and cleanup reports
	Path = core.Path
)
