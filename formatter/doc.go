// Package formatter renders entries into the bytes a log file receives.
//
// A Formatter appends one entry to a caller-owned buffer, so the
// destination decides where the bytes go and how buffers are reused.
// TextFormatter writes "time [LEVEL] message key=value" lines. Values
// that would break the key=value layout are quoted. JSONFormatter
// delegates to zapcore's JSON encoder, so JSON log files have the same
// shape as files produced by zap itself and uploaders can ship either.
//
// Config.Context names fields written on every line after the entry's
// own fields, typically the uploader a file belongs to.
package formatter
