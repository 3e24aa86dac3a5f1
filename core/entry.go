package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one log event on its way to the destinations of a logger.
// Entries come from NewEntry and go back with Release once every
// destination has seen them.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
	Caller  Caller
}

var entries = sync.Pool{
	New: func() interface{} { return &Entry{Fields: make([]Field, 0, 8)} },
}

// NewEntry takes an entry from the pool and fills in its header.
func NewEntry(t time.Time, level Level, msg string) *Entry {
	e := entries.Get().(*Entry)
	e.Time = t
	e.Level = level
	e.Message = msg
	return e
}

// With appends field groups in order and returns e.
func (e *Entry) With(groups ...[]Field) *Entry {
	for _, g := range groups {
		e.Fields = append(e.Fields, g...)
	}
	return e
}

// Release clears e and puts it back in the pool. e must not be used
// afterwards.
func (e *Entry) Release() {
	if e == nil {
		return
	}
	clear(e.Fields)
	*e = Entry{Fields: e.Fields[:0]}
	entries.Put(e)
}

// Caller is the source location an entry was logged from.
type Caller struct {
	File     string
	Line     int
	Function string
}

// Defined reports whether the location is known.
func (c Caller) Defined() bool {
	return c.File != ""
}

// ShortFile is the base name of File.
func (c Caller) ShortFile() string {
	return filepath.Base(c.File)
}

// CallerAt resolves the frame skip levels above its own caller.
func CallerAt(skip int) Caller {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return Caller{}
	}
	return CallerFromPC(pcs[0])
}

// CallerFromPC resolves a program counter such as slog.Record.PC.
// A zero pc gives an undefined Caller.
func CallerFromPC(pc uintptr) Caller {
	if pc == 0 {
		return Caller{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return Caller{File: frame.File, Line: frame.Line, Function: frame.Function}
}
