package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/loguploader/core"
	"github.com/philipp01105/loguploader/destination"
	"github.com/philipp01105/loguploader/queue"
)

// ErrDuplicateIdentifier is returned when a destination with the same
// identifier is already registered.
var ErrDuplicateIdentifier = errors.New("logger: destination identifier already registered")

// registry holds the destinations of a logger and of every child created
// with With. File destinations are indexed separately when registered.
type registry struct {
	mu    sync.RWMutex
	all   []destination.Destination
	files []*destination.FileDestination
}

func (r *registry) snapshot() []destination.Destination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]destination.Destination, len(r.all))
	copy(out, r.all)
	return out
}

// Logger fans entries out to its registered destinations and is the
// Owner those destinations report to.
type Logger struct {
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	queue         *queue.Serial
	reg           *registry
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	queueSize     int
	destinations  []destination.Destination
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel,
		callerSkip: 2,
	}
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithQueue makes the logger write entries on a serial queue whose
// buffer starts at size entries. Zero keeps writes synchronous.
func (b *Builder) WithQueue(size int) *Builder {
	b.queueSize = size
	return b
}

// WithDestinations registers destinations when the logger is built
func (b *Builder) WithDestinations(d ...destination.Destination) *Builder {
	b.destinations = append(b.destinations, d...)
	return b
}

// Build creates the Logger and attaches its destinations. A destination
// whose identifier is already taken is returned as an error.
func (b *Builder) Build() (*Logger, error) {
	l := &Logger{
		level:         b.level,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		reg:           &registry{},
	}
	if b.queueSize > 0 {
		l.queue = queue.New(queue.Config{Size: b.queueSize})
	}
	for _, d := range b.destinations {
		if err := l.AddDestination(d); err != nil {
			return nil, multierr.Append(err, l.Close())
		}
	}
	return l, nil
}

// With creates a child Logger with additional fields. The child shares
// the parent's destinations and queue.
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		level:         l.level,
		fields:        newFields,
		includeCaller: l.includeCaller,
		callerSkip:    l.callerSkip,
		queue:         l.queue,
		reg:           l.reg,
	}
}

// Queue returns the serial queue entries are written on, or nil
func (l *Logger) Queue() *queue.Serial {
	return l.queue
}

// AddDestination registers d and attaches it to the logger, which opens
// file destinations.
func (l *Logger) AddDestination(d destination.Destination) error {
	id := d.Identifier()

	l.reg.mu.Lock()
	for _, existing := range l.reg.all {
		if existing.Identifier() == id {
			l.reg.mu.Unlock()
			return errors.Wrapf(ErrDuplicateIdentifier, "add %q", id)
		}
	}
	l.reg.all = append(l.reg.all, d)
	if fd, ok := d.(*destination.FileDestination); ok {
		l.reg.files = append(l.reg.files, fd)
	}
	l.reg.mu.Unlock()

	d.Attach(l)
	return nil
}

// RemoveDestination unregisters and detaches the destination with the
// given identifier. It reports whether one was found.
func (l *Logger) RemoveDestination(id string) bool {
	l.reg.mu.Lock()
	var removed destination.Destination
	for i, d := range l.reg.all {
		if d.Identifier() == id {
			removed = d
			l.reg.all = append(l.reg.all[:i], l.reg.all[i+1:]...)
			break
		}
	}
	for i, fd := range l.reg.files {
		if fd.Identifier() == id {
			l.reg.files = append(l.reg.files[:i], l.reg.files[i+1:]...)
			break
		}
	}
	l.reg.mu.Unlock()

	if removed == nil {
		return false
	}
	removed.Attach(nil)
	return true
}

// Destination returns the registered destination with the given identifier
func (l *Logger) Destination(id string) (destination.Destination, bool) {
	l.reg.mu.RLock()
	defer l.reg.mu.RUnlock()
	for _, d := range l.reg.all {
		if d.Identifier() == id {
			return d, true
		}
	}
	return nil, false
}

// Destinations returns every registered destination in registration order
func (l *Logger) Destinations() []destination.Destination {
	return l.reg.snapshot()
}

// FileDestinations returns the file-backed destinations in registration order
func (l *Logger) FileDestinations() []*destination.FileDestination {
	l.reg.mu.RLock()
	defer l.reg.mu.RUnlock()
	out := make([]*destination.FileDestination, len(l.reg.files))
	copy(out, l.reg.files)
	return out
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	if !l.level.Allows(level) {
		return
	}
	l.log(time.Now(), level, msg, fields, 0)
}

// log builds a pooled entry and dispatches it inline or on the queue.
// A non-zero pc names the call site; otherwise it is the caller of the
// exported method that called log.
func (l *Logger) log(t time.Time, level core.Level, msg string, fields []core.Field, pc uintptr) {
	entry := core.NewEntry(t, level, msg).With(l.fields, fields)
	if l.includeCaller {
		if pc != 0 {
			entry.Caller = core.CallerFromPC(pc)
		} else {
			entry.Caller = core.CallerAt(l.callerSkip)
		}
	}

	if l.queue != nil {
		l.queue.Async(func() {
			l.dispatch(entry)
			entry.Release()
		})
		return
	}
	l.dispatch(entry)
	entry.Release()
}

func (l *Logger) dispatch(entry *core.Entry) {
	for _, d := range l.reg.snapshot() {
		d.Output(entry)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if l.level.Allows(core.DebugLevel) {
		l.log(time.Now(), core.DebugLevel, msg, fields, 0)
	}
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if l.level.Allows(core.InfoLevel) {
		l.log(time.Now(), core.InfoLevel, msg, fields, 0)
	}
}

// Warn logs a warning; destinations report through it as their owner
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if l.level.Allows(core.WarnLevel) {
		l.log(time.Now(), core.WarnLevel, msg, fields, 0)
	}
}

// Error logs an error; destinations report through it as their owner
func (l *Logger) Error(msg string, fields ...core.Field) {
	if l.level.Allows(core.ErrorLevel) {
		l.log(time.Now(), core.ErrorLevel, msg, fields, 0)
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level.Allows(core.DebugLevel) {
		l.log(time.Now(), core.DebugLevel, fmt.Sprintf(format, args...), nil, 0)
	}
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level.Allows(core.InfoLevel) {
		l.log(time.Now(), core.InfoLevel, fmt.Sprintf(format, args...), nil, 0)
	}
}

// Warnf logs a formatted warning
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.level.Allows(core.WarnLevel) {
		l.log(time.Now(), core.WarnLevel, fmt.Sprintf(format, args...), nil, 0)
	}
}

// Errorf logs a formatted error
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level.Allows(core.ErrorLevel) {
		l.log(time.Now(), core.ErrorLevel, fmt.Sprintf(format, args...), nil, 0)
	}
}

// Flush syncs every file destination and returns once all of them have
// been synced. With a queue, entries logged before Flush are written
// first. Flush must not be called from a function running on the queue.
func (l *Logger) Flush() {
	files := l.FileDestinations()
	var wg sync.WaitGroup
	wg.Add(len(files))
	for _, fd := range files {
		fd.Flush(wg.Done)
	}
	wg.Wait()
}

// Close drains the queue, then closes and unregisters every destination.
func (l *Logger) Close() error {
	if l.queue != nil {
		l.queue.Close()
	}

	l.reg.mu.Lock()
	all := l.reg.all
	l.reg.all = nil
	l.reg.files = nil
	l.reg.mu.Unlock()

	var err error
	for _, d := range all {
		err = multierr.Append(err, d.Close())
	}
	return err
}
