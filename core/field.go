package core

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind tells which accessor of a Field holds its value.
type Kind uint8

const (
	StringKind Kind = iota
	Int64Kind
	Uint64Kind
	Float64Kind
	BoolKind
	TimeKind
	DurationKind
	ErrorKind
	AnyKind
)

// Field is one key-value pair of structured context. Scalar values are
// packed into num so building a Field does not allocate.
type Field struct {
	Key  string
	Kind Kind
	num  uint64
	str  string
	any  interface{}
}

func String(key, val string) Field { return Field{Key: key, Kind: StringKind, str: val} }

func Int(key string, val int) Field { return Int64(key, int64(val)) }

func Int64(key string, val int64) Field { return Field{Key: key, Kind: Int64Kind, num: uint64(val)} }

func Uint64(key string, val uint64) Field { return Field{Key: key, Kind: Uint64Kind, num: val} }

func Float64(key string, val float64) Field {
	return Field{Key: key, Kind: Float64Kind, num: math.Float64bits(val)}
}

func Bool(key string, val bool) Field {
	f := Field{Key: key, Kind: BoolKind}
	if val {
		f.num = 1
	}
	return f
}

// Time keeps the value's location, so it is stored boxed.
func Time(key string, val time.Time) Field { return Field{Key: key, Kind: TimeKind, any: val} }

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Kind: DurationKind, num: uint64(val)}
}

// Err is the "error" field. A nil error gives an empty value.
func Err(err error) Field {
	f := Field{Key: "error", Kind: ErrorKind}
	if err != nil {
		f.str = err.Error()
	}
	return f
}

// Path is the "path" field carried by file and cleanup diagnostics.
func Path(p string) Field { return String("path", p) }

func Any(key string, val interface{}) Field { return Field{Key: key, Kind: AnyKind, any: val} }

func (f Field) Str() string { return f.str }
func (f Field) Int64() int64 { return int64(f.num) }
func (f Field) Uint64() uint64 { return f.num }
func (f Field) Float64() float64 { return math.Float64frombits(f.num) }
func (f Field) Bool() bool { return f.num == 1 }
func (f Field) Duration() time.Duration { return time.Duration(f.num) }
func (f Field) Interface() interface{} { return f.any }

func (f Field) Time() time.Time {
	t, _ := f.any.(time.Time)
	return t
}

// AppendText appends the value as plain text.
func (f Field) AppendText(dst []byte) []byte {
	switch f.Kind {
	case StringKind, ErrorKind:
		return append(dst, f.str...)
	case Int64Kind:
		return strconv.AppendInt(dst, f.Int64(), 10)
	case Uint64Kind:
		return strconv.AppendUint(dst, f.num, 10)
	case Float64Kind:
		return strconv.AppendFloat(dst, f.Float64(), 'f', -1, 64)
	case BoolKind:
		return strconv.AppendBool(dst, f.Bool())
	case TimeKind:
		return f.Time().AppendFormat(dst, time.RFC3339)
	case DurationKind:
		return append(dst, f.Duration().String()...)
	default:
		return fmt.Append(dst, f.any)
	}
}

// Text is the value as plain text.
func (f Field) Text() string {
	return string(f.AppendText(nil))
}

// Lookup returns the first field with the given key.
func Lookup(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
