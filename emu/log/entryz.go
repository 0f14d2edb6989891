package log

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

// A Context adds implicit fields to every log entry (e.g. the CPU adds its
// current cycle count). Contexts are global and appended once at startup.
type Context interface {
	AddLogContext(e *EntryZ)
}

var contexts []Context

func AddContext(ctx Context) {
	contexts = append(contexts, ctx)
}

// EntryZ is a log entry builder that doesn't allocate when the entry is
// disabled: all the field setters are nil-receiver safe, so a disabled
// module costs a couple of branches and nothing else.
type EntryZ struct {
	lvl Level
	msg string
	mod Module

	zfbuf [16]ZField
	zfidx int
}

var entryZPool = sync.Pool{
	New: func() any { return &EntryZ{} },
}

func NewEntryZ() *EntryZ {
	e := entryZPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

func (e *EntryZ) field(t FieldType, key string) *ZField {
	if e.zfidx == len(e.zfbuf) {
		// drop extra fields rather than reallocate
		return &ZField{}
	}
	f := &e.zfbuf[e.zfidx]
	e.zfidx++
	f.Type = t
	f.Key = key
	return f
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if e != nil {
		e.field(FieldTypeBool, key).Boolean = val
	}
	return e
}

func (e *EntryZ) String(key string, val string) *EntryZ {
	if e != nil {
		e.field(FieldTypeString, key).String = val
	}
	return e
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	if e != nil {
		e.field(FieldTypeStringer, key).Interface = val
	}
	return e
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	if e != nil {
		e.field(FieldTypeHex8, key).Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	if e != nil {
		e.field(FieldTypeHex16, key).Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	if e != nil {
		e.field(FieldTypeHex32, key).Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Hex64(key string, val uint64) *EntryZ {
	if e != nil {
		e.field(FieldTypeHex64, key).Integer = val
	}
	return e
}

func (e *EntryZ) Int(key string, val int64) *EntryZ {
	if e != nil {
		e.field(FieldTypeInt, key).Integer = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint(key string, val uint64) *EntryZ {
	if e != nil {
		e.field(FieldTypeUint, key).Integer = val
	}
	return e
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if e != nil {
		e.field(FieldTypeError, key).Error = err
	}
	return e
}

func (e *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	if e != nil {
		e.field(FieldTypeDuration, key).Duration = d
	}
	return e
}

func (e *EntryZ) Blob(key string, b []byte) *EntryZ {
	if e != nil {
		e.field(FieldTypeBlob, key).Blob = b
	}
	return e
}

// End emits the entry and recycles it. It must be the last call on the chain.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}

	entryZPool.Put(e)
}
