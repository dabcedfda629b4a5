// Package log2 is a leveled wrapper around the stdlib logger.
//
// A nil *Log is valid and discards everything, so drivers can take an
// optional logger without nil checks at every call site. Tests route output
// into t.Logf with NewTest.
package log2

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sync/atomic"
	"testing"
)

const (
	// typed so that flags are not accidentally passed as a level
	Lmicroseconds     int = log.Lmicroseconds
	Lshortfile        int = log.Lshortfile
	LStdFlags         int = log.Ltime | Lshortfile
	LInteractiveFlags int = log.Ltime | Lshortfile | Lmicroseconds
	LTestFlags        int = Lshortfile | Lmicroseconds
)

type Level int32

const (
	LError Level = iota
	LInfo
	LDebug
	LAll Level = math.MaxInt32
)

type Log struct {
	l      *log.Logger
	level  Level
	w      io.Writer
	fatalf FmtFunc
}

// FmtFunc is the signature of Printf-like functions.
type FmtFunc func(format string, args ...interface{})

// FuncWriter adapts a FmtFunc to io.Writer.
type FuncWriter struct{ FmtFunc }

func (fw FuncWriter) Write(b []byte) (int, error) {
	fw.FmtFunc("%s", b)
	return len(b), nil
}

func NewStderr(level Level) *Log { return NewWriter(os.Stderr, level) }

func NewWriter(w io.Writer, level Level) *Log {
	if w == io.Discard {
		return nil
	}
	return &Log{
		l:     log.New(w, "", LStdFlags),
		level: level,
		w:     w,
	}
}

func NewFunc(f FmtFunc, level Level) *Log { return NewWriter(FuncWriter{f}, level) }

// NewTest logs into t.Logf; Fatal and Fatalf call t.Fatalf.
func NewTest(t testing.TB, level Level) *Log {
	l := NewFunc(t.Logf, level)
	l.SetFlags(LTestFlags)
	l.fatalf = t.Fatalf
	return l
}

func (l *Log) Clone(level Level) *Log {
	if l == nil {
		return nil
	}
	c := NewWriter(l.w, level)
	c.SetFlags(l.l.Flags())
	c.SetPrefix(l.l.Prefix())
	c.fatalf = l.fatalf
	return c
}

func (l *Log) SetLevel(level Level) {
	if l == nil {
		return
	}
	atomic.StoreInt32((*int32)(&l.level), int32(level))
}

func (l *Log) SetFlags(f int) {
	if l == nil {
		return
	}
	l.l.SetFlags(f)
}

func (l *Log) SetPrefix(prefix string) {
	if l == nil {
		return
	}
	l.l.SetPrefix(prefix)
}

func (l *Log) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return atomic.LoadInt32((*int32)(&l.level)) >= int32(level)
}

func (l *Log) Log(level Level, s string) {
	if l.Enabled(level) {
		_ = l.l.Output(3, s)
	}
}

func (l *Log) Logf(level Level, format string, args ...interface{}) {
	if l.Enabled(level) {
		_ = l.l.Output(3, fmt.Sprintf(format, args...))
	}
}

func (l *Log) Error(args ...interface{}) {
	l.Log(LError, "error: "+fmt.Sprint(args...))
}
func (l *Log) Errorf(format string, args ...interface{}) {
	l.Logf(LError, "error: "+format, args...)
}
func (l *Log) Info(args ...interface{}) {
	l.Log(LInfo, fmt.Sprint(args...))
}
func (l *Log) Infof(format string, args ...interface{}) {
	l.Logf(LInfo, format, args...)
}
func (l *Log) Debug(args ...interface{}) {
	l.Log(LDebug, "debug: "+fmt.Sprint(args...))
}
func (l *Log) Debugf(format string, args ...interface{}) {
	l.Logf(LDebug, "debug: "+format, args...)
}

func (l *Log) Fatalf(format string, args ...interface{}) {
	if l != nil && l.fatalf != nil {
		l.fatalf(format, args...)
		return
	}
	l.Logf(LError, "fatal: "+format, args...)
	os.Exit(1)
}
func (l *Log) Fatal(args ...interface{}) {
	s := fmt.Sprint(args...)
	if l != nil && l.fatalf != nil {
		l.fatalf("%s", s)
		return
	}
	l.Log(LError, "fatal: "+s)
	os.Exit(1)
}
