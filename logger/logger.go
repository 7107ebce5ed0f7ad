// Package logger provides the leveled logging used by the command line
// tools. A Logger writes to two streams, one for normal output and one for
// errors, and discards everything above its configured Level.
package logger

import (
	"io"
	"log"
)

// A Logger logs information using a log level
type Logger interface {
	// Debug logs at debug level. Arguments are handled in the manner of fmt.Println.
	Debug(...interface{})

	// Info logs at info level. Arguments are handled in the manner of fmt.Println.
	Info(...interface{})

	// Error logs at error level. Arguments are handled in the manner of fmt.Println.
	Error(...interface{})

	// DebugEnabled returns true if debug level logging is enabled
	DebugEnabled() bool

	// InfoEnabled returns true if info level logging is enabled
	InfoEnabled() bool

	// ErrorEnabled returns true if error level logging is enabled
	ErrorEnabled() bool
}

// Level determines what logging is enabled
type Level int

const (
	// Silent means that all logging is disabled
	Silent = Level(iota)

	// Error means that only error logging is enabled
	Error

	// Info means that error and info logging is enabled
	Info

	// Debug means that all logging is enabled
	Debug
)

type nop int

func (nop) Debug(...interface{}) {}
func (nop) Info(...interface{})  {}
func (nop) Error(...interface{}) {}

func (nop) DebugEnabled() bool { return false }
func (nop) InfoEnabled() bool  { return false }
func (nop) ErrorEnabled() bool { return false }

type leveled struct {
	debug *log.Logger
	info  *log.Logger
	err   *log.Logger
}

func (l *leveled) Debug(args ...interface{}) {
	if l.debug != nil {
		l.debug.Println(args...)
	}
}

func (l *leveled) Info(args ...interface{}) {
	if l.info != nil {
		l.info.Println(args...)
	}
}

func (l *leveled) Error(args ...interface{}) {
	if l.err != nil {
		l.err.Println(args...)
	}
}

func (l *leveled) DebugEnabled() bool { return l.debug != nil }

func (l *leveled) InfoEnabled() bool { return l.info != nil }

func (l *leveled) ErrorEnabled() bool { return l.err != nil }

// New returns a Logger backed by the standard log.Logger. Debug and info
// output goes to out, errors go to err.
func New(level Level, out, err io.Writer) Logger {
	if level == Silent {
		return nop(0)
	}
	l := &leveled{}
	if level >= Debug {
		l.debug = log.New(out, "DEBUG ", log.LstdFlags)
	}
	if level >= Info {
		l.info = log.New(out, "INFO  ", log.LstdFlags)
	}
	l.err = log.New(err, "ERROR ", log.LstdFlags)
	return l
}
