package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	mu    sync.Mutex
	w     io.Writer
	debug bool
}

// New returns a Logger writing to stdout. Debug messages are
// discarded unless debug is true.
func New(debug bool) Logger {
	return NewWithWriter(os.Stdout, debug)
}

// NewWithWriter returns a Logger writing to w.
func NewWithWriter(w io.Writer, debug bool) Logger {
	return &logger{w: w, debug: debug}
}

func (l *logger) printf(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "["+level+"]\t"+format+"\n", args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf("INFO", format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.printf("DEBUG", format, args...)
}

// Fatal logs str and exits the process.
func (l *logger) Fatal(str string) {
	l.printf("FATAL", "%s", str)
	os.Exit(1)
}
