package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// DefaultLogger writes INFO/DEBUG lines to stdout and WARN/ERROR lines to stderr
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

// NewDefaultLogger creates a logger writing to the process streams
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

// NewWriterLogger creates a logger writing to the given streams
func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

// DebugEnabled reports whether Debugf lines are written
func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

// SetDebug switches Debugf output on or off; safe for concurrent use
func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

// prefixf renders "[prefix] LEVEL: message", dropping the brackets without a prefix
func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

// Debugf logs to stdout only while debug output is enabled
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

// Infof logs to stdout
func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

// Warnf logs to stderr
func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

// Errorf logs to stderr
func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// NopLogger satisfies Logger and discards everything. Renderers and servers
// fall back to it when constructed with a nil logger.
type NopLogger struct{}

func (NopLogger) DebugEnabled() bool { return false }
func (NopLogger) SetDebug(bool) {}
func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any) {}
func (NopLogger) Warnf(string, ...any) {}
func (NopLogger) Errorf(string, ...any) {}
