package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

const consoleHistory = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding to a base logger and
// copying each message to a console channel
type WebLogger struct {
	base        core.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger that mirrors base onto consoleChan.
// A nil base discards the server-side copy.
func NewWebLogger(base core.Logger, consoleChan chan<- ConsoleMessage) *WebLogger {
	if base == nil {
		base = core.NopLogger{}
	}
	return &WebLogger{
		base:        base,
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) DebugEnabled() bool { return wl.base.DebugEnabled() }
func (wl *WebLogger) SetDebug(enabled bool) { wl.base.SetDebug(enabled) }

func (wl *WebLogger) Debugf(format string, args ...any) {
	if !wl.base.DebugEnabled() {
		return
	}
	wl.base.Debugf(format, args...)
	wl.send("debug", format, args...)
}

func (wl *WebLogger) Infof(format string, args ...any) {
	wl.base.Infof(format, args...)
	wl.send("info", format, args...)
}

func (wl *WebLogger) Warnf(format string, args ...any) {
	wl.base.Warnf(format, args...)
	wl.send("warning", format, args...)
}

func (wl *WebLogger) Errorf(format string, args ...any) {
	wl.base.Errorf(format, args...)
	wl.send("error", format, args...)
}

// send never blocks; messages are dropped while the channel is full
func (wl *WebLogger) send(level, format string, args ...any) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}

// consoleLog keeps the most recent console messages
type consoleLog struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

func newConsoleLog(limit int) *consoleLog {
	return &consoleLog{limit: limit}
}

func (cl *consoleLog) add(msg ConsoleMessage) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.messages = append(cl.messages, msg)
	if len(cl.messages) > cl.limit {
		cl.messages = cl.messages[len(cl.messages)-cl.limit:]
	}
}

func (cl *consoleLog) recent() []ConsoleMessage {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return append([]ConsoleMessage(nil), cl.messages...)
}

// collect drains ch into the log until done is closed
func (cl *consoleLog) collect(ch <-chan ConsoleMessage, done <-chan struct{}) {
	for {
		select {
		case msg := <-ch:
			cl.add(msg)
		case <-done:
			return
		}
	}
}
