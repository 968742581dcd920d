package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	base        core.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, base core.Logger) *WebLogger {
	if base == nil {
		base = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		base:        base,
	}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.base.Printf("[%s] "+format, wl.prefixed(args)...)
	wl.send("info", format, args)
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.base.Debugf("[%s] "+format, wl.prefixed(args)...)
	wl.send("debug", format, args)
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.base.Infof("[%s] "+format, wl.prefixed(args)...)
	wl.send("info", format, args)
}

func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.base.Warnf("[%s] "+format, wl.prefixed(args)...)
	wl.send("warning", format, args)
}

func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.base.Errorf("[%s] "+format, wl.prefixed(args)...)
	wl.send("error", format, args)
}

func (wl *WebLogger) prefixed(args []interface{}) []interface{} {
	return append([]interface{}{wl.renderID}, args...)
}

// send forwards to the console channel without blocking
func (wl *WebLogger) send(level, format string, args []interface{}) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   strings.TrimRight(fmt.Sprintf(format, args...), "\n"),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}
