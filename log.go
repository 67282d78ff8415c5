package nixiewatch

import (
	"fmt"

	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// Logger receives boot and diagnostic messages. Interrupt bodies never log.
type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...any)
	Info(msg string)
	Infof(format string, v ...any)
}

// printLine is where consoleLogger output goes; tests swap it out.
var printLine = func(s string) { println(s) }

const logPrefix = string(serialproto.CommentPrefix) + " "

// consoleLogger writes to whatever println is hooked up to, which on the board is the
// USB serial console that also carries the time protocol. Debug lines are dropped unless
// enabled, and every line starts with serialproto.CommentPrefix.
type consoleLogger struct {
	debug bool
}

// ConsoleLogger returns the board's Logger. Debug and Debugf only print when debug is set.
func ConsoleLogger(debug bool) Logger {
	return consoleLogger{debug: debug}
}

func (l consoleLogger) Debug(msg string) {
	if l.debug {
		printLine(logPrefix + "debug: " + msg)
	}
}

func (l consoleLogger) Debugf(format string, v ...any) {
	if l.debug {
		l.Debug(fmt.Sprintf(format, v...))
	}
}

func (consoleLogger) Info(msg string) {
	printLine(logPrefix + msg)
}

func (l consoleLogger) Infof(format string, v ...any) {
	l.Info(fmt.Sprintf(format, v...))
}

// nopLogger drops everything.
type nopLogger struct{}

func (nopLogger) Debug(string)          {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Info(string)           {}
func (nopLogger) Infof(string, ...any)  {}

// NopLogger returns a Logger that discards every message.
func NopLogger() Logger { return nopLogger{} }
