// Package hostlog adapts the standard logger to nixiewatch.Logger for the host tools,
// optionally writing to a size-rotated file.
package hostlog

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fopscorp/nixiewatch/internal/config"
)

// Logger writes Info always and Debug only when enabled.
type Logger struct {
	l     *log.Logger
	debug bool
}

// New returns a logger writing to w.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{l: log.New(w, "", log.LstdFlags), debug: debug}
}

// Open builds a logger from the log section of the config. The returned closer releases
// the log file, if any.
func Open(cfg config.LogConfig) (*Logger, io.Closer) {
	if cfg.File == "" {
		return New(os.Stderr, cfg.Debug), io.NopCloser(nil)
	}
	f := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	return New(f, cfg.Debug), f
}

func (l *Logger) Debug(msg string) {
	if l.debug {
		l.l.Print("debug: " + msg)
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.debug {
		l.l.Print("debug: " + fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Info(msg string) {
	l.l.Print(msg)
}

func (l *Logger) Infof(format string, v ...any) {
	l.l.Printf(format, v...)
}
