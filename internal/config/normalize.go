package config

import (
	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// Defaults filled in by Normalize.
const (
	DefaultPreviewScale   = 4
	DefaultBatteryReading = 2850
	DefaultListen         = "localhost:8621"
	DefaultSerialPort     = "/dev/ttyACM0"
	DefaultBaudRate       = 115200
	DefaultTimeoutMs      = 1000
	DefaultLogSizeMB      = 10
	DefaultLogBackups     = 3
)

// Normalize fills defaults for every unset field.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Sim.PreviewScale == 0 {
		cfg.Sim.PreviewScale = DefaultPreviewScale
	}
	if cfg.Sim.BatteryReading == 0 {
		cfg.Sim.BatteryReading = DefaultBatteryReading
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = DefaultListen
	}
	if cfg.Serial.Port == "" {
		cfg.Serial.Port = DefaultSerialPort
	}
	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = DefaultBaudRate
	}
	if cfg.Serial.TimeoutMs == 0 {
		cfg.Serial.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = DefaultLogSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = DefaultLogBackups
	}
}

// Settings returns the firmware settings with the watch section applied.
func (cfg *Config) Settings() nixiewatch.Settings {
	s := nixiewatch.DefaultSettings()
	w := cfg.Watch
	if w.TicksPerSecond != 0 {
		s.TicksPerSecond = w.TicksPerSecond
	}
	if w.WakePoll != 0 {
		s.WakePoll = w.WakePoll
	}
	if w.BatteryOffset != 0 {
		s.BatteryOffset = w.BatteryOffset
	}
	if w.EmptyLevel != 0 {
		s.EmptyLevel = w.EmptyLevel
	}
	if h, m, err := serialproto.ParseReply([]byte(w.StartTime)); err == nil {
		s.StartHours, s.StartMinutes = h, m
	}
	return s
}
