package config

import (
	"fmt"

	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	w := cfg.Watch
	if w.TicksPerSecond > 10000 {
		return fmt.Errorf("watch: ticks_per_second %d is above 10000", w.TicksPerSecond)
	}
	if w.BatteryOffset > 4095 {
		return fmt.Errorf("watch: battery_offset %d does not fit 12 bits", w.BatteryOffset)
	}
	if w.StartTime != "" {
		if _, _, err := serialproto.ParseReply([]byte(w.StartTime)); err != nil {
			return fmt.Errorf("watch: start_time %q is not a valid HH:MM", w.StartTime)
		}
	}

	s := cfg.Sim
	if s.BatteryReading > 4095 {
		return fmt.Errorf("sim: battery_reading %d does not fit 12 bits", s.BatteryReading)
	}
	if s.PreviewScale < 0 || s.PreviewScale > 32 {
		return fmt.Errorf("sim: preview_scale %d out of range 0-32", s.PreviewScale)
	}

	l := cfg.Log
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 {
		return fmt.Errorf("log: sizes must not be negative")
	}

	if cfg.Serial.BaudRate < 0 || cfg.Serial.TimeoutMs < 0 {
		return fmt.Errorf("serial: baud_rate and timeout_ms must not be negative")
	}
	return nil
}
