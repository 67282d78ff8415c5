// Package config loads the YAML configuration of the host tools.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Watch  WatchConfig  `yaml:"watch"`
	Sim    SimConfig    `yaml:"sim"`
	Log    LogConfig    `yaml:"log"`
	HTTP   HTTPConfig   `yaml:"http"`
	Serial SerialConfig `yaml:"serial"`
}

// ---- WATCH ----

// WatchConfig overrides the firmware settings. Zero values keep the defaults.
type WatchConfig struct {
	TicksPerSecond uint32 `yaml:"ticks_per_second"`
	WakePoll       uint32 `yaml:"wake_poll"`
	BatteryOffset  uint16 `yaml:"battery_offset"`
	EmptyLevel     uint8  `yaml:"empty_level"`
	StartTime      string `yaml:"start_time"` // HH:MM
}

// ---- SIMULATOR ----

type SimConfig struct {
	// BatteryReading is the 12-bit value the virtual battery input returns.
	BatteryReading uint16 `yaml:"battery_reading"`
	ChargeComplete bool   `yaml:"charge_complete"`
	PreviewScale   int    `yaml:"preview_scale"`
	// MotionBus names a Linux I2C bus with a real MPU6050. Empty uses a virtual sensor.
	MotionBus string `yaml:"motion_bus"`
}

// ---- LOGGING ----

type LogConfig struct {
	// File is the log file path. Empty logs to stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Debug      bool   `yaml:"debug"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Load reads and decodes the file at path. Unknown keys are an error. The result is
// neither validated nor normalized.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML document. An empty document is a zero Config.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
