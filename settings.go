package nixiewatch

import (
	"errors"
	"math"

	"github.com/fopscorp/nixiewatch/internal/battery"
	"github.com/fopscorp/nixiewatch/internal/motion"
)

// Identity is the USB device descriptor the watch enumerates with.
type Identity struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Serial       string
}

// Settings are the fixed parameters of a watch build.
type Settings struct {
	// TicksPerSecond is the timer interrupt rate. One display quarter lasts this many ticks.
	TicksPerSecond uint32
	// WakePoll is how many ticks pass between checks of the motion flag and charge pin,
	// not counting the check itself.
	WakePoll uint32

	// BatteryOffset is the 12-bit reading of a flat cell.
	BatteryOffset uint16
	// EmptyLevel is the charge level under which a wake shows the empty flasher.
	EmptyLevel uint8

	StartHours   uint8
	StartMinutes uint8

	Motion   motion.Config
	Identity Identity
}

// DefaultSettings returns the settings of the reference board.
func DefaultSettings() Settings {
	return Settings{
		TicksPerSecond: 200,
		WakePoll:       50,
		BatteryOffset:  battery.DefaultOffset,
		EmptyLevel:     battery.DefaultEmpty,
		StartHours:     13,
		StartMinutes:   37,
		Motion:         motion.DefaultConfig,
		Identity: Identity{
			VendorID:     0x16c0,
			ProductID:    0x27dd,
			Manufacturer: "FopsCorp",
			Product:      "Nixie watch",
			Serial:       "E621",
		},
	}
}

// Validate reports the first setting that cannot work.
func (s Settings) Validate() error {
	if s.TicksPerSecond == 0 {
		return errors.New("must run at least one tick per second")
	}
	// four quarters must fit the cycle counter
	if s.TicksPerSecond > math.MaxUint32/4 {
		return errors.New("tick rate too high")
	}
	if s.WakePoll == 0 {
		return errors.New("wake poll must be at least one tick")
	}
	if s.BatteryOffset > 4095 {
		return errors.New("battery offset beyond 12 bits")
	}
	if s.StartHours >= 24 || s.StartMinutes >= 60 {
		return errors.New("start time out of range")
	}
	return nil
}
