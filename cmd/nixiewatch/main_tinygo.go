//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/motion"
)

// board wiring
const (
	pinAnode1   = machine.PA8
	pinAnode2   = machine.PA9
	pinDot      = machine.PA7
	pinHVEnable = machine.PA2
	pinCharge   = machine.PA1
	pinBattery  = machine.PA0
	pinMotion   = machine.PB4
)

var segmentPins = [nixiewatch.Segments]machine.Pin{
	machine.PA4,  // a
	machine.PA3,  // b
	machine.PB1,  // c
	machine.PA10, // d
	machine.PB3,  // e
	machine.PA5,  // f
	machine.PA6,  // g
}

// serialPort reads whatever the USB CDC endpoint has buffered without waiting.
type serialPort struct {
	s machine.Serialer
}

func (p serialPort) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) && p.s.Buffered() > 0 {
		c, err := p.s.ReadByte()
		if err != nil {
			return n, err
		}
		b[n] = c
		n++
	}
	return n, nil
}

func (p serialPort) Write(b []byte) (int, error) {
	return p.s.Write(b)
}

func output(p machine.Pin) machine.Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return p
}

// debugConsole enables debug lines on the serial console.
const debugConsole = false

// The board has no status LED, so Hardware.Status stays nil and Halt only prints,
// once per blink period.
func main() {
	settings := nixiewatch.DefaultSettings()
	w, err := nixiewatch.New(settings, nixiewatch.ConsoleLogger(debugConsole))
	if err != nil {
		nixiewatch.Halt(nil, err)
	}

	tubes := nixiewatch.Tubes{
		Anode1: output(pinAnode1),
		Anode2: output(pinAnode2),
		Dot:    output(pinDot),
		Enable: output(pinHVEnable),
	}
	for i, p := range segmentPins {
		tubes.Segments[i] = output(p)
	}

	pinCharge.Configure(machine.PinConfig{Mode: machine.PinInput})

	machine.InitADC()
	battery := machine.ADC{Pin: pinBattery}
	battery.Configure(machine.ADCConfig{})

	err = machine.I2C0.Configure(machine.I2CConfig{Frequency: 100 * machine.KHz})
	if err != nil {
		w.Halt(err)
	}
	sensor := motion.New(machine.I2C0, settings.Motion)
	if err := sensor.Configure(); err != nil {
		w.Halt(err)
	}

	err = w.Boot(nixiewatch.Hardware{
		Tubes:   tubes,
		Battery: battery,
		Charge:  pinCharge,
		Motion:  sensor,
		Serial:  serialPort{machine.Serial},
	})
	if err != nil {
		w.Halt(err)
	}

	pinMotion.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	err = pinMotion.SetInterrupt(machine.PinRising, func(machine.Pin) {
		w.Motion()
	})
	if err != nil {
		w.Halt(err)
	}

	go func() {
		for {
			if machine.Serial.Buffered() > 0 {
				w.Serial()
			}
			time.Sleep(time.Millisecond)
		}
	}()

	for range time.Tick(time.Second / time.Duration(settings.TicksPerSecond)) {
		w.Timer()
	}
}
