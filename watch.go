package nixiewatch

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fopscorp/nixiewatch/internal/battery"
	"github.com/fopscorp/nixiewatch/internal/bridge"
	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// Hardware is everything the board hands over at boot. Each handle ends up owned by
// exactly one interrupt context.
type Hardware struct {
	Tubes Tubes
	// Battery samples the cell voltage.
	Battery ADC
	// Charge is high once the charger reports a full cell.
	Charge InputPin
	Motion MotionSensor
	Serial serialproto.Port
	// Status is an optional indicator LED used for boot blinks and fatal errors.
	Status Pin
}

// Watch ties the clock, the battery gauge, the motion sensor and the serial link to their
// interrupt contexts.
//
// Boot runs once in the background context. After that Timer, Motion and Serial are the
// interrupt bodies; they may preempt each other in priority order but never run
// concurrently with themselves.
type Watch struct {
	settings Settings
	log      Logger
	status   Pin
	booted   bool

	clockSlot  *bridge.Slot[*Clock]
	gaugeSlot  *bridge.Slot[*battery.Gauge]
	chargeSlot *bridge.Slot[InputPin]
	sensorSlot *bridge.Slot[MotionSensor]
	serialSlot *bridge.Slot[*serialproto.Handler]

	// timer context
	clock  bridge.Local[*Clock]
	gauge  bridge.Local[*battery.Gauge]
	charge bridge.Local[InputPin]
	poll   uint32

	// motion context
	sensor bridge.Local[MotionSensor]

	// serial context
	serial bridge.Local[*serialproto.Handler]

	moved   bridge.Flag
	current bridge.TimeCell
	pending bridge.TimeCell

	// published by the timer context for observers
	mode  atomic.Uint32
	level atomic.Uint32
	ticks atomic.Uint32
}

// New returns an unbooted watch. A nil logger logs to the console.
func New(s Settings, log Logger) (*Watch, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = ConsoleLogger(false)
	}
	return &Watch{
		settings:   s,
		log:        log,
		clockSlot:  bridge.NewSlot[*Clock]("clock"),
		gaugeSlot:  bridge.NewSlot[*battery.Gauge]("battery"),
		chargeSlot: bridge.NewSlot[InputPin]("charge pin"),
		sensorSlot: bridge.NewSlot[MotionSensor]("motion sensor"),
		serialSlot: bridge.NewSlot[*serialproto.Handler]("serial"),
	}, nil
}

// Settings returns the settings the watch was built with.
func (w *Watch) Settings() Settings { return w.settings }

// Boot builds the clock and stages every handle for its owning context. It must be called
// once, before any interrupt is enabled.
func (w *Watch) Boot(hw Hardware) error {
	if w.booted {
		return errors.New("already booted")
	}
	if hw.Tubes.Anode1 == nil || hw.Tubes.Anode2 == nil {
		return errors.New("must provide both tube anodes")
	}
	for _, p := range hw.Tubes.Segments {
		if p == nil {
			return errors.New("must provide every segment line")
		}
	}
	if hw.Battery == nil {
		return errors.New("must provide battery input")
	}
	if hw.Charge == nil {
		return errors.New("must provide charge status input")
	}
	if hw.Motion == nil {
		return errors.New("must provide motion sensor")
	}
	if hw.Serial == nil {
		return errors.New("must provide serial port")
	}

	w.status = hw.Status
	w.blink()

	id := w.settings.Identity
	w.log.Infof("%s %s (%s) %04x:%04x", id.Manufacturer, id.Product, id.Serial, id.VendorID, id.ProductID)
	w.log.Debugf("%d ticks/s, wake poll every %d ticks", w.settings.TicksPerSecond, w.settings.WakePoll+1)
	w.log.Debugf("battery offset %d, empty below %d", w.settings.BatteryOffset, w.settings.EmptyLevel)

	display := NewDisplay(hw.Tubes)
	display.Off()
	clock := NewClock(display, w.settings.TicksPerSecond)
	clock.SetTime(w.settings.StartHours, w.settings.StartMinutes)
	w.current.Publish(clock.Time())
	w.level.Store(uint32(clock.ChargeLevel()))

	w.clockSlot.Stage(bridge.ContextTimer, clock)
	w.gaugeSlot.Stage(bridge.ContextTimer, battery.NewGauge(hw.Battery, w.settings.BatteryOffset, w.settings.EmptyLevel))
	w.chargeSlot.Stage(bridge.ContextTimer, hw.Charge)
	w.sensorSlot.Stage(bridge.ContextMotion, hw.Motion)
	w.serialSlot.Stage(bridge.ContextSerial, serialproto.NewHandler(hw.Serial))

	w.booted = true
	w.blink()
	w.log.Info("boot complete")
	return nil
}

// Timer is the body of the periodic timer interrupt.
func (w *Watch) Timer() {
	clock := w.clock.Get(w.clockSlot, bridge.ContextTimer)
	gauge := w.gauge.Get(w.gaugeSlot, bridge.ContextTimer)
	charge := w.charge.Get(w.chargeSlot, bridge.ContextTimer)

	clock.Tick()

	if h, m, ok := w.pending.Take(); ok {
		clock.SetTime(h, m)
	}
	w.current.Publish(clock.Time())

	level := gauge.Read()
	clock.SetChargeLevel(level)

	w.poll++
	if w.poll > w.settings.WakePoll {
		w.poll = 0
		if w.moved.Take() {
			if gauge.Empty(level) {
				clock.ShowEmpty()
			} else {
				clock.ShowTimeAndCharge()
			}
		} else if charge.Get() {
			clock.ShowCharge()
		}
	}

	w.mode.Store(uint32(clock.Mode()))
	w.level.Store(uint32(level))
	w.ticks.Add(1)
}

// Motion is the body of the motion line interrupt. Bus errors are dropped; the next edge
// reads the sensor again.
func (w *Watch) Motion() {
	sensor := w.sensor.Get(w.sensorSlot, bridge.ContextMotion)
	if moved, err := sensor.MotionDetected(); err == nil && moved {
		w.moved.Raise()
	}
}

// Serial is the body of the serial receive interrupt.
func (w *Watch) Serial() {
	handler := w.serial.Get(w.serialSlot, bridge.ContextSerial)
	h, m, _ := w.current.Load()
	if nh, nm, set := handler.Handle(h, m); set {
		w.pending.Request(nh, nm)
	}
}

// Time returns the time last published by the timer context.
func (w *Watch) Time() (hours, minutes uint8) {
	h, m, _ := w.current.Load()
	return h, m
}

// Mode returns the display mode at the end of the last tick.
func (w *Watch) Mode() DisplayMode { return DisplayMode(w.mode.Load()) }

// ChargeLevel returns the battery level read on the last tick.
func (w *Watch) ChargeLevel() uint8 { return uint8(w.level.Load()) }

// Ticks returns how many timer ticks have run.
func (w *Watch) Ticks() uint32 { return w.ticks.Load() }

// MotionPending reports whether a motion event is waiting for the next wake poll.
func (w *Watch) MotionPending() bool { return w.moved.Peek() }

// Halt reports a fatal bring-up error and never returns. There is no recovering from a
// runtime panic on the board, so this is used for errors we detect ourselves.
func (w *Watch) Halt(v any) {
	Halt(w.status, v)
}

// Halt prints v and blinks status forever.
func Halt(status Pin, v any) {
	msg := fmt.Sprint(v)
	for {
		printLine(logPrefix + "halt: " + msg)
		blink(status)
	}
}

func (w *Watch) blink() {
	blink(w.status)
}

// sleep is swapped out by tests.
var sleep = time.Sleep

// blink takes 200ms whether or not there is a pin, so Halt never spins.
func blink(p Pin) {
	statusOn(p)
	sleep(100 * time.Millisecond)
	statusOff(p)
	sleep(100 * time.Millisecond)
}

func statusOn(p Pin) {
	if p != nil {
		p.High()
	}
}

func statusOff(p Pin) {
	if p != nil {
		p.Low()
	}
}
