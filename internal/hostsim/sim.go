// Package hostsim runs the watch firmware on a virtual board, for development without
// hardware.
//
// Each interrupt context of the board becomes a serialized entry point: Step for the
// timer, Shake for the motion line and Receive for the serial link. Run drives Step from
// a ticker at the configured tick rate.
package hostsim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/preview"
	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// DefaultMotionPoll is how often a real motion sensor is polled, standing in for its
// interrupt line.
const DefaultMotionPoll = 50 * time.Millisecond

// Options configure a Sim.
type Options struct {
	Settings nixiewatch.Settings
	Logger   nixiewatch.Logger
	// Clock drives Run. Nil uses the real clock.
	Clock clockwork.Clock

	// BatteryReading is the initial 12-bit battery input.
	BatteryReading uint16
	ChargeComplete bool

	// Sensor replaces the virtual motion sensor, e.g. with a real one on an I2C bus. It
	// is polled every MotionPoll.
	Sensor     nixiewatch.MotionSensor
	MotionPoll time.Duration

	PreviewScale int
	// Output receives everything the watch sends over serial.
	Output io.Writer
}

// Sim is a watch on a virtual board.
type Sim struct {
	watch   *nixiewatch.Watch
	log     nixiewatch.Logger
	clock   clockwork.Clock
	tps     uint32
	metrics *metrics
	preview *preview.Renderer

	tubes   tubes
	battery analog
	charge  input
	latch   latch
	port    port

	sensor     nixiewatch.MotionSensor
	motionPoll time.Duration

	// one per interrupt context
	timerMu  sync.Mutex
	motionMu sync.Mutex
	serialMu sync.Mutex

	frame preview.Frame
}

// New builds and boots a simulated watch.
func New(opts Options) (*Sim, error) {
	if opts.Logger == nil {
		opts.Logger = nixiewatch.NopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.MotionPoll <= 0 {
		opts.MotionPoll = DefaultMotionPoll
	}

	w, err := nixiewatch.New(opts.Settings, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("new watch: %w", err)
	}

	pv, err := preview.New(opts.PreviewScale)
	if err != nil {
		return nil, fmt.Errorf("new preview: %w", err)
	}

	s := &Sim{
		watch:      w,
		log:        opts.Logger,
		clock:      opts.Clock,
		tps:        opts.Settings.TicksPerSecond,
		metrics:    newMetrics(opts.Settings.Identity),
		preview:    pv,
		sensor:     opts.Sensor,
		motionPoll: opts.MotionPoll,
	}
	s.battery.reading.Store(uint32(opts.BatteryReading))
	s.charge.high.Store(opts.ChargeComplete)
	if out := opts.Output; out != nil {
		s.port.out = func(b []byte) { _, _ = out.Write(b) }
	}

	hw := nixiewatch.Hardware{
		Tubes:   s.tubes.wiring(),
		Battery: &s.battery,
		Charge:  &s.charge,
		Motion:  &s.latch,
		Serial:  &s.port,
	}
	if s.sensor != nil {
		hw.Motion = s.sensor
	}
	if err := w.Boot(hw); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	if err := s.preview.Draw(s.frame); err != nil {
		return nil, fmt.Errorf("draw preview: %w", err)
	}
	return s, nil
}

// Watch returns the simulated watch.
func (s *Sim) Watch() *nixiewatch.Watch { return s.watch }

// Run ticks the watch until ctx is done. A real motion sensor is polled alongside.
func (s *Sim) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(time.Second / time.Duration(s.tps))
	defer ticker.Stop()

	var poll <-chan time.Time
	if s.sensor != nil {
		pt := s.clock.NewTicker(s.motionPoll)
		defer pt.Stop()
		poll = pt.Chan()
	}

	s.log.Infof("simulating %d ticks/s", s.tps)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			s.Step()
		case <-poll:
			s.motion()
		}
	}
}

// Step runs the timer interrupt once and refreshes the preview and metrics.
func (s *Sim) Step() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	s.watch.Timer()
	s.metrics.ticks.Inc()

	f := s.sample()
	s.metrics.observe(s.watch, f.Lit)
	if f != s.frame {
		s.frame = f
		if err := s.preview.Draw(f); err != nil {
			s.log.Infof("draw preview: %v", err)
		}
	}
}

// sample reads the tube lines into a frame. A tube keeps the pattern it showed when it
// was last energized.
func (s *Sim) sample() preview.Frame {
	f := s.frame
	f.Lit = s.tubes.enable.high
	switch {
	case s.tubes.anode1.high:
		f.Masks[0] = s.tubes.mask()
		f.Dots[0] = s.tubes.dot.high
	case s.tubes.anode2.high:
		f.Masks[1] = s.tubes.mask()
		f.Dots[1] = s.tubes.dot.high
	}
	h, m := s.watch.Time()
	f.Label = fmt.Sprintf("%02d:%02d\n%s %d", h, m, s.watch.Mode(), s.watch.ChargeLevel())
	return f
}

// Shake latches a motion event in the virtual sensor and runs the motion interrupt.
func (s *Sim) Shake() {
	s.latch.moved.Store(true)
	s.motion()
}

func (s *Sim) motion() {
	s.motionMu.Lock()
	defer s.motionMu.Unlock()
	was := s.watch.MotionPending()
	s.watch.Motion()
	if !was && s.watch.MotionPending() {
		s.metrics.motionEvents.Inc()
	}
}

// Receive delivers bytes from the host and runs the serial interrupt until they are
// consumed, one buffer of at most serialproto.MaxRequest bytes per run.
func (s *Sim) Receive(b []byte) {
	if len(b) == 0 {
		return
	}
	s.serialMu.Lock()
	defer s.serialMu.Unlock()

	s.port.push(b)
	for s.port.pending() {
		h, m := s.watch.Time()
		if serialproto.Parse(s.port.peek(), h, m).Set {
			s.metrics.timeSets.Inc()
		}
		s.metrics.serialRequests.Inc()
		s.watch.Serial()
	}
}

// SetBattery sets the 12-bit battery reading.
func (s *Sim) SetBattery(reading uint16) {
	s.battery.reading.Store(uint32(reading))
}

// SetChargeComplete sets the charger status input.
func (s *Sim) SetChargeComplete(full bool) {
	s.charge.high.Store(full)
}

// Frame returns the tube state last drawn.
func (s *Sim) Frame() preview.Frame { return s.preview.Last() }

// MetricsHandler serves the simulator metrics.
func (s *Sim) MetricsHandler() http.Handler { return s.metrics.handler() }

// ServeHTTP serves the current tube picture as a BMP.
func (s *Sim) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Add("content-type", "image/bmp")
	w.WriteHeader(http.StatusOK)
	if err := s.preview.WriteBMP(w); err != nil {
		s.log.Infof("encoding preview: %v", err)
	}
}
