package hostsim

import (
	"sync"
	"sync/atomic"

	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// line is an output pin that remembers its level.
type line struct {
	high bool
}

func (l *line) High() { l.high = true }
func (l *line) Low()  { l.high = false }

// tubes is the virtual display wiring.
type tubes struct {
	anode1, anode2, dot, enable line
	segments                    [nixiewatch.Segments]line
}

func (t *tubes) wiring() nixiewatch.Tubes {
	w := nixiewatch.Tubes{
		Anode1: &t.anode1,
		Anode2: &t.anode2,
		Dot:    &t.dot,
		Enable: &t.enable,
	}
	for i := range t.segments {
		w.Segments[i] = &t.segments[i]
	}
	return w
}

func (t *tubes) mask() uint8 {
	var m uint8
	for i := range t.segments {
		if t.segments[i].high {
			m |= 1 << i
		}
	}
	return m
}

// analog is a battery input holding a 12-bit reading.
type analog struct {
	reading atomic.Uint32
}

// Get returns the reading scaled to 16 bits.
func (a *analog) Get() uint16 { return uint16(a.reading.Load() << 4) }

type input struct {
	high atomic.Bool
}

func (i *input) Get() bool { return i.high.Load() }

// latch is a motion sensor whose interrupt status is set by Shake.
type latch struct {
	moved atomic.Bool
}

func (l *latch) MotionDetected() (bool, error) { return l.moved.Swap(false), nil }

// port is the device end of the virtual serial link.
type port struct {
	mu  sync.Mutex
	in  []byte
	out func([]byte)
}

func (p *port) push(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in = append(p.in, b...)
}

func (p *port) pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.in) > 0
}

// peek returns a copy of what the next Read would return.
func (p *port) peek() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.in)
	if n > serialproto.MaxRequest {
		n = serialproto.MaxRequest
	}
	return append([]byte(nil), p.in[:n]...)
}

func (p *port) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(b, p.in)
	p.in = p.in[n:]
	return n, nil
}

func (p *port) Write(b []byte) (int, error) {
	if p.out != nil {
		p.out(b)
	}
	return len(b), nil
}
