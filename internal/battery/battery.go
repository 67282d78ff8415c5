// Package battery turns raw analog samples of the cell voltage into the 0-255 charge level
// the clock displays.
package battery

// DefaultOffset is the 12-bit reading of a flat cell.
const DefaultOffset = 2050

// DefaultEmpty is the level below which the cell counts as empty.
const DefaultEmpty = 16

// Sampler is an analog input returning 16-bit scaled samples. machine.ADC satisfies it.
type Sampler interface {
	Get() uint16
}

// Level converts a 12-bit reading to a charge level. Readings at or below offset are 0;
// every 4 counts above it is one step, up to 255.
func Level(reading, offset uint16) uint8 {
	if reading <= offset {
		return 0
	}
	v := (reading - offset) / 4
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// To12 scales a 16-bit sample down to the converter's native 12 bits.
func To12(sample uint16) uint16 {
	return sample >> 4
}

// Gauge samples the battery input.
type Gauge struct {
	adc    Sampler
	offset uint16
	empty  uint8
	last   uint8
}

// NewGauge returns a gauge over adc. offset is the 12-bit reading of a flat cell and
// empty the level under which Empty reports true.
func NewGauge(adc Sampler, offset uint16, empty uint8) *Gauge {
	return &Gauge{adc: adc, offset: offset, empty: empty}
}

// Read takes a sample and returns the charge level.
func (g *Gauge) Read() uint8 {
	g.last = Level(To12(g.adc.Get()), g.offset)
	return g.last
}

// Last returns the level from the previous Read.
func (g *Gauge) Last() uint8 { return g.last }

// Empty reports whether level is below the gauge's empty threshold.
func (g *Gauge) Empty(level uint8) bool { return level < g.empty }
