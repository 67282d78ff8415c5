package battery

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestLevel(t *testing.T) {
	testData := []struct {
		reading uint16
		want    uint8
	}{
		{0, 0},
		{2000, 0},
		{2050, 0},
		{2053, 0},
		{2054, 1},
		{2050 + 4*100, 100},
		{2050 + 4*255, 255},
		{4095, 255},
	}
	for _, test := range testData {
		if got := Level(test.reading, DefaultOffset); got != test.want {
			t.Errorf("Level(%d):\n  got: %d\n want: %d", test.reading, got, test.want)
		}
	}
}

type fixedADC uint16

func (a fixedADC) Get() uint16 { return uint16(a) }

func TestGaugeRead(t *testing.T) {
	// 2450 in 12 bits, scaled up the way machine.ADC reports it
	g := NewGauge(fixedADC(2450<<4), DefaultOffset, DefaultEmpty)
	assert.Equal(t, g.Read(), uint8(100))
	assert.Equal(t, g.Last(), uint8(100))
	assert.Assert(t, !g.Empty(g.Last()))
	assert.Assert(t, g.Empty(15))
	assert.Assert(t, !g.Empty(16))
}
