package nixiewatch

import (
	"testing"

	"gotest.tools/v3/assert"
)

const testTPS = 4

func newTestClock() (*Clock, *board) {
	b := newBoard()
	return NewClock(NewDisplay(b.tubes()), testTPS), b
}

func tickN(c *Clock, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestNewClockStartsDark(t *testing.T) {
	c, b := newTestClock()
	h, m := c.Time()
	assert.Equal(t, h, uint8(13))
	assert.Equal(t, m, uint8(37))
	assert.Equal(t, c.ChargeLevel(), uint8(50))

	c.Tick()
	assert.Assert(t, !c.DisplayOn())
	assert.Equal(t, c.Mode(), ModeIdle)
	assert.Assert(t, !b.enable.high)
}

func TestZeroTickRateIsOne(t *testing.T) {
	c := NewClock(NewDisplay(Tubes{}), 0)
	assert.Equal(t, c.TicksPerSecond(), uint32(1))
}

func TestSecondsAdvanceEveryTPSTicks(t *testing.T) {
	c, _ := newTestClock()
	c.SetTime(10, 0)
	tickN(c, testTPS-1)
	assert.Equal(t, c.Seconds(), uint8(0))
	c.Tick()
	assert.Equal(t, c.Seconds(), uint8(1))
}

func TestMidnightRollover(t *testing.T) {
	c, _ := newTestClock()
	c.SetTime(23, 59)
	tickN(c, 59*testTPS)
	assert.Equal(t, c.Seconds(), uint8(59))

	tickN(c, testTPS)
	h, m := c.Time()
	assert.Equal(t, h, uint8(0))
	assert.Equal(t, m, uint8(0))
	assert.Equal(t, c.Seconds(), uint8(0))
}

func TestFullDayStaysInRange(t *testing.T) {
	c := NewClock(NewDisplay(Tubes{}), 1)
	c.SetTime(0, 0)
	for i := 0; i < 24*60*60; i++ {
		c.Tick()
		h, m := c.Time()
		if h >= 24 || m >= 60 || c.Seconds() >= 60 {
			t.Fatalf("out of range after %d ticks: %02d:%02d:%02d", i, h, m, c.Seconds())
		}
	}
	h, m := c.Time()
	assert.Equal(t, h, uint8(0))
	assert.Equal(t, m, uint8(0))
}

func TestSetTimeRestartsMinute(t *testing.T) {
	c, _ := newTestClock()
	tickN(c, 10*testTPS+2)
	assert.Equal(t, c.Seconds(), uint8(10))
	c.SetTime(8, 15)
	assert.Equal(t, c.Seconds(), uint8(0))
	tickN(c, testTPS-1)
	assert.Equal(t, c.Seconds(), uint8(0))
}

func TestSlice(t *testing.T) {
	testData := []struct {
		counter uint32
		want    int
	}{
		{0, 0},
		{1, 0},
		{4, 0},
		{5, 1},
		{8, 1},
		{9, 2},
		{12, 2},
		{13, 3},
		{16, 3},
	}
	for _, test := range testData {
		if got := Slice(test.counter, testTPS); got != test.want {
			t.Errorf("Slice(%d, %d):\n  got: %d\n want: %d", test.counter, testTPS, got, test.want)
		}
	}
}

func TestChargeValue(t *testing.T) {
	testData := []struct {
		level uint8
		want  DigitCode
	}{
		{0, 10},
		{15, 10},
		{16, 11},
		{95, 15},
		{96, 16},
		{200, 16},
		{255, 16},
	}
	for _, test := range testData {
		if got := ChargeValue(test.level); got != test.want {
			t.Errorf("ChargeValue(%d):\n  got: %d\n want: %d", test.level, got, test.want)
		}
	}
}

func TestShowTakesEffectOnNextTick(t *testing.T) {
	c, _ := newTestClock()
	c.ShowTime()
	assert.Equal(t, c.Mode(), ModeIdle)
	c.Tick()
	assert.Equal(t, c.Mode(), ModeTime)
	assert.Assert(t, c.DisplayOn())
}

func TestTimeCycle(t *testing.T) {
	c, b := newTestClock()
	c.SetTime(12, 34)
	c.ShowTime()

	c.Tick()
	assert.Assert(t, b.enable.high)
	assert.Equal(t, c.Display().Digit(0), DigitCode(1))
	assert.Equal(t, c.Display().Digit(1), DigitCode(2))
	assert.Equal(t, c.Display().Dot(), DotDigit1)

	tickN(c, testTPS)
	assert.Equal(t, c.Display().Digit(0), DigitCode(3))
	assert.Equal(t, c.Display().Digit(1), DigitCode(4))
	assert.Equal(t, c.Display().Dot(), DotDigit2)

	// third quarter is dark for time only
	tickN(c, testTPS)
	assert.Equal(t, c.Mode(), ModeTime)
	assert.Equal(t, c.Display().Digit(0), DigitCode(3))

	tickN(c, testTPS)
	assert.Equal(t, c.Mode(), ModeIdle)
	assert.Assert(t, !b.enable.high)
	assert.Equal(t, b.mask(), uint8(0))

	// stays dark once the cycle is spent
	tickN(c, 10*testTPS)
	assert.Assert(t, !c.DisplayOn())
	assert.Assert(t, !b.enable.high)
}

func TestBothCycleEndsOnGauge(t *testing.T) {
	c, _ := newTestClock()
	c.SetTime(9, 5)
	c.SetChargeLevel(40)
	c.ShowTimeAndCharge()

	c.Tick()
	assert.Equal(t, c.Display().Digit(0), DigitCode(0))
	assert.Equal(t, c.Display().Digit(1), DigitCode(9))
	tickN(c, testTPS)
	assert.Equal(t, c.Display().Digit(0), DigitCode(0))
	assert.Equal(t, c.Display().Digit(1), DigitCode(5))

	tickN(c, testTPS)
	assert.Equal(t, c.Display().Digit(0), ChargeValue(40))
	assert.Equal(t, c.Display().Digit(1), ChargeValue(40))
	assert.Equal(t, c.Display().Dot(), DotOff)
}

func TestChargeCycleShowsGauge(t *testing.T) {
	c, b := newTestClock()
	c.SetChargeLevel(255)
	c.ShowCharge()

	for q := 0; q < 2; q++ {
		tickN(c, testTPS)
		assert.Equal(t, c.Display().Digit(0), DigitGauge5)
		assert.Equal(t, c.Display().Digit(1), DigitGauge5)
		assert.Equal(t, c.Display().Dot(), DotOff)
		assert.Assert(t, b.enable.high)
	}
}

func TestEmptyCycleWalksDot(t *testing.T) {
	c, _ := newTestClock()
	c.SetChargeLevel(3)
	c.ShowEmpty()

	c.Tick()
	assert.Equal(t, c.Mode(), ModeEmptyBattery)
	assert.Equal(t, c.Display().Digit(0), DigitBlank)
	assert.Equal(t, c.Display().Digit(1), DigitBlank)
	assert.Equal(t, c.Display().Dot(), DotDigit1)

	tickN(c, testTPS)
	assert.Equal(t, c.Display().Dot(), DotDigit2)
}

func TestNewRequestRestartsCycle(t *testing.T) {
	c, _ := newTestClock()
	c.ShowTime()
	tickN(c, 2*testTPS+1)
	c.ShowCharge()
	c.Tick()
	assert.Equal(t, c.Mode(), ModeCharge)
	assert.Equal(t, c.Display().Digit(0), ChargeValue(c.ChargeLevel()))
}
