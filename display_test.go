package nixiewatch

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestEveryCodeRendersItsMask(t *testing.T) {
	masks := []uint8{
		0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F,
		0x00,
		0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F,
	}
	b := newBoard()
	d := NewDisplay(b.tubes())
	for code, want := range masks {
		d.SetDigit(0, DigitCode(code), DotOff)
		d.SetDigit(1, DigitCode(code), DotOff)
		d.Update()
		assert.Equal(t, b.mask(), want, "code %d", code)
		assert.Equal(t, d.Lines().Segments, want, "code %d", code)
	}
}

func TestCodeOutOfRangeIsBlank(t *testing.T) {
	assert.Equal(t, DigitCode(17).Mask(), uint8(0))
	assert.Equal(t, DigitCode(255).Mask(), uint8(0))
	assert.Equal(t, DigitCode(255).String(), "INVALID")
	assert.Equal(t, DigitGauge0.String(), "gauge0")
	assert.Equal(t, DigitCode(7).String(), "7")
}

func TestUpdateAlternatesTubes(t *testing.T) {
	b := newBoard()
	d := NewDisplay(b.tubes())
	d.SetDigit(0, 1, DotOff)
	d.SetDigit(1, 2, DotOff)

	d.Update()
	assert.Assert(t, !b.anode1.high)
	assert.Assert(t, b.anode2.high)
	assert.Equal(t, b.mask(), DigitCode(2).Mask())

	d.Update()
	assert.Assert(t, b.anode1.high)
	assert.Assert(t, !b.anode2.high)
	assert.Equal(t, b.mask(), DigitCode(1).Mask())
}

func TestDotFollowsSlot(t *testing.T) {
	testData := []struct {
		dot              DotSlot
		onTube1, onTube2 bool
	}{
		{DotOff, false, false},
		{DotDigit1, true, false},
		{DotDigit2, false, true},
	}
	for _, test := range testData {
		b := newBoard()
		d := NewDisplay(b.tubes())
		d.SetDigit(0, 4, test.dot)
		d.SetDigit(1, 2, test.dot)

		d.Update() // tube 2
		assert.Equal(t, b.dot.high, test.onTube2, "dot %v on tube 2", test.dot)
		d.Update() // tube 1
		assert.Equal(t, b.dot.high, test.onTube1, "dot %v on tube 1", test.dot)
	}
}

func TestSlotOtherThanZeroIsSlotOne(t *testing.T) {
	d := NewDisplay(Tubes{})
	d.SetDigit(5, 9, DotDigit2)
	assert.Equal(t, d.Digit(1), DigitCode(9))
	assert.Equal(t, d.Digit(0), DigitCode(3))
	assert.Equal(t, d.Dot(), DotDigit2)
}

func TestOffDropsEverything(t *testing.T) {
	b := newBoard()
	d := NewDisplay(b.tubes())
	d.Enable()
	d.SetDigit(0, 8, DotDigit1)
	d.Update()
	d.Update()
	assert.Assert(t, b.enable.high)
	assert.Assert(t, b.mask() != 0)

	d.Off()
	assert.Equal(t, b.mask(), uint8(0))
	assert.Assert(t, !b.anode1.high)
	assert.Assert(t, !b.anode2.high)
	assert.Assert(t, !b.dot.high)
	assert.Assert(t, !b.enable.high)
	assert.Equal(t, d.Lines(), Lines{})
}

func TestNilPinsAreSkipped(t *testing.T) {
	d := NewDisplay(Tubes{})
	d.Enable()
	d.Update()
	d.Off()
	assert.Equal(t, d.Lines().Enable, false)
}
