package nixiewatch

// Clock keeps wall time and decides, tick by tick, what the display shows. A display
// cycle is four quarters of one second each: hours, minutes, battery gauge, dark.
//
// Clock is not safe for concurrent use. It belongs to the timer context.
type Clock struct {
	display *Display
	tps     uint32

	currentTick uint32
	hours       uint8
	minutes     uint8
	seconds     uint8

	counter     uint32
	status      DisplayMode
	newStatus   DisplayMode
	chargeLevel uint8
	displaying  bool
}

// NewClock returns a clock driving display at ticksPerSecond ticks per second. The clock
// starts at 13:37 with the display dark.
func NewClock(display *Display, ticksPerSecond uint32) *Clock {
	if ticksPerSecond == 0 {
		ticksPerSecond = 1
	}
	return &Clock{
		display:     display,
		tps:         ticksPerSecond,
		hours:       13,
		minutes:     37,
		counter:     ticksPerSecond * 4,
		chargeLevel: 50,
	}
}

// TicksPerSecond returns the tick rate the clock was built with.
func (c *Clock) TicksPerSecond() uint32 { return c.tps }

// SetTime sets hours and minutes and restarts the current minute.
func (c *Clock) SetTime(hours, minutes uint8) {
	c.hours = hours
	c.minutes = minutes
	c.seconds = 0
	c.currentTick = 0
}

// Time returns the current hours and minutes.
func (c *Clock) Time() (hours, minutes uint8) {
	return c.hours, c.minutes
}

// Seconds returns the seconds of the current minute.
func (c *Clock) Seconds() uint8 { return c.seconds }

// ShowTime requests hours then minutes, starting on the next tick.
func (c *Clock) ShowTime() { c.newStatus = ModeTime }

// ShowCharge requests the battery gauge, starting on the next tick.
func (c *Clock) ShowCharge() { c.newStatus = ModeCharge }

// ShowEmpty requests the empty battery flasher, starting on the next tick.
func (c *Clock) ShowEmpty() { c.newStatus = ModeEmptyBattery }

// ShowTimeAndCharge requests hours, minutes and then the gauge, starting on the next tick.
func (c *Clock) ShowTimeAndCharge() { c.newStatus = ModeBoth }

// SetChargeLevel stores the latest battery level, 0 to 255.
func (c *Clock) SetChargeLevel(level uint8) { c.chargeLevel = level }

// ChargeLevel returns the last stored battery level.
func (c *Clock) ChargeLevel() uint8 { return c.chargeLevel }

// DisplayOn reports whether the last tick was inside a display cycle.
func (c *Clock) DisplayOn() bool { return c.displaying }

// Mode returns the mode of the cycle in progress.
func (c *Clock) Mode() DisplayMode { return c.status }

// Display returns the multiplexer owned by the clock.
func (c *Clock) Display() *Display { return c.display }

func (c *Clock) secondPassed() {
	c.seconds++
	if c.seconds < 60 {
		return
	}
	c.seconds = 0
	c.minutes++
	if c.minutes < 60 {
		return
	}
	c.minutes = 0
	c.hours++
	if c.hours >= 24 {
		c.hours = 0
	}
}

// ChargeValue maps a battery level onto the gauge codes.
func ChargeValue(level uint8) DigitCode {
	v := 10 + level/16
	if v > uint8(DigitGauge5) {
		v = uint8(DigitGauge5)
	}
	return DigitCode(v)
}

// Slice says which quarter of the display cycle a counter value falls in: 0 for hours,
// 1 for minutes, 2 for the gauge and 3 once the cycle is over.
func Slice(counter, ticksPerSecond uint32) int {
	switch {
	case counter <= ticksPerSecond:
		return 0
	case counter <= ticksPerSecond*2:
		return 1
	case counter <= ticksPerSecond*3:
		return 2
	default:
		return 3
	}
}

// Tick advances the clock by one timer period and paints the current slice.
func (c *Clock) Tick() {
	if c.currentTick >= c.tps-1 {
		c.secondPassed()
		c.currentTick = 0
	} else {
		c.currentTick++
	}

	if c.newStatus != ModeIdle {
		c.status = c.newStatus
		c.counter = 0
		c.newStatus = ModeIdle
	}

	if c.counter < c.tps*4 {
		c.counter++
		c.displaying = true
	} else {
		c.displaying = false
	}

	charge := ChargeValue(c.chargeLevel)

	switch Slice(c.counter, c.tps) {
	case 0:
		c.display.Enable()
		c.paint(c.hours, DotDigit1, charge)
		c.display.Update()
	case 1:
		c.display.Enable()
		c.paint(c.minutes, DotDigit2, charge)
		c.display.Update()
	case 2:
		if c.status == ModeBoth {
			c.display.Enable()
			c.display.SetDigit(0, charge, DotOff)
			c.display.SetDigit(1, charge, DotOff)
			c.display.Update()
		}
	default:
		c.display.Off()
		c.status = ModeIdle
	}
}

// paint stages the digits for an hours or minutes quarter.
func (c *Clock) paint(value uint8, dot DotSlot, charge DigitCode) {
	switch c.status {
	case ModeTime, ModeBoth:
		c.display.SetDigit(0, DigitCode(value/10), dot)
		c.display.SetDigit(1, DigitCode(value%10), dot)
	case ModeEmptyBattery:
		c.display.SetDigit(0, DigitBlank, dot)
		c.display.SetDigit(1, DigitBlank, dot)
	case ModeCharge:
		// The gauge goes on both tubes in every quarter, not only the charge quarter.
		// The charging display has no time to interleave, so this is intended.
		c.display.SetDigit(0, charge, DotOff)
		c.display.SetDigit(1, charge, DotOff)
	case ModeIdle:
		// keep whatever is staged
	}
}
