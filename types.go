package nixiewatch

// DigitCode selects a glyph on a tube. 0-9 are decimal digits, DigitBlank turns every
// segment off and DigitGauge0 through DigitGauge5 are the steps of the battery pictogram.
type DigitCode uint8

const (
	DigitBlank DigitCode = 10

	DigitGauge0 DigitCode = 11
	DigitGauge5 DigitCode = 16
)

// segmentMasks maps a DigitCode to the bit pattern for segment lines a through g.
var segmentMasks = [17]uint8{
	0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F, // 0-9
	0x00,                               // blank
	0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, // gauge
}

// Mask returns the segment pattern for the code. Codes outside the table render blank.
func (c DigitCode) Mask() uint8 {
	if int(c) >= len(segmentMasks) {
		return 0
	}
	return segmentMasks[c]
}

func (c DigitCode) String() string {
	switch {
	case c <= 9:
		return string(rune('0' + c))
	case c == DigitBlank:
		return "blank"
	case c <= DigitGauge5:
		return "gauge" + string(rune('0'+c-DigitGauge0))
	default:
		return "INVALID"
	}
}

// DotSlot says which tube lights its decimal point.
type DotSlot uint8

const (
	DotOff DotSlot = iota
	DotDigit1
	DotDigit2
)

func (d DotSlot) String() string {
	switch d {
	case DotOff:
		return "off"
	case DotDigit1:
		return "digit1"
	case DotDigit2:
		return "digit2"
	default:
		return "INVALID"
	}
}

// DisplayMode is the content class the clock is showing or has been asked to show next.
type DisplayMode uint8

const (
	ModeIdle DisplayMode = iota
	ModeTime
	ModeCharge
	// ModeBoth shows hours, minutes and then the battery gauge.
	ModeBoth
	// ModeEmptyBattery flashes blank tubes with the dot walking across them.
	ModeEmptyBattery
)

func (m DisplayMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTime:
		return "time"
	case ModeCharge:
		return "charge"
	case ModeBoth:
		return "both"
	case ModeEmptyBattery:
		return "empty"
	default:
		return "INVALID"
	}
}

// Pin is a digital output line. machine.Pin satisfies it.
type Pin interface {
	Low()
	High()
}

// InputPin is a digital input line. machine.Pin satisfies it.
type InputPin interface {
	Get() bool
}

// ADC is an analog input returning samples scaled to 16 bits, as machine.ADC does.
type ADC interface {
	Get() uint16
}

// MotionSensor reports whether the sensor latched a motion event since the last query.
type MotionSensor interface {
	MotionDetected() (bool, error)
}
