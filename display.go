package nixiewatch

// Segments is the number of lines on the shared segment bus.
const Segments = 7

// Tubes holds the output lines of the two-tube display.
type Tubes struct {
	Anode1   Pin
	Anode2   Pin
	Segments [Segments]Pin
	Dot      Pin
	// Enable switches the high voltage supply for the whole bus.
	Enable Pin
}

// Lines is the last level driven onto every display line.
type Lines struct {
	Anode1   bool
	Anode2   bool
	Segments uint8 // bit n is segment line n
	Dot      bool
	Enable   bool
}

// Display multiplexes two logical digits onto two tubes sharing one segment bus. Only one
// tube is energized per Update; calling Update fast enough lights both through persistence
// of vision.
type Display struct {
	tubes Tubes
	lines Lines

	value [2]DigitCode
	dot   DotSlot
	phase uint8
}

// NewDisplay wraps the given lines. Nothing is driven until the first Update or Off.
func NewDisplay(t Tubes) *Display {
	return &Display{
		tubes: t,
		value: [2]DigitCode{3, 8},
	}
}

// SetDigit stores the pending code for slot 0 or 1 along with the dot position. Any slot
// other than 0 is treated as slot 1.
func (d *Display) SetDigit(slot uint8, code DigitCode, dot DotSlot) {
	if slot == 0 {
		d.value[0] = code
	} else {
		d.value[1] = code
	}
	d.dot = dot
}

// Digit returns the pending code for a slot.
func (d *Display) Digit(slot uint8) DigitCode {
	if slot == 0 {
		return d.value[0]
	}
	return d.value[1]
}

// Dot returns the pending dot position.
func (d *Display) Dot() DotSlot {
	return d.dot
}

// Update flips to the other tube and renders its pending digit.
func (d *Display) Update() {
	d.phase++
	if d.phase%2 == 0 {
		d.render(0)
	} else {
		d.render(1)
	}
}

func (d *Display) render(slot uint8) {
	// blank both tubes before touching the bus so the old pattern never ghosts onto
	// the tube being switched in
	d.set(d.tubes.Anode1, &d.lines.Anode1, false)
	d.set(d.tubes.Anode2, &d.lines.Anode2, false)
	d.set(d.tubes.Dot, &d.lines.Dot, false)

	d.drive(d.Digit(slot).Mask())

	if slot == 0 {
		d.set(d.tubes.Anode1, &d.lines.Anode1, true)
		if d.dot == DotDigit1 {
			d.set(d.tubes.Dot, &d.lines.Dot, true)
		}
	} else {
		d.set(d.tubes.Anode2, &d.lines.Anode2, true)
		if d.dot == DotDigit2 {
			d.set(d.tubes.Dot, &d.lines.Dot, true)
		}
	}
}

// Off drops every line, including the bus enable.
func (d *Display) Off() {
	d.set(d.tubes.Anode1, &d.lines.Anode1, false)
	d.set(d.tubes.Anode2, &d.lines.Anode2, false)
	d.set(d.tubes.Dot, &d.lines.Dot, false)
	d.set(d.tubes.Enable, &d.lines.Enable, false)
	d.drive(0)
}

// Enable switches on the bus supply.
func (d *Display) Enable() {
	d.set(d.tubes.Enable, &d.lines.Enable, true)
}

// Lines returns the levels last driven onto the hardware.
func (d *Display) Lines() Lines {
	return d.lines
}

func (d *Display) drive(mask uint8) {
	for i, p := range d.tubes.Segments {
		d.write(p, mask&(1<<i) != 0)
	}
	d.lines.Segments = mask
}

func (d *Display) set(p Pin, state *bool, high bool) {
	d.write(p, high)
	*state = high
}

func (d *Display) write(p Pin, high bool) {
	if p == nil {
		return
	}
	if high {
		p.High()
	} else {
		p.Low()
	}
}
