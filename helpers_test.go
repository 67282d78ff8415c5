package nixiewatch

// pin records the level last driven onto it.
type pin struct {
	high   bool
	writes int
}

func (p *pin) High() { p.high = true; p.writes++ }
func (p *pin) Low()  { p.high = false; p.writes++ }

type board struct {
	anode1, anode2, dot, enable *pin
	segments                    [Segments]*pin
}

func newBoard() *board {
	b := &board{anode1: &pin{}, anode2: &pin{}, dot: &pin{}, enable: &pin{}}
	for i := range b.segments {
		b.segments[i] = &pin{}
	}
	return b
}

func (b *board) tubes() Tubes {
	t := Tubes{Anode1: b.anode1, Anode2: b.anode2, Dot: b.dot, Enable: b.enable}
	for i, p := range b.segments {
		t.Segments[i] = p
	}
	return t
}

// mask reads the segment bus back as a bit pattern.
func (b *board) mask() uint8 {
	var m uint8
	for i, p := range b.segments {
		if p.high {
			m |= 1 << i
		}
	}
	return m
}
