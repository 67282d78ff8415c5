package preview

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Scaled presents a coarse logical grid on top of a finer display. Every logical pixel
// becomes a factor x factor block.
type Scaled struct {
	d      drivers.Displayer
	factor int16
	w, h   int16
}

// NewScaled wraps d. A factor below 1 is treated as 1.
func NewScaled(d drivers.Displayer, factor int16) *Scaled {
	if factor < 1 {
		factor = 1
	}
	w, h := d.Size()
	return &Scaled{
		d:      d,
		factor: factor,
		w:      w / factor,
		h:      h / factor,
	}
}

func (s *Scaled) Size() (x, y int16) {
	return s.w, s.h
}

func (s *Scaled) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	for dx := int16(0); dx < s.factor; dx++ {
		for dy := int16(0); dy < s.factor; dy++ {
			s.d.SetPixel(x*s.factor+dx, y*s.factor+dy, c)
		}
	}
}

func (s *Scaled) Display() error {
	return s.d.Display()
}
