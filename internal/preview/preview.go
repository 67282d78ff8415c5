// Package preview draws the state of the two tubes as an image, for the simulator.
package preview

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"sync"

	"github.com/ajanata/textbuf"
	"golang.org/x/image/bmp"
	"tinygo.org/x/drivers"
)

// Frame is what the tubes show, as last energized.
type Frame struct {
	// Masks holds the segment pattern per tube, bit n for segment line n.
	Masks [2]uint8
	Dots  [2]bool
	// Lit is false while the high voltage supply is off.
	Lit bool
	// Label is printed under the tubes, one text row per line.
	Label string
}

var (
	glow   = color.RGBA{0xFF, 0x78, 0x00, 0xFF}
	cold   = color.RGBA{0x2A, 0x12, 0x08, 0xFF}
	black  = color.RGBA{A: 0xFF}
	legend = color.RGBA{0xA0, 0xA0, 0xA0, 0xFF}
)

// Logical grid of one tube.
const (
	tubeW   = 16
	tubeH   = 20
	margin  = 2
	gridW   = margin + 2*tubeW
	gridH   = tubeH + 2*margin
	labelH  = 16
	dotSize = 2
)

type rect struct{ x0, y0, x1, y1 int16 }

// segmentRects are segments a to g of a tube, in logical pixels.
var segmentRects = [7]rect{
	{2, 0, 10, 2},    // a
	{10, 2, 12, 9},   // b
	{10, 11, 12, 18}, // c
	{2, 18, 10, 20},  // d
	{0, 11, 2, 18},   // e
	{0, 2, 2, 9},     // f
	{2, 9, 10, 11},   // g
}

var dotRect = rect{13, 18, 13 + dotSize, 20}

// Renderer keeps the latest picture of the tubes. It is safe for concurrent use.
type Renderer struct {
	mu     sync.Mutex
	canvas *Canvas
	tubes  drivers.Displayer
	text   *textbuf.Buffer
	rows   int16
	last   Frame
}

// New returns a renderer enlarging the tube grid by scale.
func New(scale int) (*Renderer, error) {
	if scale < 1 {
		scale = 1
	}
	c := NewCanvas(gridW*scale, gridH*scale+labelH)
	strip := &labelStrip{canvas: c, top: int16(gridH * scale), w: int16(gridW * scale), h: labelH}
	text, err := textbuf.New(strip, textbuf.FontSize6x8)
	if err != nil {
		return nil, fmt.Errorf("label text buffer: %w", err)
	}
	_, rows := text.Size()
	return &Renderer{
		canvas: c,
		tubes:  NewScaled(c, int16(scale)),
		text:   text,
		rows:   rows,
	}, nil
}

// Draw repaints the picture for f.
func (r *Renderer) Draw(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.canvas.Fill(black)
	for tube := 0; tube < 2; tube++ {
		ox := int16(margin + tube*tubeW)
		for seg, rc := range segmentRects {
			on := f.Lit && f.Masks[tube]&(1<<seg) != 0
			r.fill(ox, rc, on)
		}
		r.fill(ox, dotRect, f.Lit && f.Dots[tube])
	}
	if err := r.label(f.Label); err != nil {
		return err
	}
	r.last = f
	return r.tubes.Display()
}

func (r *Renderer) fill(ox int16, rc rect, on bool) {
	c := cold
	if on {
		c = glow
	}
	for x := rc.x0; x < rc.x1; x++ {
		for y := rc.y0; y < rc.y1; y++ {
			r.tubes.SetPixel(ox+x, margin+y, c)
		}
	}
}

// label reprints every row, since Fill wiped the strip.
func (r *Renderer) label(s string) error {
	lines := strings.Split(s, "\n")
	for i := int16(0); i < r.rows; i++ {
		line := ""
		if int(i) < len(lines) {
			line = lines[i]
		}
		if err := r.text.SetLine(i, line); err != nil {
			return fmt.Errorf("label line %d: %w", i, err)
		}
	}
	return nil
}

// labelStrip is the band of the canvas below the tubes, as seen by the text buffer.
// Any pixel the font lights shows in the legend colour.
type labelStrip struct {
	canvas *Canvas
	top    int16
	w, h   int16
}

func (l *labelStrip) Size() (x, y int16) {
	return l.w, l.h
}

func (l *labelStrip) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return
	}
	px := black
	if c != (color.RGBA{}) {
		px = legend
	}
	l.canvas.SetPixel(x, l.top+y, px)
}

// Display is a no-op; the renderer flushes the canvas once per frame.
func (l *labelStrip) Display() error {
	return nil
}

// Last returns the frame drawn most recently.
func (r *Renderer) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Frames returns how many frames were drawn.
func (r *Renderer) Frames() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canvas.Frames()
}

// At returns the colour of a pixel of the picture.
func (r *Renderer) At(x, y int) color.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canvas.Image().RGBAAt(x, y)
}

// WriteBMP encodes the current picture as a BMP image.
func (r *Renderer) WriteBMP(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bmp.Encode(w, r.canvas.Image())
}
