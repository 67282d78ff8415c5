package preview

import (
	"image"
	"image/color"
)

// Canvas is an in-memory drivers.Displayer backed by an RGBA image.
type Canvas struct {
	img    *image.RGBA
	frames uint32
}

// NewCanvas returns a black canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	c.Fill(color.RGBA{A: 0xFF})
	return c
}

func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col)
}

// Display counts a finished frame. The image is always current.
func (c *Canvas) Display() error {
	c.frames++
	return nil
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	b := c.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Frames returns how many times Display was called.
func (c *Canvas) Frames() uint32 { return c.frames }
