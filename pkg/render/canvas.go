package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"golang.org/x/image/font/basicfont"
)

// Canvas is the real Surface, backed by a fogleman/gg raster context.
type Canvas struct {
	dc *gg.Context
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.SetSize(width, height)
	return c
}

func newContext(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	return dc
}

func (c *Canvas) SetSize(width, height int) {
	if c.dc != nil && c.dc.Width() == width && c.dc.Height() == height {
		return
	}
	c.dc = newContext(width, height)
}

func (c *Canvas) Clear() {
	c.dc.SetColor(color.White)
	c.dc.Clear()
}

func (c *Canvas) DrawImage(img image.Image) {
	c.dc.DrawImage(img, 0, 0)
}

func (c *Canvas) StrokeRect(r anno.Rect, col color.RGBA, lineWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.dc.Stroke()
}

func (c *Canvas) FillRect(x, y, width, height float64, col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, width, height)
	c.dc.Fill()
}

func (c *Canvas) FillText(text string, x, y float64, col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.DrawString(text, x, y)
}

func (c *Canvas) MeasureText(text string) float64 {
	w, _ := c.dc.MeasureString(text)
	return w
}

func (c *Canvas) Width() int {
	return c.dc.Width()
}

func (c *Canvas) Height() int {
	return c.dc.Height()
}

// Image returns the rendered bitmap.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}
