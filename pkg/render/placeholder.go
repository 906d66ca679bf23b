package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Placeholder builds the image shown when a source image fails to decode.
// The pipeline degrades to this instead of crashing the redraw.
func Placeholder(width, height int, message string) image.Image {
	if width <= 0 {
		width = 320
	}
	if height <= 0 {
		height = 320
	}
	bg := imaging.New(width, height, color.NRGBA{R: 0xe9, G: 0xec, B: 0xef, A: 0xff})
	dc := gg.NewContext(width, height)
	dc.DrawImage(bg, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.NRGBA{R: 0x72, G: 0x1c, B: 0x24, A: 0xff})
	dc.DrawStringAnchored(message, float64(width)/2, float64(height)/2, 0.5, 0.5)
	return dc.Image()
}
