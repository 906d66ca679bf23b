package render

import (
	"image"
	"image/color"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
)

// Surface is the drawing interface the renderer paints onto. Keeping it
// abstract lets the render pipeline run against a mock in tests, with no
// real display surface.
type Surface interface {
	// SetSize sets the bitmap dimensions. The renderer always sizes the
	// surface to exactly the source image's pixel dimensions, so annotation
	// coordinates need no scaling.
	SetSize(width, height int)
	Clear()
	DrawImage(img image.Image)
	StrokeRect(r anno.Rect, col color.RGBA, lineWidth float64)
	FillRect(x, y, width, height float64, col color.RGBA)
	FillText(text string, x, y float64, col color.RGBA)
	MeasureText(text string) float64
}
