package annotator

import (
	"image"
	"math"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/render"
)

// YoloRect converts a normalized YOLO box [x_center, y_center, width, height]
// into a pixel rect on an imageWidth x imageHeight image.
func YoloRect(coords []float64, imageWidth, imageHeight int) (anno.Rect, bool) {
	if len(coords) != 4 {
		return anno.Rect{}, false
	}
	w := coords[2] * float64(imageWidth)
	h := coords[3] * float64(imageHeight)
	x := coords[0]*float64(imageWidth) - w/2
	y := coords[1]*float64(imageHeight) - h/2
	return anno.Rect{
		X:      int(math.Round(x)),
		Y:      int(math.Round(y)),
		Width:  int(math.Round(w)),
		Height: int(math.Round(h)),
	}, true
}

// RenderVisualizerImage draws a session image with its stored labels, for
// writing annotated previews to disk. A broken image payload degrades to a
// placeholder rather than failing the whole session.
func RenderVisualizerImage(vi gateway.VisualizerImage, set *classes.Set) image.Image {
	if set == nil {
		set = classes.DefaultSet()
	}
	src, err := imageio.DecodeDataURL(vi.ImageData)
	if err != nil {
		return render.Placeholder(0, 0, vi.Filename+": image failed to load")
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	list := []anno.Annotation{}
	for i, va := range vi.Annotations {
		r, ok := YoloRect(va.YoloCoords, w, h)
		if !ok {
			continue
		}
		name := va.ClassName
		if cls, ok := set.Get(va.ClassID); name == "" && ok {
			name = cls.Name
		}
		list = append(list, anno.Annotation{
			ID:        int64(i),
			X:         r.X,
			Y:         r.Y,
			Width:     r.Width,
			Height:    r.Height,
			ClassID:   va.ClassID,
			ClassName: name,
		})
	}
	canvas := render.NewCanvas(w, h)
	render.Render(canvas, src, list, set)
	return canvas.Image()
}
