package render

// Package render redraws the annotation canvas. Render is a pure function of
// (image, annotation list, class set): same inputs, same pixels.

import (
	"fmt"
	"image"
	"image/color"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
)

const (
	// BoxStrokeWidth is the annotation outline thickness in pixels.
	BoxStrokeWidth = 2
	// LabelHeight is the height of the label background bar above each box.
	LabelHeight = 20
	// LabelPadX pads the class name inside its background bar.
	LabelPadX = 5
)

var labelTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// unknownClass is drawn when an annotation references a class id that is
// missing from the set. Annotations outlive class-config reloads, so this
// is reachable, not just defensive.
func unknownClass(id int) classes.Class {
	return classes.Class{ID: id, Name: fmt.Sprintf("class %v", id), Color: "#808080"}
}

// Render redraws the whole canvas: the source image at native resolution,
// then every annotation in list order (later entries on top), each with a
// stroked box, a label background bar and the class name.
func Render(s Surface, img image.Image, list []anno.Annotation, set *classes.Set) {
	if img == nil {
		return
	}
	s.SetSize(img.Bounds().Dx(), img.Bounds().Dy())
	s.Clear()
	s.DrawImage(img)
	for _, a := range list {
		cls, ok := set.Get(a.ClassID)
		if !ok {
			cls = unknownClass(a.ClassID)
		}
		col := cls.RGBA()
		s.StrokeRect(a.Rect(), col, BoxStrokeWidth)
		textW := s.MeasureText(cls.Name)
		s.FillRect(float64(a.X), float64(a.Y-LabelHeight), textW+2*LabelPadX, LabelHeight, col)
		s.FillText(cls.Name, float64(a.X+LabelPadX), float64(a.Y-LabelPadX), labelTextColor)
	}
}
