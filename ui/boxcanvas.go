package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gesture"
)

// BoxCanvas shows the rendered image at 1:1 pixel scale and feeds mouse
// events into the gesture interpreter. It is also the drag preview overlay:
// while a drag is in flight, a rectangle outline and class label track the
// cursor, and the committed boxes only appear on the next full render.
type BoxCanvas struct {
	widget.BaseWidget

	img          *canvas.Image
	previewRect  *canvas.Rectangle
	previewLabel *canvas.Text

	gest *gesture.Interpreter

	// OnSecondaryTap fires on right click, with image pixel coordinates.
	// The app uses it for click-to-delete.
	OnSecondaryTap func(x, y int)
}

func NewBoxCanvas() *BoxCanvas {
	b := &BoxCanvas{
		img:          canvas.NewImageFromImage(nil),
		previewRect:  canvas.NewRectangle(color.Transparent),
		previewLabel: canvas.NewText("", color.White),
	}
	b.img.FillMode = canvas.ImageFillOriginal
	b.img.ScaleMode = canvas.ImageScalePixels
	b.previewRect.StrokeWidth = 2
	b.previewRect.Hide()
	b.previewLabel.TextSize = 12
	b.previewLabel.Hide()
	b.ExtendBaseWidget(b)
	return b
}

// SetInterpreter wires the interpreter that receives the pointer events.
// The canvas is inert until this is called.
func (b *BoxCanvas) SetInterpreter(gest *gesture.Interpreter) {
	b.gest = gest
}

// SetImage replaces the displayed image and resizes the widget to match its
// pixel dimensions.
func (b *BoxCanvas) SetImage(img image.Image) {
	b.img.Image = img
	if img != nil {
		size := fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy()))
		b.img.SetMinSize(size)
		b.img.Resize(size)
		b.Resize(size)
	}
	b.img.Refresh()
}

func (b *BoxCanvas) CreateRenderer() fyne.WidgetRenderer {
	c := container.NewWithoutLayout(b.img, b.previewRect, b.previewLabel)
	return widget.NewSimpleRenderer(c)
}

// MinSize reports the image's pixel size. The overlay container has no
// layout, so without this the widget would collapse inside its scroller.
func (b *BoxCanvas) MinSize() fyne.Size {
	return b.img.MinSize()
}

// boxPreview adapts BoxCanvas to gesture.Preview. The preview Show signature
// would otherwise collide with fyne.CanvasObject's Show on the widget itself.
type boxPreview struct{ b *BoxCanvas }

func (p boxPreview) Show(r anno.Rect, cls classes.Class) { p.b.ShowPreview(r, cls) }
func (p boxPreview) Hide()                               { p.b.Hide() }

// ShowPreview implements the draw half of gesture.Preview via boxPreview.
func (b *BoxCanvas) ShowPreview(r anno.Rect, cls classes.Class) {
	col := cls.RGBA()
	b.previewRect.StrokeColor = col
	b.previewRect.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	b.previewRect.Resize(fyne.NewSize(float32(r.Width), float32(r.Height)))
	b.previewRect.Show()
	b.previewRect.Refresh()
	b.previewLabel.Text = cls.Name
	b.previewLabel.Color = col
	b.previewLabel.Move(fyne.NewPos(float32(r.X), float32(r.Y)-16))
	b.previewLabel.Show()
	b.previewLabel.Refresh()
}

// Hide implements gesture.Preview.
func (b *BoxCanvas) Hide() {
	b.previewRect.Hide()
	b.previewLabel.Hide()
}

// MouseDown implements desktop.Mouseable.
func (b *BoxCanvas) MouseDown(ev *desktop.MouseEvent) {
	if b.gest == nil {
		return
	}
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		b.gest.PointerDown(int(ev.Position.X), int(ev.Position.Y))
	case desktop.MouseButtonSecondary:
		if b.OnSecondaryTap != nil {
			b.OnSecondaryTap(int(ev.Position.X), int(ev.Position.Y))
		}
	}
}

// MouseUp implements desktop.Mouseable.
func (b *BoxCanvas) MouseUp(ev *desktop.MouseEvent) {
	if b.gest == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.gest.PointerUp(int(ev.Position.X), int(ev.Position.Y))
}

// MouseIn implements desktop.Hoverable.
func (b *BoxCanvas) MouseIn(ev *desktop.MouseEvent) {
}

// MouseMoved implements desktop.Hoverable.
func (b *BoxCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if b.gest == nil {
		return
	}
	b.gest.PointerMove(int(ev.Position.X), int(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable. Leaving the canvas mid-drag cancels
// the drag rather than committing a box the user cannot see.
func (b *BoxCanvas) MouseOut() {
	if b.gest == nil {
		return
	}
	b.gest.PointerLeave()
}
