package gesture

// Package gesture turns raw pointer events over the canvas into bounding
// boxes. It is a small state machine: Idle until a pointer-down with an
// active class, then Dragging until pointer-up commits (or pointer-leave
// cancels) the box.

import (
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
)

// MinBoxSize is the strictly-greater-than threshold, in source image pixels,
// that both the width and height of a drag must exceed before it becomes an
// annotation. Anything smaller is treated as a stray click.
const MinBoxSize = 5

// Preview is the live selection box shown while dragging. Implementations
// draw it however they like (a DOM-style overlay, a Fyne rectangle, nothing
// at all in tests).
type Preview interface {
	Show(r anno.Rect, cls classes.Class)
	Hide()
}

// NopPreview is a Preview that draws nothing.
type NopPreview struct{}

func (NopPreview) Show(r anno.Rect, cls classes.Class) {}
func (NopPreview) Hide()                               {}

type state int

const (
	stateIdle state = iota
	stateDragging
)

// Interpreter converts pointer events into Store mutations.
// Coordinates are canvas-local pixels, which the renderer keeps identical
// to source-image pixels (the canvas bitmap always matches the image size).
type Interpreter struct {
	store   *anno.Store
	preview Preview

	cls    classes.Class
	hasCls bool

	st             state
	startX, startY int
}

func NewInterpreter(store *anno.Store, preview Preview) *Interpreter {
	if preview == nil {
		preview = NopPreview{}
	}
	return &Interpreter{
		store:   store,
		preview: preview,
	}
}

// SetClass makes cls the active class for subsequent drags.
func (in *Interpreter) SetClass(cls classes.Class) {
	in.cls = cls
	in.hasCls = true
}

// ActiveClass returns the currently selected class, if any.
func (in *Interpreter) ActiveClass() (classes.Class, bool) {
	return in.cls, in.hasCls
}

func (in *Interpreter) Dragging() bool {
	return in.st == stateDragging
}

// PointerDown starts a drag. No-op unless a class is selected and an image
// is loaded.
func (in *Interpreter) PointerDown(x, y int) {
	if in.st != stateIdle || !in.hasCls || !in.store.HasImage() {
		return
	}
	in.st = stateDragging
	in.startX = x
	in.startY = y
	in.preview.Show(anno.Rect{X: x, Y: y}, in.cls)
}

// PointerMove updates the preview box. Does not touch the store.
func (in *Interpreter) PointerMove(x, y int) {
	if in.st != stateDragging {
		return
	}
	in.preview.Show(anno.RectFromCorners(in.startX, in.startY, x, y), in.cls)
}

// PointerUp commits the drag. The box is added to the store only if both
// dimensions exceed MinBoxSize; the preview is removed either way.
func (in *Interpreter) PointerUp(x, y int) (anno.Annotation, bool) {
	if in.st != stateDragging {
		return anno.Annotation{}, false
	}
	in.st = stateIdle
	in.preview.Hide()
	r := anno.RectFromCorners(in.startX, in.startY, x, y)
	if r.Width <= MinBoxSize || r.Height <= MinBoxSize {
		return anno.Annotation{}, false
	}
	return in.store.Add(r, in.cls)
}

// PointerLeave cancels an in-flight drag. The browser original left the drag
// open when the pointer escaped the canvas; cancelling is the deliberate
// robustness improvement over that behavior.
func (in *Interpreter) PointerLeave() {
	if in.st != stateDragging {
		return
	}
	in.st = stateIdle
	in.preview.Hide()
}
