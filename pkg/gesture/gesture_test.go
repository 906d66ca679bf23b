package gesture

import (
	"image"
	"testing"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/stretchr/testify/require"
)

type recordingPreview struct {
	visible bool
	last    anno.Rect
	shows   int
	hides   int
}

func (p *recordingPreview) Show(r anno.Rect, cls classes.Class) {
	p.visible = true
	p.last = r
	p.shows++
}

func (p *recordingPreview) Hide() {
	p.visible = false
	p.hides++
}

func setup(t *testing.T) (*anno.Store, *Interpreter, *recordingPreview) {
	store := anno.NewStore()
	store.SetImage(image.NewRGBA(image.Rect(0, 0, 800, 600)))
	preview := &recordingPreview{}
	in := NewInterpreter(store, preview)
	in.SetClass(classes.DefaultSet().First())
	return store, in, preview
}

func TestDragCreatesAnnotation(t *testing.T) {
	store, in, preview := setup(t)

	in.PointerDown(10, 10)
	require.True(t, in.Dragging())
	in.PointerMove(60, 30)
	require.Equal(t, anno.Rect{X: 10, Y: 10, Width: 50, Height: 20}, preview.last)
	a, ok := in.PointerUp(110, 60)
	require.True(t, ok)
	require.False(t, in.Dragging())
	require.False(t, preview.visible)

	require.Equal(t, anno.Rect{X: 10, Y: 10, Width: 100, Height: 50}, a.Rect())
	require.Equal(t, 0, a.ClassID)
	list := store.List()
	require.Len(t, list, 1)
	require.Equal(t, a, list[0])
}

func TestReverseDragNormalizes(t *testing.T) {
	store, in, _ := setup(t)
	in.PointerDown(110, 60)
	a, ok := in.PointerUp(10, 10)
	require.True(t, ok)
	require.Equal(t, anno.Rect{X: 10, Y: 10, Width: 100, Height: 50}, a.Rect())
	require.Equal(t, 1, store.Count())
}

func TestBelowThresholdDiscarded(t *testing.T) {
	store, in, preview := setup(t)

	// 3x3: discarded
	in.PointerDown(10, 10)
	_, ok := in.PointerUp(13, 13)
	require.False(t, ok)
	require.Equal(t, 0, store.Count())
	require.False(t, preview.visible)

	// exactly 5x5: still discarded (strictly greater wins)
	in.PointerDown(10, 10)
	_, ok = in.PointerUp(15, 15)
	require.False(t, ok)
	require.Equal(t, 0, store.Count())

	// 6x6: accepted
	in.PointerDown(10, 10)
	_, ok = in.PointerUp(16, 16)
	require.True(t, ok)
	require.Equal(t, 1, store.Count())
}

func TestNoClassSelected(t *testing.T) {
	store := anno.NewStore()
	store.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	preview := &recordingPreview{}
	in := NewInterpreter(store, preview)

	in.PointerDown(10, 10)
	require.False(t, in.Dragging())
	require.Equal(t, 0, preview.shows)
	_, ok := in.PointerUp(50, 50)
	require.False(t, ok)
	require.Equal(t, 0, store.Count())
}

func TestNoImageLoaded(t *testing.T) {
	store := anno.NewStore()
	in := NewInterpreter(store, nil)
	in.SetClass(classes.DefaultSet().First())
	in.PointerDown(10, 10)
	require.False(t, in.Dragging())
}

func TestStrayPointerUpIsNoop(t *testing.T) {
	store, in, _ := setup(t)
	_, ok := in.PointerUp(50, 50)
	require.False(t, ok)
	require.Equal(t, 0, store.Count())
}

func TestLeaveCancelsDrag(t *testing.T) {
	store, in, preview := setup(t)
	in.PointerDown(10, 10)
	in.PointerMove(60, 60)
	in.PointerLeave()
	require.False(t, in.Dragging())
	require.False(t, preview.visible)

	// the up event that never reached the canvas must not commit anything
	_, ok := in.PointerUp(120, 120)
	require.False(t, ok)
	require.Equal(t, 0, store.Count())
}
