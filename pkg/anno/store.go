package anno

import (
	"image"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
)

// Store owns the annotation state for the active image: the image itself,
// the ordered annotation list, and the id counter. All mutations go through
// here, and every mutation synchronously fires the change callback so the
// canvas never shows stale state.
//
// Append order is z-order: later annotations draw on top.
// Ids are never reused within the lifetime of one image, even after removals.
type Store struct {
	img      image.Image
	list     []Annotation
	nextID   int64
	onChange func()
}

func NewStore() *Store {
	return &Store{}
}

// OnChange registers the callback fired after every mutation (typically a
// redraw). Fired synchronously, on the mutating call's stack.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

// SetImage replaces the active image, drops all annotations and resets the
// id counter.
func (s *Store) SetImage(img image.Image) {
	s.img = img
	s.list = nil
	s.nextID = 0
	s.notify()
}

func (s *Store) Image() image.Image {
	return s.img
}

func (s *Store) HasImage() bool {
	return s.img != nil
}

// Width returns the pixel width of the active image (0 if none).
func (s *Store) Width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

func (s *Store) Height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

// Add appends a new annotation and returns it. Silently refuses (ok=false)
// if no image is loaded or the rectangle is degenerate.
func (s *Store) Add(r Rect, cls classes.Class) (Annotation, bool) {
	if s.img == nil || r.Width <= 0 || r.Height <= 0 {
		return Annotation{}, false
	}
	a := Annotation{
		ID:        s.nextID,
		X:         r.X,
		Y:         r.Y,
		Width:     r.Width,
		Height:    r.Height,
		ClassID:   cls.ID,
		ClassName: cls.Name,
	}
	s.nextID++
	s.list = append(s.list, a)
	s.notify()
	return a, true
}

// Remove deletes the annotation with the given id. No-op if absent.
func (s *Store) Remove(id int64) bool {
	for i, a := range s.list {
		if a.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.notify()
			return true
		}
	}
	return false
}

// Clear empties the annotation list and resets the id counter.
// The image stays loaded.
func (s *Store) Clear() {
	s.list = nil
	s.nextID = 0
	s.notify()
}

// List returns a snapshot of the annotations in insertion order.
func (s *Store) List() []Annotation {
	out := make([]Annotation, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Store) Count() int {
	return len(s.list)
}

// HitTest returns the topmost annotation containing the point.
func (s *Store) HitTest(p Point) (Annotation, bool) {
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].Rect().Contains(p) {
			return s.list[i], true
		}
	}
	return Annotation{}, false
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
