package anno

// Package anno holds the in-memory annotation state for the image
// that is currently being labeled.

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rect) Area() int {
	return r.Width * r.Height
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Intersection(b Rect) Rect {
	x1 := max(r.X, b.X)
	y1 := max(r.Y, b.Y)
	x2 := min(r.X+r.Width, b.X+b.Width)
	y2 := min(r.Y+r.Height, b.Y+b.Height)
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  max(0, x2-x1),
		Height: max(0, y2-y1),
	}
}

// RectFromCorners builds the rectangle spanned by two arbitrary corner
// points, in any drag direction.
func RectFromCorners(ax, ay, bx, by int) Rect {
	return Rect{
		X:      min(ax, bx),
		Y:      min(ay, by),
		Width:  abs(bx - ax),
		Height: abs(by - ay),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Annotation is one bounding box with a class assignment.
// Coordinates are pixels in the source image, X/Y is the top-left corner.
// The JSON field names are the backend's wire format.
type Annotation struct {
	ID        int64  `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ClassID   int    `json:"class_id"`
	ClassName string `json:"class_name"` // cached at creation, for display and the save payload
}

func (a Annotation) Rect() Rect {
	return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}
