package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/stretchr/testify/require"
)

type op struct {
	kind string
	rect anno.Rect
	col  color.RGBA
	text string
}

// mockSurface records drawing calls instead of rasterizing.
type mockSurface struct {
	w, h int
	ops  []op
}

func (m *mockSurface) SetSize(width, height int) { m.w, m.h = width, height }
func (m *mockSurface) Clear()                    { m.ops = append(m.ops, op{kind: "clear"}) }
func (m *mockSurface) DrawImage(img image.Image) { m.ops = append(m.ops, op{kind: "image"}) }
func (m *mockSurface) StrokeRect(r anno.Rect, col color.RGBA, lineWidth float64) {
	m.ops = append(m.ops, op{kind: "stroke", rect: r, col: col})
}
func (m *mockSurface) FillRect(x, y, width, height float64, col color.RGBA) {
	m.ops = append(m.ops, op{kind: "fillrect", rect: anno.Rect{X: int(x), Y: int(y), Width: int(width), Height: int(height)}, col: col})
}
func (m *mockSurface) FillText(text string, x, y float64, col color.RGBA) {
	m.ops = append(m.ops, op{kind: "text", text: text, col: col})
}
func (m *mockSurface) MeasureText(text string) float64 { return float64(7 * len(text)) }

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	return img
}

func TestRenderOrderAndSizing(t *testing.T) {
	set := classes.DefaultSet()
	store := anno.NewStore()
	store.SetImage(testImage(800, 600))
	c0, _ := set.Get(0)
	c1, _ := set.Get(1)
	store.Add(anno.Rect{X: 10, Y: 30, Width: 100, Height: 50}, c0)
	store.Add(anno.Rect{X: 200, Y: 100, Width: 40, Height: 40}, c1)

	s := &mockSurface{}
	Render(s, store.Image(), store.List(), set)

	require.Equal(t, 800, s.w)
	require.Equal(t, 600, s.h)
	// clear, image, then (stroke, fillrect, text) per annotation in list order
	require.Equal(t, "clear", s.ops[0].kind)
	require.Equal(t, "image", s.ops[1].kind)
	require.Equal(t, "stroke", s.ops[2].kind)
	require.Equal(t, anno.Rect{X: 10, Y: 30, Width: 100, Height: 50}, s.ops[2].rect)
	require.Equal(t, c0.RGBA(), s.ops[2].col)
	require.Equal(t, "fillrect", s.ops[3].kind)
	// label bar sits directly above the box: y-20, width = text + 2*pad
	require.Equal(t, anno.Rect{X: 10, Y: 10, Width: 7*len(c0.Name) + 10, Height: 20}, s.ops[3].rect)
	require.Equal(t, "text", s.ops[4].kind)
	require.Equal(t, c0.Name, s.ops[4].text)
	require.Equal(t, "stroke", s.ops[5].kind)
	require.Equal(t, c1.RGBA(), s.ops[5].col)
	require.Len(t, s.ops, 8)
}

func TestRenderUnknownClassFallback(t *testing.T) {
	set := classes.DefaultSet()
	list := []anno.Annotation{{ID: 0, X: 5, Y: 25, Width: 20, Height: 20, ClassID: 42}}
	s := &mockSurface{}
	Render(s, testImage(100, 100), list, set)
	require.Equal(t, "class 42", s.ops[4].text)
}

func TestRenderNilImageIsNoop(t *testing.T) {
	s := &mockSurface{}
	Render(s, nil, nil, classes.DefaultSet())
	require.Empty(t, s.ops)
}

func TestRenderIdempotent(t *testing.T) {
	set := classes.DefaultSet()
	img := testImage(64, 48)
	c0, _ := set.Get(0)
	list := []anno.Annotation{{ID: 0, X: 8, Y: 24, Width: 30, Height: 16, ClassID: c0.ID, ClassName: c0.Name}}

	render := func() []uint8 {
		c := NewCanvas(64, 48)
		Render(c, img, list, set)
		out := c.Image().(*image.RGBA)
		pix := make([]uint8, len(out.Pix))
		copy(pix, out.Pix)
		return pix
	}
	first := render()
	second := render()
	require.Equal(t, first, second)

	// rendering twice onto the same canvas is also stable
	c := NewCanvas(64, 48)
	Render(c, img, list, set)
	Render(c, img, list, set)
	require.Equal(t, first, c.Image().(*image.RGBA).Pix)
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(100, 80, "image failed to load")
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 80, img.Bounds().Dy())

	// degenerate sizes fall back to a visible default
	img = Placeholder(0, -5, "x")
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 320, img.Bounds().Dy())
}
