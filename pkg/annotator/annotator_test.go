package annotator

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/render"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/statedb"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	router   *httprouter.Router
	requests int
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{router: httprouter.New()}
	sendJSON := func(w http.ResponseWriter, obj any) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.Marshal(obj)
		w.Write(b)
	}
	f.router.POST("/save_annotations", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		f.requests++
		r.ParseMultipartForm(16 << 20)
		sendJSON(w, map[string]any{
			"success":       true,
			"original_name": r.FormValue("filename"),
			"unique_name":   r.FormValue("filename") + "_1",
			"files":         map[string]string{"image": "annotations/images/a.jpg", "labels": "annotations/labels/a.txt"},
			"yolo_format":   []string{"0 0.081250 0.058333 0.125000 0.083333"},
		})
	})
	f.router.GET("/api/sessions", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		f.requests++
		sendJSON(w, map[string]any{"success": true, "sessions": []gateway.SessionInfo{{Name: "default", ImagesCount: 1, LabelsCount: 1}}})
	})
	return f
}

func newTestAnnotator(t *testing.T, withState bool) (*Annotator, *fakeBackend) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router)
	t.Cleanup(srv.Close)
	logger := logs.NewTestingLog(t)
	cfg := Config{
		Log:     logger,
		Surface: render.NewCanvas(1, 1),
		Gateway: gateway.NewClient(srv.URL, logger),
	}
	if withState {
		db, err := statedb.NewStateDB(logger, filepath.Join(t.TempDir(), "state.sqlite"))
		require.NoError(t, err)
		cfg.State = db
	}
	return New(cfg), backend
}

func loadTestImage(t *testing.T, a *Annotator, w, h int) {
	dataURL, err := imageio.EncodeDataURL(image.NewRGBA(image.Rect(0, 0, w, h)))
	require.NoError(t, err)
	require.NoError(t, a.LoadImageData(dataURL))
}

// Load an 800x600 image, drag (10,10) -> (110,60) with class 0.
func TestDragScenario(t *testing.T) {
	a, _ := newTestAnnotator(t, false)
	loadTestImage(t, a, 800, 600)

	g := a.Gesture()
	g.PointerDown(10, 10)
	g.PointerMove(60, 40)
	_, ok := g.PointerUp(110, 60)
	require.True(t, ok)

	list := a.Store().List()
	require.Len(t, list, 1)
	require.EqualValues(t, 0, list[0].ID)
	require.Equal(t, anno.Rect{X: 10, Y: 10, Width: 100, Height: 50}, list[0].Rect())
	require.Equal(t, 0, list[0].ClassID)
}

func TestRemoveKeepsSecond(t *testing.T) {
	a, _ := newTestAnnotator(t, false)
	loadTestImage(t, a, 800, 600)

	g := a.Gesture()
	g.PointerDown(10, 10)
	first, _ := g.PointerUp(60, 60)
	require.NoError(t, a.SelectClass(2))
	g.PointerDown(100, 100)
	second, _ := g.PointerUp(200, 150)

	a.RemoveAnnotation(first.ID)
	list := a.Store().List()
	require.Len(t, list, 1)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, 2, list[0].ClassID)
}

func TestSaveValidationBlocksRequest(t *testing.T) {
	a, backend := newTestAnnotator(t, false)

	// no filename
	_, err := a.Save(context.Background())
	require.ErrorIs(t, err, ErrNoFilename)

	// filename but no annotations
	a.SetFilename("cat")
	_, err = a.Save(context.Background())
	require.ErrorIs(t, err, ErrNoAnnotations)

	require.Equal(t, 0, backend.requests)
}

func TestSaveSuccess(t *testing.T) {
	a, backend := newTestAnnotator(t, true)
	loadTestImage(t, a, 800, 600)
	a.SetFilename("cat")
	a.SetSession("traffic")

	g := a.Gesture()
	g.PointerDown(15, 10)
	g.PointerUp(115, 60)

	resp, err := a.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cat", resp.OriginalName)
	require.Equal(t, "cat_1", resp.UniqueName)
	require.Len(t, resp.YoloFormat, 1)
	require.Equal(t, 1, backend.requests)

	// session list refresh after save
	sessions, err := a.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, 2, backend.requests)
}

func TestSessionPersistence(t *testing.T) {
	logger := logs.NewTestingLog(t)
	fn := filepath.Join(t.TempDir(), "state.sqlite")
	db, err := statedb.NewStateDB(logger, fn)
	require.NoError(t, err)

	a := New(Config{Log: logger, State: db})
	require.Equal(t, "default", a.Session())
	a.SetSession("traffic")

	b := New(Config{Log: logger, State: db})
	require.Equal(t, "traffic", b.Session())

	recs, err := db.RecentSaves(5)
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestLoadImageDataFailure(t *testing.T) {
	a, _ := newTestAnnotator(t, false)
	loadTestImage(t, a, 100, 100)
	g := a.Gesture()
	g.PointerDown(10, 10)
	g.PointerUp(60, 60)
	require.Equal(t, 1, a.Store().Count())

	err := a.LoadImageData("data:image/png;base64,bm90IGFuIGltYWdl")
	require.Error(t, err)
	// placeholder is showing and the old annotations are gone
	require.True(t, a.Store().HasImage())
	require.Equal(t, 0, a.Store().Count())

	// save is blocked until a real image loads
	a.SetFilename("x")
	g.PointerDown(10, 10)
	g.PointerUp(60, 60)
	_, err = a.Save(context.Background())
	require.ErrorIs(t, err, ErrNoImage)
}

func TestYoloRect(t *testing.T) {
	r, ok := YoloRect([]float64{0.5, 0.5, 0.25, 0.25}, 400, 200)
	require.True(t, ok)
	require.Equal(t, anno.Rect{X: 150, Y: 75, Width: 100, Height: 50}, r)

	_, ok = YoloRect([]float64{0.5, 0.5}, 400, 200)
	require.False(t, ok)
}

func TestRenderVisualizerImage(t *testing.T) {
	dataURL, err := imageio.EncodeDataURL(image.NewRGBA(image.Rect(0, 0, 64, 48)))
	require.NoError(t, err)
	img := RenderVisualizerImage(gateway.VisualizerImage{
		Filename:    "a.jpg",
		ImageData:   dataURL,
		Annotations: []gateway.VisualizerAnnotation{{ClassID: 0, ClassName: "object 1", YoloCoords: []float64{0.5, 0.5, 0.5, 0.5}}},
	}, nil)
	require.Equal(t, 64, img.Bounds().Dx())

	// broken payload degrades to a placeholder
	img = RenderVisualizerImage(gateway.VisualizerImage{Filename: "b.jpg", ImageData: "garbage"}, nil)
	require.Equal(t, 320, img.Bounds().Dx())
}
