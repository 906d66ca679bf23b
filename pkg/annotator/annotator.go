package annotator

// Package annotator is the annotation page's controller: it owns the state
// store, the gesture interpreter and the canvas surface, and talks to the
// backend through the gateway. UI shells (desktop window, CLI) sit on top
// of this and stay dumb.

import (
	"context"
	"errors"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gesture"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/render"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/statedb"
)

// Validation failures that block a save before any request is sent.
var (
	ErrNoFilename    = errors.New("no filename specified")
	ErrNoAnnotations = errors.New("no annotations to save")
	ErrNoImage       = errors.New("no image loaded")
)

type Config struct {
	Log     logs.Log
	Classes *classes.Set    // nil means classes.DefaultSet()
	Surface render.Surface  // canvas to draw on
	Gateway *gateway.Client // backend; may be nil for offline/headless use
	Preview gesture.Preview // drag preview overlay; nil means none
	State   *statedb.StateDB
}

type Annotator struct {
	log     logs.Log
	classes *classes.Set
	store   *anno.Store
	gest    *gesture.Interpreter
	surface render.Surface
	gw      *gateway.Client
	state   *statedb.StateDB

	imageData string // clean data URL of the loaded image, used verbatim in the save payload
	filename  string
	session   string
}

func New(cfg Config) *Annotator {
	cls := cfg.Classes
	if cls == nil {
		cls = classes.DefaultSet()
	}
	store := anno.NewStore()
	a := &Annotator{
		log:     cfg.Log,
		classes: cls,
		store:   store,
		gest:    gesture.NewInterpreter(store, cfg.Preview),
		surface: cfg.Surface,
		gw:      cfg.Gateway,
		state:   cfg.State,
		session: "default",
	}
	// first class starts selected, matching the page's initial state
	a.gest.SetClass(cls.First())
	if a.state != nil {
		if session, err := a.state.CurrentSession(); err == nil {
			a.session = session
		}
	}
	store.OnChange(a.redraw)
	return a
}

func (a *Annotator) Store() *anno.Store            { return a.store }
func (a *Annotator) Gesture() *gesture.Interpreter { return a.gest }
func (a *Annotator) Classes() *classes.Set         { return a.classes }
func (a *Annotator) Filename() string              { return a.filename }
func (a *Annotator) Session() string               { return a.session }

func (a *Annotator) SetFilename(name string) {
	a.filename = name
}

// SetSession changes the session used by the next save, and persists the
// choice across runs.
func (a *Annotator) SetSession(name string) {
	if name == "" {
		name = "default"
	}
	a.session = name
	if a.state != nil {
		if err := a.state.SetCurrentSession(name); err != nil {
			a.log.Warnf("Failed to persist current session: %v", err)
		}
	}
}

// SelectClass makes the class with the given id active for new annotations.
func (a *Annotator) SelectClass(id int) error {
	cls, ok := a.classes.Get(id)
	if !ok {
		return errors.New("unknown class id")
	}
	a.gest.SetClass(cls)
	return nil
}

// LoadImageData loads a base64 data URL as the active image. Decode failure
// puts a placeholder on the canvas instead of leaving stale content, and the
// prior annotation state is cleared either way.
func (a *Annotator) LoadImageData(dataURL string) error {
	img, err := imageio.DecodeDataURL(dataURL)
	if err != nil {
		a.imageData = ""
		a.store.SetImage(render.Placeholder(0, 0, "image failed to load"))
		return err
	}
	a.imageData = dataURL
	a.store.SetImage(img)
	return nil
}

// GenerateImage asks the backend to compose the upload onto a canvas, then
// loads the result.
func (a *Annotator) GenerateImage(ctx context.Context, req gateway.GenerateRequest) error {
	dataURL, err := a.gw.Generate(ctx, req)
	if err != nil {
		return err
	}
	return a.LoadImageData(dataURL)
}

// Save validates locally, then submits the current annotation snapshot.
// Local failures (ErrNoFilename, ErrNoAnnotations, ErrNoImage) are returned
// before any network traffic happens.
func (a *Annotator) Save(ctx context.Context) (*gateway.SaveResponse, error) {
	if a.filename == "" {
		return nil, ErrNoFilename
	}
	if a.store.Count() == 0 {
		return nil, ErrNoAnnotations
	}
	if !a.store.HasImage() || a.imageData == "" {
		return nil, ErrNoImage
	}
	resp, err := a.gw.SaveAnnotations(ctx, gateway.SaveRequest{
		Annotations: a.store.List(),
		Filename:    a.filename,
		SessionName: a.session,
		ImageWidth:  a.store.Width(),
		ImageHeight: a.store.Height(),
		ImageData:   a.imageData,
	})
	if err != nil {
		return nil, err
	}
	if a.state != nil {
		rec := &statedb.SaveRecord{
			CreatedAt:       time.Now().UnixMilli(),
			Session:         a.session,
			OriginalName:    resp.OriginalName,
			UniqueName:      resp.UniqueName,
			ImageFile:       resp.Files.Image,
			LabelsFile:      resp.Files.Labels,
			AnnotationCount: a.store.Count(),
		}
		if err := a.state.AddSaveRecord(rec); err != nil {
			a.log.Warnf("Failed to record save history: %v", err)
		}
	}
	return resp, nil
}

// RemoveAnnotation deletes one annotation by id.
func (a *Annotator) RemoveAnnotation(id int64) {
	a.store.Remove(id)
}

// Clear drops all annotations but keeps the image.
func (a *Annotator) Clear() {
	a.store.Clear()
}

// Sessions fetches the current session list.
func (a *Annotator) Sessions(ctx context.Context) ([]gateway.SessionInfo, error) {
	return a.gw.ListSessions(ctx)
}

func (a *Annotator) redraw() {
	if a.surface == nil {
		return
	}
	render.Render(a.surface, a.store.Image(), a.store.List(), a.classes)
}
