package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/annotator"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/render"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/statedb"
)

// App is the desktop annotation window: class picker and controls down the
// left, the annotation canvas on the right.
type App struct {
	fyneApp fyne.App
	win     fyne.Window
	log     logs.Log

	ann      *annotator.Annotator
	client   *gateway.Client
	rendered *render.Canvas

	boxCanvas     *BoxCanvas
	classSelect   *widget.Select
	filenameEntry *widget.Entry
	sessionEntry  *widget.Entry
	sizeSelect    *widget.Select
	xEntry        *widget.Entry
	yEntry        *widget.Entry
	randomBgCheck *widget.Check
	annoList      *widget.List
	statusLabel   *widget.Label
	sessionCounts *widget.Label

	// snapshot backing annoList, refreshed on every store change
	annotations []anno.Annotation
}

func NewApp(client *gateway.Client, state *statedb.StateDB, classSet *classes.Set, logger logs.Log) *App {
	fyneApp := app.New()
	win := fyneApp.NewWindow("YOLO Multi-Class Annotator")
	win.Resize(fyne.NewSize(1100, 720))

	a := &App{
		fyneApp:   fyneApp,
		win:       win,
		log:       logger,
		client:    client,
		rendered:  render.NewCanvas(1, 1),
		boxCanvas: NewBoxCanvas(),
	}
	a.ann = annotator.New(annotator.Config{
		Log:     logger,
		Classes: classSet,
		Gateway: client,
		Preview: boxPreview{a.boxCanvas},
		State:   state,
	})
	a.boxCanvas.SetInterpreter(a.ann.Gesture())
	a.boxCanvas.OnSecondaryTap = func(x, y int) {
		if hit, ok := a.ann.Store().HitTest(anno.Point{X: x, Y: y}); ok {
			a.ann.RemoveAnnotation(hit.ID)
		}
	}
	// the annotator draws nowhere itself; the window owns the redraw so it
	// can push the result into the Fyne image in the same step
	a.ann.Store().OnChange(a.refresh)
	return a
}

func (a *App) Run() {
	a.win.SetContent(a.buildContent())
	a.refresh()
	a.refreshSessions()
	a.win.CenterOnScreen()
	a.win.ShowAndRun()
}

func (a *App) buildContent() fyne.CanvasObject {
	classList := a.ann.Classes().List()
	names := make([]string, len(classList))
	for i, cls := range classList {
		names[i] = cls.Name
	}
	a.classSelect = widget.NewSelect(names, func(name string) {
		for _, cls := range classList {
			if cls.Name == name {
				a.ann.SelectClass(cls.ID)
				return
			}
		}
	})
	if len(names) > 0 {
		a.classSelect.SetSelected(names[0])
	}

	a.filenameEntry = widget.NewEntry()
	a.filenameEntry.SetPlaceHolder("image name, no extension")
	a.sessionEntry = widget.NewEntry()
	a.sessionEntry.SetText(a.ann.Session())

	a.sizeSelect = widget.NewSelect([]string{"320", "416", "640", "1280"}, nil)
	a.sizeSelect.SetSelected("640")
	a.xEntry = widget.NewEntry()
	a.xEntry.SetText("0")
	a.yEntry = widget.NewEntry()
	a.yEntry.SetText("0")
	a.randomBgCheck = widget.NewCheck("Random background", nil)

	a.annoList = widget.NewList(
		func() int { return len(a.annotations) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
				widget.NewLabel(""))
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			btn := row.Objects[1].(*widget.Button)
			if i >= len(a.annotations) {
				return
			}
			an := a.annotations[i]
			label.SetText(fmt.Sprintf("%v (%v,%v) %vx%v", an.ClassName, an.X, an.Y, an.Width, an.Height))
			btn.OnTapped = func() {
				a.ann.RemoveAnnotation(an.ID)
			}
		},
	)
	a.statusLabel = widget.NewLabel("")
	a.sessionCounts = widget.NewLabel("")

	sidebar := container.NewVBox(
		widget.NewLabelWithStyle("Image", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), a.loadImage),
		widget.NewForm(
			widget.NewFormItem("Canvas size", a.sizeSelect),
			widget.NewFormItem("X", a.xEntry),
			widget.NewFormItem("Y", a.yEntry),
		),
		a.randomBgCheck,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Annotation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Class:"),
		a.classSelect,
		widget.NewLabel("Filename:"),
		a.filenameEntry,
		widget.NewLabel("Session:"),
		a.sessionEntry,
		a.sessionCounts,
		widget.NewButtonWithIcon("Save Annotations", theme.DocumentSaveIcon(), a.save),
		widget.NewButton("Clear Boxes", a.ann.Clear),
		widget.NewSeparator(),
		widget.NewButton("Sessions", func() { a.showSessions() }),
		widget.NewButton("Augment Session", func() { a.showAugmentation() }),
	)

	listBox := container.NewBorder(
		widget.NewLabelWithStyle("Boxes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil, a.annoList)

	left := container.NewBorder(nil, nil, nil, nil,
		container.NewVSplit(container.NewVScroll(sidebar), listBox))

	right := container.NewBorder(nil, a.statusLabel, nil, nil,
		container.NewScroll(a.boxCanvas))

	split := container.NewHSplit(container.NewPadded(left), container.NewPadded(right))
	split.SetOffset(0.28)
	return split
}

// refresh re-renders the image with its boxes and updates the list snapshot.
// Runs on the UI thread: mouse events and button handlers are the only store
// mutators.
func (a *App) refresh() {
	store := a.ann.Store()
	render.Render(a.rendered, store.Image(), store.List(), a.ann.Classes())
	if store.HasImage() {
		a.boxCanvas.SetImage(a.rendered.Image())
	}
	a.annotations = store.List()
	if a.annoList != nil {
		a.annoList.Refresh()
	}
}

func (a *App) setStatus(format string, args ...any) {
	a.statusLabel.SetText(fmt.Sprintf(format, args...))
}

// loadImage picks a file and asks the backend to compose it onto a canvas
// with the chosen size and placement.
func (a *App) loadImage() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		size, _ := strconv.Atoi(a.sizeSelect.Selected)
		x, _ := strconv.Atoi(a.xEntry.Text)
		y, _ := strconv.Atoi(a.yEntry.Text)
		req := gateway.GenerateRequest{
			ImageName: reader.URI().Name(),
			ImageData: data,
			Size:      size,
			X:         x,
			Y:         y,
			RandomBg:  a.randomBgCheck.Checked,
		}
		a.setStatus("Generating image...")
		go func() {
			err := a.ann.GenerateImage(context.Background(), req)
			fyne.Do(func() {
				if err != nil {
					a.setStatus("")
					dialog.ShowError(err, a.win)
					return
				}
				a.setStatus("Image loaded: %vx%v", a.ann.Store().Width(), a.ann.Store().Height())
			})
		}()
	}, a.win)
}

func (a *App) save() {
	a.ann.SetFilename(a.filenameEntry.Text)
	a.ann.SetSession(a.sessionEntry.Text)
	a.setStatus("Saving...")
	go func() {
		resp, err := a.ann.Save(context.Background())
		fyne.Do(func() {
			if err != nil {
				a.setStatus("")
				dialog.ShowError(err, a.win)
				return
			}
			a.setStatus("Saved %v", resp.UniqueName)
			a.showSaveResult(resp)
			a.refreshSessions()
		})
	}()
}

// saveResultText formats the backend's save response for display: the
// message, the saved names and file paths, and the YOLO label lines exactly
// as the server returned them.
func saveResultText(resp *gateway.SaveResponse) string {
	b := strings.Builder{}
	if resp.Message != "" {
		b.WriteString(resp.Message + "\n\n")
	}
	fmt.Fprintf(&b, "Original name: %v\n", resp.OriginalName)
	fmt.Fprintf(&b, "Saved as: %v\n", resp.UniqueName)
	fmt.Fprintf(&b, "Image: %v\n", resp.Files.Image)
	fmt.Fprintf(&b, "Labels: %v\n", resp.Files.Labels)
	b.WriteString("\nYOLO format:\n")
	b.WriteString(strings.Join(resp.YoloFormat, "\n"))
	return b.String()
}

func (a *App) showSaveResult(resp *gateway.SaveResponse) {
	body := widget.NewLabel(saveResultText(resp))
	body.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.ShowCustom("Annotations Saved", "Close", container.NewVScroll(body), a.win)
}

// refreshSessions re-fetches the session list and shows the current
// session's image/label counts next to the session entry. Runs after every
// successful save and at startup.
func (a *App) refreshSessions() {
	go func() {
		sessions, err := a.ann.Sessions(context.Background())
		fyne.Do(func() {
			if err != nil {
				a.sessionCounts.SetText("")
				return
			}
			current := a.ann.Session()
			for _, s := range sessions {
				if s.Name == current {
					a.sessionCounts.SetText(fmt.Sprintf("%v images, %v labels", s.ImagesCount, s.LabelsCount))
					return
				}
			}
			a.sessionCounts.SetText("new session")
		})
	}()
}
