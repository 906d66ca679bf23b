package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/annotator"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
)

// showSessions opens the session manager: every saved session with its
// image/label counts, plus download, visualize and delete actions.
func (a *App) showSessions() {
	var sessions []gateway.SessionInfo
	selected := -1

	list := widget.NewList(
		func() int { return len(sessions) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			s := sessions[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%v  (%v images, %v labels)", s.Name, s.ImagesCount, s.LabelsCount))
		},
	)
	list.OnSelected = func(i widget.ListItemID) { selected = i }

	reload := func() {
		go func() {
			fetched, err := a.ann.Sessions(context.Background())
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, a.win)
					return
				}
				sessions = fetched
				selected = -1
				list.UnselectAll()
				list.Refresh()
			})
		}()
	}

	pick := func() (gateway.SessionInfo, bool) {
		if selected < 0 || selected >= len(sessions) {
			a.setStatus("Select a session first")
			return gateway.SessionInfo{}, false
		}
		return sessions[selected], true
	}

	downloadBtn := widget.NewButtonWithIcon("Download ZIP", theme.DownloadIcon(), func() {
		s, ok := pick()
		if !ok {
			return
		}
		dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			go func() {
				defer wc.Close()
				n, err := a.client.DownloadSession(context.Background(), s.Name, wc)
				fyne.Do(func() {
					if err != nil {
						dialog.ShowError(err, a.win)
						return
					}
					a.setStatus("Downloaded %v (%v bytes)", s.Name, n)
				})
			}()
		}, a.win)
	})

	visualizeBtn := widget.NewButtonWithIcon("Visualize", theme.MediaPhotoIcon(), func() {
		s, ok := pick()
		if !ok {
			return
		}
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			go func() {
				n, err := a.visualizeToDir(s.Name, uri.Path())
				fyne.Do(func() {
					if err != nil {
						dialog.ShowError(err, a.win)
						return
					}
					a.setStatus("Wrote %v annotated images for %v", n, s.Name)
				})
			}()
		}, a.win)
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		s, ok := pick()
		if !ok {
			return
		}
		dialog.ShowConfirm("Delete session",
			fmt.Sprintf("Delete session %q and all of its images and labels?", s.Name),
			func(yes bool) {
				if !yes {
					return
				}
				go func() {
					err := a.client.DeleteSession(context.Background(), s.Name)
					fyne.Do(func() {
						if err != nil {
							dialog.ShowError(err, a.win)
							return
						}
						a.setStatus("Deleted session %v", s.Name)
						reload()
					})
				}()
			}, a.win)
	})

	buttons := container.NewHBox(downloadBtn, visualizeBtn, deleteBtn,
		widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), reload))
	content := container.NewBorder(nil, buttons, nil, nil, list)

	d := dialog.NewCustom("Sessions", "Close", content, a.win)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
	reload()
}

// visualizeToDir fetches the session's images with their stored labels drawn
// on, and writes one PNG per image into dir.
func (a *App) visualizeToDir(session, dir string) (int, error) {
	resp, err := a.client.VisualizeSession(context.Background(), session)
	if err != nil {
		return 0, err
	}
	written := 0
	for _, vi := range resp.Images {
		img := annotator.RenderVisualizerImage(vi, a.ann.Classes())
		base := strings.TrimSuffix(vi.Filename, filepath.Ext(vi.Filename))
		fn := filepath.Join(dir, base+"_annotated.png")
		f, err := os.Create(fn)
		if err != nil {
			return written, err
		}
		err = imageio.Encode(f, img, "png")
		f.Close()
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
