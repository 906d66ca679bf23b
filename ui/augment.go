package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
)

// augmentOutcome maps the poll result to a status line, and says whether it
// deserves an error dialog. Stopping the poller is how the dialog's close
// button cancels, so it is not an error worth reporting.
func augmentOutcome(err error) (status string, report bool) {
	switch {
	case err == nil:
		return "Augmentation complete", false
	case errors.Is(err, gateway.ErrPollerStopped):
		return "Augmentation cancelled", false
	default:
		return "Augmentation failed", true
	}
}

// showAugmentation opens the augmentation dialog for the current session:
// pick variants, start the job, and watch a progress bar fed by the poller.
func (a *App) showAugmentation() {
	session := a.ann.Session()

	checks := container.NewVBox()
	progress := widget.NewProgressBar()
	progress.Hide()
	status := widget.NewLabel(fmt.Sprintf("Session: %v", session))

	var startBtn *widget.Button
	var poller *gateway.Poller
	selectedVariants := map[string]bool{}

	startBtn = widget.NewButton("Start Augmentation", func() {
		variants := []string{}
		for key, on := range selectedVariants {
			if on {
				variants = append(variants, key)
			}
		}
		sort.Strings(variants)
		if len(variants) == 0 {
			status.SetText("Pick at least one variant")
			return
		}
		startBtn.Disable()
		progress.SetValue(0)
		progress.Show()
		status.SetText("Augmenting...")
		poller = gateway.NewPoller(a.client, session)
		go func() {
			err := a.client.StartAugmentation(context.Background(), session, variants)
			if err == nil {
				_, err = poller.Run(context.Background(), func(p gateway.Progress) {
					fyne.Do(func() {
						if p.Total > 0 {
							progress.SetValue(float64(p.Current) / float64(p.Total))
						}
						status.SetText(fmt.Sprintf("Augmenting %v / %v", p.Current, p.Total))
					})
				})
			}
			fyne.Do(func() {
				poller = nil
				startBtn.Enable()
				text, report := augmentOutcome(err)
				status.SetText(text)
				if report {
					progress.Hide()
					dialog.ShowError(err, a.win)
					return
				}
				if err == nil {
					progress.SetValue(1)
				}
			})
		}()
	})

	content := container.NewVBox(status, widget.NewSeparator(), checks, startBtn, progress)
	d := dialog.NewCustom("Augment Session", "Close", content, a.win)
	d.SetOnClosed(func() {
		if poller != nil {
			poller.Stop()
		}
	})
	d.Resize(fyne.NewSize(420, 380))
	d.Show()

	// variant list comes from the backend so new variants need no UI change
	go func() {
		info, err := a.client.AugmentationInfo(context.Background(), session)
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, a.win)
				return
			}
			keys := make([]string, 0, len(info))
			for key := range info {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				v := info[key]
				key := key
				check := widget.NewCheck(fmt.Sprintf("%v %v", v.Icon, v.Name), func(on bool) {
					selectedVariants[key] = on
				})
				checks.Add(container.NewVBox(check, widget.NewLabel(v.Description)))
			}
			checks.Refresh()
		})
	}()
}
