package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"petclassifier/internal/config"
	"petclassifier/internal/display"
	"petclassifier/internal/ui/cwidget"
)

const previewHeight = 300

type ClassifierApp struct {
	fyneApp fyne.App
	mainWin fyne.Window

	config     *config.Config
	state      *display.State
	controller *Controller
	logger     *zap.Logger

	preview     *cwidget.Preview
	statusLabel *widget.Label
	takeButton  *widget.Button
}

func CreateApp(cfg *config.Config, proc Submitter, logger *zap.Logger) *ClassifierApp {
	a := app.NewWithID("com.petclassifier.app")
	w := a.NewWindow("Pet Image Classifier")

	w.Resize(fyne.NewSize(420, 520))

	state := display.NewState()
	presenter := newSourcePresenter(w, cfg, logger)

	return &ClassifierApp{
		fyneApp:    a,
		mainWin:    w,
		config:     cfg,
		state:      state,
		controller: NewController(state, presenter, proc, fyne.Do, logger),
		logger:     logger.Named("ui"),
	}
}

func (a *ClassifierApp) Run() {
	a.preview = cwidget.NewPreview(previewHeight)

	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.takeButton = widget.NewButtonWithIcon("Take a Picture", theme.MediaPhotoIcon(), a.controller.TakePicture)
	a.takeButton.Importance = widget.SuccessImportance

	a.render(a.state.Snapshot())
	a.state.OnChange(a.render)

	content := container.NewVBox(
		a.preview,
		a.statusLabel,
		container.NewCenter(a.takeButton),
	)

	a.mainWin.SetContent(container.NewPadded(content))

	a.mainWin.SetCloseIntercept(func() {
		a.controller.Stop()
		if err := a.config.SaveByDefault(); err != nil {
			a.logger.Warn("failed to save config", zap.Error(err))
		}
		a.mainWin.Close()
	})

	a.controller.Start()

	a.mainWin.CenterOnScreen()
	a.mainWin.ShowAndRun()
}

// render runs on the UI goroutine: all state changes are dispatched there.
func (a *ClassifierApp) render(snap display.Snapshot) {
	a.preview.SetImage(snap.Image)
	a.statusLabel.SetText(snap.Text)

	if snap.Phase == display.Capturing {
		a.takeButton.Disable()
	} else {
		a.takeButton.Enable()
	}
}
