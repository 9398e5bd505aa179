package ui

import (
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"go.uber.org/zap"

	"petclassifier/internal/config"
	"petclassifier/processing/capture"
)

// sourcePresenter picks the capture sheet for the configured source on every request.
type sourcePresenter struct {
	webcam *webcamSheet
	file   *fileSheet
	cfg    *config.Config
}

func newSourcePresenter(win fyne.Window, cfg *config.Config, logger *zap.Logger) *sourcePresenter {
	return &sourcePresenter{
		webcam: &webcamSheet{win: win, cfg: cfg, logger: logger.Named("webcam")},
		file:   &fileSheet{win: win, cfg: cfg, logger: logger.Named("file")},
		cfg:    cfg,
	}
}

func (p *sourcePresenter) Present(onDone func(image.Image, error)) {
	if p.cfg.GetSource() == config.SourceLocal {
		p.file.Present(onDone)
		return
	}
	p.webcam.Present(onDone)
}

// webcamSheet is a modal dialog with a live camera preview and a Capture button.
type webcamSheet struct {
	win    fyne.Window
	cfg    *config.Config
	logger *zap.Logger
}

func (s *webcamSheet) Present(onDone func(image.Image, error)) {
	if s.cfg.GetDeviceID() == "" {
		devices, err := capture.ListCameras()
		if err == nil && len(devices) > 0 {
			s.cfg.SetDeviceID(devices[0])
		}
	}

	streamer, err := capture.NewStreamer(s.cfg)
	if err == nil {
		err = streamer.Start()
	}
	if err != nil {
		dialog.ShowError(err, s.win)
		onDone(nil, err)
		return
	}

	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(480, 360))

	session := newWebcamSession(streamer, fyne.Do, onDone)

	d := dialog.NewCustomConfirm("Take a Picture", "Capture", "Cancel", preview, session.confirm, s.win)

	session.watch(
		func(frame image.Image) {
			preview.Image = frame
			preview.Refresh()
		},
		func(err error) {
			s.logger.Warn("camera stream stopped", zap.Error(err), zap.String("device", s.cfg.GetDeviceID()))
			session.fail(err)
			d.Hide()
			dialog.ShowError(err, s.win)
		},
	)

	d.Resize(fyne.NewSize(560, 480))
	d.Show()
}

// fileSheet picks a still picture from disk.
type fileSheet struct {
	win    fyne.Window
	cfg    *config.Config
	logger *zap.Logger
}

func (s *fileSheet) Present(onDone func(image.Image, error)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			onDone(nil, err)
			return
		}
		if reader == nil {
			onDone(nil, capture.ErrCancelled)
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		s.cfg.SetLocalDir(filepath.Dir(path))

		img, err := capture.DecodeImage(reader)
		if err != nil {
			// Still a capture: classification reports it as a conversion failure.
			s.logger.Warn("picked file is not a picture", zap.Error(err), zap.String("path", path))
			onDone(nil, nil)
			return
		}
		onDone(img, nil)
	}, s.win)

	d.SetFilter(storage.NewExtensionFileFilter(capture.ImageExtensions))

	if dir := s.cfg.GetLocalDir(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		}
	}

	d.Show()
}
