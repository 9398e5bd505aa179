package cwidget

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const PlaceholderText = "No Image Captured"

// Preview shows the last captured picture, or a grey panel before the first one.
type Preview struct {
	widget.BaseWidget

	imageCanvas *canvas.Image
	placeholder *fyne.Container

	Height float32
}

func NewPreview(height float32) *Preview {
	p := &Preview{Height: height}

	p.imageCanvas = canvas.NewImageFromImage(nil)
	p.imageCanvas.FillMode = canvas.ImageFillContain
	p.imageCanvas.SetMinSize(fyne.NewSize(height, height))
	p.imageCanvas.Hidden = true

	panel := canvas.NewRectangle(color.NRGBA{R: 128, G: 128, B: 128, A: 77})
	panel.SetMinSize(fyne.NewSize(height, height))

	p.placeholder = container.NewStack(
		panel,
		container.NewCenter(widget.NewLabel(PlaceholderText)),
	)

	p.ExtendBaseWidget(p)

	return p
}

func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	c := container.NewStack(
		p.placeholder,
		p.imageCanvas,
	)

	return widget.NewSimpleRenderer(c)
}

// SetImage swaps the shown picture. A nil image brings the placeholder back.
func (p *Preview) SetImage(img image.Image) {
	p.imageCanvas.Image = img
	p.imageCanvas.Hidden = img == nil
	p.placeholder.Hidden = img != nil

	p.imageCanvas.Refresh()
	p.Refresh()
}

func (p *Preview) HasImage() bool {
	return !p.imageCanvas.Hidden
}
