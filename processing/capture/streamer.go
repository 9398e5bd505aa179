package capture

import (
	"errors"
	"image"
)

// ErrCancelled is reported when the user closes the camera without taking a picture.
var ErrCancelled = errors.New("capture cancelled")

// Presenter shows a modal capture UI and calls onDone exactly once,
// with the image on confirmation or ErrCancelled on dismissal.
// A confirmed capture may carry a nil image when the source produced
// something that is not a picture.
type Presenter interface {
	Present(onDone func(img image.Image, err error))
}

// VideoStreamer feeds live frames to the capture preview.
type VideoStreamer interface {
	Start() error
	Stop()
	FrameChan() <-chan image.Image
	ErrorChan() <-chan error
}
