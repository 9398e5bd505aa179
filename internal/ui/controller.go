package ui

import (
	"errors"
	"image"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petclassifier/internal/display"
	"petclassifier/internal/logging"
	"petclassifier/processing/capture"
	"petclassifier/processing/classifier"
)

// Submitter is the asynchronous side of classification.
type Submitter interface {
	Submit(req classifier.Request) error
	Results() <-chan classifier.Completion
}

// Controller connects the capture button, the camera and the classifier to the display state.
// dispatch must run fn on the UI goroutine; every state change happens inside it.
type Controller struct {
	state     *display.State
	presenter capture.Presenter
	proc      Submitter
	dispatch  func(fn func())
	logger    *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewController(state *display.State, presenter capture.Presenter, proc Submitter, dispatch func(func()), logger *zap.Logger) *Controller {
	return &Controller{
		state:     state,
		presenter: presenter,
		proc:      proc,
		dispatch:  dispatch,
		logger:    logger.Named("controller"),
		stopChan:  make(chan struct{}),
	}
}

// TakePicture opens the camera unless it is already open.
func (c *Controller) TakePicture() {
	if _, ok := c.state.Apply(display.CaptureRequested{}); !ok {
		return
	}

	c.presenter.Present(func(img image.Image, err error) {
		c.dispatch(func() {
			c.captured(img, err)
		})
	})
}

func (c *Controller) captured(img image.Image, err error) {
	if err != nil {
		if !errors.Is(err, capture.ErrCancelled) {
			c.logger.Warn("capture failed", zap.Error(logging.NewOperationError("capture.present", "", err)))
		}
		c.state.Apply(display.CaptureCancelled{})
		return
	}

	snap, ok := c.state.Apply(display.ImageCaptured{Image: img})
	if !ok {
		return
	}

	req := classifier.Request{Seq: snap.Seq, RequestID: uuid.NewString(), Image: img}
	logging.WithOperation(c.logger, "controller.submit", req.RequestID).Debug("image captured", zap.Uint64("seq", req.Seq))

	if err := c.proc.Submit(req); err != nil {
		c.logger.Error("submit failed", zap.Error(logging.NewOperationError("controller.submit", req.RequestID, err)))
	}
}

// Start forwards finished classifications to the state until Stop.
func (c *Controller) Start() {
	go func() {
		results := c.proc.Results()
		for {
			select {
			case comp, ok := <-results:
				if !ok {
					return
				}
				c.dispatch(func() {
					c.finished(comp)
				})
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *Controller) finished(comp classifier.Completion) {
	if _, ok := c.state.Apply(display.ClassificationFinished{Seq: comp.Seq, Outcome: comp.Outcome}); !ok {
		logging.WithOperation(c.logger, "controller.finished", comp.RequestID).Debug("stale result dropped", zap.Uint64("seq", comp.Seq))
	}
}

func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}
