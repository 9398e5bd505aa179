package ui

import (
	"image"
	"sync"

	"petclassifier/processing/capture"
)

// webcamSession tracks one open camera dialog. It finishes exactly once:
// on Capture, on Cancel, or when the stream breaks.
type webcamSession struct {
	streamer capture.VideoStreamer
	dispatch func(fn func())
	onDone   func(image.Image, error)

	mu   sync.Mutex
	last image.Image

	stopChan   chan struct{}
	finishOnce sync.Once
}

func newWebcamSession(streamer capture.VideoStreamer, dispatch func(func()), onDone func(image.Image, error)) *webcamSession {
	return &webcamSession{
		streamer: streamer,
		dispatch: dispatch,
		onDone:   onDone,
		stopChan: make(chan struct{}),
	}
}

// watch forwards frames to onFrame and a stream error to onFailure, both through dispatch.
func (s *webcamSession) watch(onFrame func(image.Image), onFailure func(error)) {
	go func() {
		frames := s.streamer.FrameChan()
		errs := s.streamer.ErrorChan()

		for frames != nil || errs != nil {
			select {
			case frame, ok := <-frames:
				if !ok {
					frames = nil
					continue
				}
				s.mu.Lock()
				s.last = frame
				s.mu.Unlock()

				s.dispatch(func() {
					onFrame(frame)
				})

			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if err != nil {
					s.dispatch(func() {
						onFailure(err)
					})
				}
				return

			case <-s.stopChan:
				return
			}
		}
	}()
}

// confirm ends the session from the dialog buttons.
func (s *webcamSession) confirm(confirmed bool) {
	s.mu.Lock()
	img := s.last
	s.mu.Unlock()

	if !confirmed || img == nil {
		s.finish(nil, capture.ErrCancelled)
		return
	}
	s.finish(img, nil)
}

func (s *webcamSession) fail(err error) {
	s.finish(nil, err)
}

func (s *webcamSession) finish(img image.Image, err error) {
	s.finishOnce.Do(func() {
		close(s.stopChan)
		s.streamer.Stop()
		s.onDone(img, err)
	})
}
