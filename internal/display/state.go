// Package display holds the state behind the single application screen.
//
// All changes go through State.Apply so the phase, the shown image and the
// status message always move together.
package display

import (
	"image"
	"sync"

	"petclassifier/internal/models"
)

type Phase int

const (
	Idle Phase = iota
	Capturing
	Classifying
	Labeled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Classifying:
		return "classifying"
	case Labeled:
		return "labeled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the state at one point in time.
type Snapshot struct {
	Phase   Phase
	Image   image.Image
	Message MessageKind
	Text    string
	// Seq is the sequence number of the latest captured image, 0 before the first capture.
	Seq uint64
}

type Event interface {
	apply(s *State) bool
}

// CaptureRequested opens the camera. Ignored while a capture is already open.
type CaptureRequested struct{}

// CaptureCancelled closes the camera without an image. Image and message are kept.
type CaptureCancelled struct{}

// ImageCaptured replaces the shown image and starts a new classification sequence.
type ImageCaptured struct {
	Image image.Image
}

// ClassificationFinished carries the outcome for the image captured as Seq.
type ClassificationFinished struct {
	Seq     uint64
	Outcome models.Outcome
}

type State struct {
	mu sync.Mutex

	phase   Phase
	resume  Phase
	image   image.Image
	message MessageKind
	text    string
	seq     uint64

	onChange func(Snapshot)
}

func NewState() *State {
	return &State{
		phase:   Idle,
		message: MessagePlaceholder,
		text:    PlaceholderText,
	}
}

// OnChange registers fn to receive every applied snapshot.
func (s *State) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Apply is the only way to mutate the state. It reports whether ev changed anything.
func (s *State) Apply(ev Event) (Snapshot, bool) {
	s.mu.Lock()
	applied := ev.apply(s)
	snap := s.snapshot()
	fn := s.onChange
	s.mu.Unlock()

	if applied && fn != nil {
		fn(snap)
	}
	return snap, applied
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Phase:   s.phase,
		Image:   s.image,
		Message: s.message,
		Text:    s.text,
		Seq:     s.seq,
	}
}

func (CaptureRequested) apply(s *State) bool {
	if s.phase == Capturing {
		return false
	}
	s.resume = s.phase
	s.phase = Capturing
	return true
}

func (CaptureCancelled) apply(s *State) bool {
	if s.phase != Capturing {
		return false
	}
	s.phase = s.resume
	return true
}

func (e ImageCaptured) apply(s *State) bool {
	if s.phase != Capturing {
		return false
	}
	s.image = e.Image
	s.seq++
	s.phase = Classifying
	return true
}

func (e ClassificationFinished) apply(s *State) bool {
	if e.Seq == 0 || e.Seq != s.seq {
		return false
	}

	kind, text, ok := messageFor(e.Outcome)
	if !ok {
		return false
	}
	s.message = kind
	s.text = text

	next := Failed
	if kind == MessageLabel {
		next = Labeled
	}

	// A new capture may already be open; the result lands behind it.
	if s.phase == Capturing {
		s.resume = next
	} else {
		s.phase = next
	}
	return true
}
