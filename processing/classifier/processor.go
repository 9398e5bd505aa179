package classifier

import (
	"errors"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"petclassifier/internal/logging"
	"petclassifier/internal/models"
)

var ErrStopped = errors.New("processor stopped")

// Classifier is the synchronous classification call the processor offloads.
type Classifier interface {
	Classify(img image.Image) (models.Prediction, error)
}

type Request struct {
	Seq       uint64
	RequestID string
	Image     image.Image
}

type Completion struct {
	Seq       uint64
	RequestID string
	Outcome   models.Outcome
	Latency   time.Duration
}

// Processor runs classifications one at a time off the caller's goroutine.
// Each request runs to completion; there is no cancellation and no timeout.
type Processor struct {
	InRequests chan Request
	OutResults chan Completion

	StopChan chan struct{}

	clf    Classifier
	logger *zap.Logger

	stopOnce  sync.Once
	startOnce sync.Once
}

func NewProcessor(clf Classifier, logger *zap.Logger) *Processor {
	return &Processor{
		clf:        clf,
		logger:     logger.Named("processor"),
		InRequests: make(chan Request, 4),
		OutResults: make(chan Completion, 4),
		StopChan:   make(chan struct{}),
	}
}

func (p *Processor) Start() {
	p.startOnce.Do(func() {
		go p.run()
	})
}

func (p *Processor) Stop() {
	p.stopOnce.Do(func() {
		close(p.StopChan)
	})
}

// Submit queues req. It fails only after Stop.
func (p *Processor) Submit(req Request) error {
	select {
	case <-p.StopChan:
		return ErrStopped
	default:
	}

	select {
	case p.InRequests <- req:
		return nil
	case <-p.StopChan:
		return ErrStopped
	}
}

func (p *Processor) Results() <-chan Completion {
	return p.OutResults
}

func (p *Processor) run() {
	for {
		select {
		case req := <-p.InRequests:
			c := p.process(req)

			select {
			case p.OutResults <- c:
			case <-p.StopChan:
				return
			}

		case <-p.StopChan:
			return
		}
	}
}

func (p *Processor) process(req Request) Completion {
	opLogger := logging.WithOperation(p.logger, "classifier.classify", req.RequestID)

	start := time.Now()
	pred, err := p.clf.Classify(req.Image)
	latency := time.Since(start)

	if err != nil {
		opLogger.Info("classification failed",
			zap.Error(logging.NewOperationError("classifier.classify", req.RequestID, err)),
			zap.Uint64("seq", req.Seq),
			zap.Duration("latency", latency),
		)
	} else {
		opLogger.Info("classification finished",
			zap.String("label", pred.Label),
			zap.Float64("confidence", pred.Confidence),
			zap.Uint64("seq", req.Seq),
			zap.Duration("latency", latency),
		)
	}

	return Completion{
		Seq:       req.Seq,
		RequestID: req.RequestID,
		Outcome:   OutcomeOf(pred, err),
		Latency:   latency,
	}
}
