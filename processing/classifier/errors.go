package classifier

import (
	"errors"
	"fmt"

	"petclassifier/internal/models"
)

var (
	ErrConversion = errors.New("image conversion failed")
	ErrModelLoad  = errors.New("model failed to load")
	ErrNoResult   = errors.New("no classification result")
)

// Error is returned by Classify. Kind selects which of the sentinels it matches.
type Error struct {
	Kind models.FailureKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return sentinel(e.Kind).Error()
	}
	return fmt.Sprintf("%v: %v", sentinel(e.Kind), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(kind models.FailureKind) error {
	switch kind {
	case models.FailureConversion:
		return ErrConversion
	case models.FailureModelLoad:
		return ErrModelLoad
	default:
		return ErrNoResult
	}
}

func newError(kind models.FailureKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// OutcomeOf folds a Classify return pair into a typed outcome.
// Errors that are not *Error count as no result.
func OutcomeOf(p models.Prediction, err error) models.Outcome {
	if err == nil {
		return models.Labeled{Prediction: p}
	}

	var ce *Error
	if errors.As(err, &ce) {
		return models.Failed{Kind: ce.Kind}
	}
	return models.Failed{Kind: models.FailureNoResult}
}
