package models

// Candidate is one ranked entry of a classifier output.
type Candidate struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Prediction is the top candidate kept for display.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// FailureKind names the ways a classification can fail.
type FailureKind int

const (
	FailureConversion FailureKind = iota + 1
	FailureModelLoad
	FailureNoResult
)

func (k FailureKind) String() string {
	switch k {
	case FailureConversion:
		return "conversion"
	case FailureModelLoad:
		return "model_load"
	case FailureNoResult:
		return "no_result"
	default:
		return "unknown"
	}
}

// Outcome is the result of a finished classification: either Labeled or Failed.
type Outcome interface {
	isOutcome()
}

type Labeled struct {
	Prediction Prediction
}

type Failed struct {
	Kind FailureKind
}

func (Labeled) isOutcome() {}
func (Failed) isOutcome()  {}
