package display

import (
	"fmt"
	"strings"
	"unicode"

	"petclassifier/internal/models"
)

type MessageKind int

const (
	MessagePlaceholder MessageKind = iota
	MessageLabel
	MessageNoResult
	MessageModelLoad
	MessageConversion
)

const (
	PlaceholderText = "Tap the button to take a picture"
	NoResultText    = "Could not classify image"
	ModelLoadText   = "Failed to load ML model"
	ConversionText  = "Unable to convert image"
)

func (k MessageKind) String() string {
	switch k {
	case MessagePlaceholder:
		return "placeholder"
	case MessageLabel:
		return "label"
	case MessageNoResult:
		return "no_result"
	case MessageModelLoad:
		return "model_load"
	case MessageConversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// FormatPrediction renders p as "Label (NN.NN%)".
func FormatPrediction(p models.Prediction) string {
	return fmt.Sprintf("%s (%.2f%%)", Capitalize(p.Label), p.Confidence*100)
}

// Capitalize upper-cases the first letter of every word and lower-cases the rest.
// Any rune that is not a letter or digit ends a word and is kept as is.
func Capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	start := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteRune(r)
			start = true
			continue
		}
		if start {
			b.WriteRune(unicode.ToTitle(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		start = false
	}

	return b.String()
}

func messageFor(o models.Outcome) (MessageKind, string, bool) {
	switch o := o.(type) {
	case models.Labeled:
		return MessageLabel, FormatPrediction(o.Prediction), true
	case models.Failed:
		switch o.Kind {
		case models.FailureConversion:
			return MessageConversion, ConversionText, true
		case models.FailureModelLoad:
			return MessageModelLoad, ModelLoadText, true
		default:
			return MessageNoResult, NoResultText, true
		}
	default:
		return 0, "", false
	}
}
