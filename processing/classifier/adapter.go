package classifier

import (
	"image"

	"go.uber.org/zap"

	"petclassifier/internal/models"
)

// Adapter runs the bundled model against a captured image and keeps the top candidate.
type Adapter struct {
	loader Loader
	logger *zap.Logger
}

func NewAdapter(loader Loader, logger *zap.Logger) *Adapter {
	return &Adapter{
		loader: loader,
		logger: logger.Named("classifier"),
	}
}

// Classify returns the highest-confidence prediction for img. Every failure is an *Error.
func (a *Adapter) Classify(img image.Image) (models.Prediction, error) {
	rgba, err := toRGBA(img)
	if err != nil {
		a.logger.Debug("image conversion failed", zap.Error(err))
		return models.Prediction{}, newError(models.FailureConversion, err)
	}

	model, err := a.loader.Load()
	if err != nil {
		a.logger.Warn("model load failed", zap.Error(err))
		return models.Prediction{}, newError(models.FailureModelLoad, err)
	}

	ranked, err := model.Predict(tensor(rgba, model.InputSize, model.Mean, model.Std))
	if err != nil {
		a.logger.Debug("inference failed", zap.Error(err))
		return models.Prediction{}, newError(models.FailureNoResult, err)
	}
	if len(ranked) == 0 {
		return models.Prediction{}, newError(models.FailureNoResult, nil)
	}

	top := ranked[0]
	a.logger.Debug("classified",
		zap.String("model", model.Name),
		zap.String("label", top.Label),
		zap.Float64("confidence", top.Confidence),
	)

	return models.Prediction{Label: top.Label, Confidence: top.Confidence}, nil
}
