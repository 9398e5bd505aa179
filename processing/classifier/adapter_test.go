package classifier

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petclassifier/internal/models"
)

type staticLoader struct {
	model *Model
	err   error
}

func (s staticLoader) Load() (*Model, error) {
	return s.model, s.err
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func gradientImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(10, 20, 10+w, 20+h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(10+x, 20+y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestClassifyBundledModel(t *testing.T) {
	a := NewAdapter(BundledLoader(), zap.NewNop())

	pred, err := a.Classify(gradientImage(64, 48))
	require.NoError(t, err)

	assert.NotEmpty(t, pred.Label)
	assert.GreaterOrEqual(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestClassifyIsDeterministic(t *testing.T) {
	a := NewAdapter(NewCachedLoader(BundledLoader()), zap.NewNop())
	img := gradientImage(120, 90)

	first, err := a.Classify(img)
	require.NoError(t, err)
	second, err := a.Classify(img)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassifyPicksTopCandidate(t *testing.T) {
	m, err := ParseModel([]byte(tinyModel))
	require.NoError(t, err)
	a := NewAdapter(staticLoader{model: m}, zap.NewNop())

	pred, err := a.Classify(solidImage(4, 4, color.RGBA{255, 0, 0, 255}))
	require.NoError(t, err)
	assert.Equal(t, "tabby_cat", pred.Label)

	pred, err = a.Classify(solidImage(4, 4, color.RGBA{0, 0, 255, 255}))
	require.NoError(t, err)
	assert.Equal(t, "beagle", pred.Label)
	assert.InDelta(t, math.E/(math.E+1), pred.Confidence, 1e-2)
}

func TestClassifyConversionErrors(t *testing.T) {
	var typedNil *image.RGBA

	cases := map[string]image.Image{
		"nil":       nil,
		"typed nil": typedNil,
		"empty":     image.NewRGBA(image.Rect(0, 0, 0, 0)),
		"no pixels": &image.RGBA{Rect: image.Rect(0, 0, 8, 8), Stride: 32},
	}

	a := NewAdapter(BundledLoader(), zap.NewNop())
	for name, img := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.Classify(img)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConversion)
			assert.Equal(t, models.Failed{Kind: models.FailureConversion}, OutcomeOf(models.Prediction{}, err))
		})
	}
}

func TestClassifyConversionCheckedBeforeModel(t *testing.T) {
	a := NewAdapter(staticLoader{err: errors.New("missing")}, zap.NewNop())

	_, err := a.Classify(nil)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestClassifyModelLoadError(t *testing.T) {
	a := NewAdapter(FSLoader{FS: fstest.MapFS{}, Path: "model.json"}, zap.NewNop())

	_, err := a.Classify(solidImage(2, 2, color.White))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelLoad)
	assert.NotErrorIs(t, err, ErrNoResult)
}

func TestClassifyIncompatibleModel(t *testing.T) {
	fsys := fstest.MapFS{"model.json": {Data: []byte(`{"labels":["a"],"input_size":2,"std":[1,1,1],"weights":[[1]],"bias":[0]}`)}}
	a := NewAdapter(FSLoader{FS: fsys, Path: "model.json"}, zap.NewNop())

	_, err := a.Classify(solidImage(2, 2, color.White))
	assert.ErrorIs(t, err, ErrModelLoad)
}

func TestClassifyNoResult(t *testing.T) {
	m, err := ParseModel([]byte(tinyModel))
	require.NoError(t, err)
	m.Bias[0] = float32(math.NaN())

	a := NewAdapter(staticLoader{model: m}, zap.NewNop())

	_, err = a.Classify(solidImage(2, 2, color.White))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResult)
	assert.Equal(t, models.Failed{Kind: models.FailureNoResult}, OutcomeOf(models.Prediction{}, err))
}

func TestOutcomeOf(t *testing.T) {
	p := models.Prediction{Label: "beagle", Confidence: 0.5}

	assert.Equal(t, models.Labeled{Prediction: p}, OutcomeOf(p, nil))
	assert.Equal(t, models.Failed{Kind: models.FailureModelLoad}, OutcomeOf(p, newError(models.FailureModelLoad, nil)))
	assert.Equal(t, models.Failed{Kind: models.FailureNoResult}, OutcomeOf(p, errors.New("other")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "model failed to load", newError(models.FailureModelLoad, nil).Error())
	assert.Equal(t, "image conversion failed: nil image", newError(models.FailureConversion, errors.New("nil image")).Error())
}
