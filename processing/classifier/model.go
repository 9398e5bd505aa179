package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"petclassifier/assets"
	"petclassifier/internal/models"
)

// Model is a linear classifier over a downscaled RGB image followed by softmax.
type Model struct {
	Name      string      `json:"name"`
	Labels    []string    `json:"labels"`
	InputSize int         `json:"input_size"`
	Mean      [3]float64  `json:"mean"`
	Std       [3]float64  `json:"std"`
	Weights   [][]float32 `json:"weights"`
	Bias      []float32   `json:"bias"`
}

func (m *Model) features() int {
	return 3 * m.InputSize * m.InputSize
}

func (m *Model) validate() error {
	if len(m.Labels) == 0 {
		return errors.New("model has no labels")
	}
	for i, l := range m.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("label %d is empty", i)
		}
	}
	if m.InputSize <= 0 {
		return fmt.Errorf("invalid input size %d", m.InputSize)
	}
	for c, s := range m.Std {
		if s <= 0 {
			return fmt.Errorf("std[%d] must be positive, got %v", c, s)
		}
	}
	if len(m.Weights) != len(m.Labels) {
		return fmt.Errorf("weights have %d rows, want %d", len(m.Weights), len(m.Labels))
	}
	n := m.features()
	for i, row := range m.Weights {
		if len(row) != n {
			return fmt.Errorf("weights row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if len(m.Bias) != len(m.Labels) {
		return fmt.Errorf("bias has %d entries, want %d", len(m.Bias), len(m.Labels))
	}
	return nil
}

// Predict returns every label ranked by descending confidence.
func (m *Model) Predict(x []float32) ([]models.Candidate, error) {
	if len(x) != m.features() {
		return nil, fmt.Errorf("input has %d features, want %d", len(x), m.features())
	}

	logits := make([]float64, len(m.Labels))
	maxLogit := math.Inf(-1)
	for i, row := range m.Weights {
		sum := float64(m.Bias[i])
		for j, w := range row {
			sum += float64(w) * float64(x[j])
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, fmt.Errorf("non-finite score for %q", m.Labels[i])
		}
		logits[i] = sum
		maxLogit = math.Max(maxLogit, sum)
	}

	var total float64
	for i, l := range logits {
		logits[i] = math.Exp(l - maxLogit)
		total += logits[i]
	}

	out := make([]models.Candidate, len(m.Labels))
	for i, label := range m.Labels {
		out[i] = models.Candidate{Label: label, Confidence: logits[i] / total}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	return out, nil
}

// ParseModel decodes and validates a JSON model.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Loader provides the model used for inference.
type Loader interface {
	Load() (*Model, error)
}

// FSLoader reads a model file from a file system.
type FSLoader struct {
	FS   fs.FS
	Path string
}

// BundledLoader reads the model embedded in the binary.
func BundledLoader() FSLoader {
	return FSLoader{FS: assets.FS, Path: assets.ModelFile}
}

// FileLoader reads a model from disk.
func FileLoader(path string) FSLoader {
	return FSLoader{FS: os.DirFS(filepath.Dir(path)), Path: filepath.Base(path)}
}

// NewLoader picks the disk model when path is set and the bundled one otherwise.
func NewLoader(path string) Loader {
	if path == "" {
		return NewCachedLoader(BundledLoader())
	}
	return NewCachedLoader(FileLoader(path))
}

func (l FSLoader) Load() (*Model, error) {
	data, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return nil, err
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return m, nil
}

// CachedLoader memoises the first successful load. Failures are retried on the next call.
type CachedLoader struct {
	mu    sync.Mutex
	inner Loader
	model *Model
}

func NewCachedLoader(inner Loader) *CachedLoader {
	return &CachedLoader{inner: inner}
}

func (c *CachedLoader) Load() (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}

	m, err := c.inner.Load()
	if err != nil {
		return nil, err
	}
	c.model = m
	return m, nil
}
