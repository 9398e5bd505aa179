package config

import (
	"encoding/json"
	"os"
	"runtime"
	"sync"
)

type SourceType string

const (
	SourceLocal  SourceType = "Local"
	SourceWebcam SourceType = "Web-Camera"

	DefaultConfigPath string = "config.json"
)

var SourcesList = [...]string{
	string(SourceLocal),
	string(SourceWebcam),
}

type LocalConfig struct {
	Dir string `json:"dir"`
}

type WebcamConfig struct {
	DeviceID string `json:"device_id"`
}

type Config struct {
	mu sync.RWMutex

	ActiveSource  SourceType `json:"active_source"`
	CaptureWidth  int        `json:"capture_width"`
	CaptureHeight int        `json:"capture_height"`

	// ModelPath points at a JSON model file; empty means the bundled model.
	ModelPath string `json:"model_path"`
	LogLevel  string `json:"log_level"`

	Local  LocalConfig  `json:"local"`
	Webcam WebcamConfig `json:"webcam"`
}

func (c *Config) GetSource() SourceType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ActiveSource
}

func (c *Config) SetSource(s SourceType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ActiveSource = s
}

func (c *Config) GetWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CaptureWidth
}

func (c *Config) GetHeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CaptureHeight
}

func (c *Config) GetDeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Webcam.DeviceID
}

func (c *Config) SetDeviceID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Webcam.DeviceID = id
}

func (c *Config) GetLocalDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Local.Dir
}

func (c *Config) SetLocalDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Local.Dir = dir
}

func (c *Config) GetModelPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ModelPath
}

func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func (c *Config) SaveByDefault() error {
	return c.Save(DefaultConfigPath)
}

// LoadConfigFile returns the defaults overlaid with whatever path holds.
// A missing or unreadable file yields the defaults.
func LoadConfigFile(path string) *Config {
	cfg := NewDefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return NewDefaultConfig()
	}

	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	def := NewDefaultConfig()
	if c.ActiveSource != SourceLocal && c.ActiveSource != SourceWebcam {
		c.ActiveSource = def.ActiveSource
	}
	if c.CaptureWidth <= 0 {
		c.CaptureWidth = def.CaptureWidth
	}
	if c.CaptureHeight <= 0 {
		c.CaptureHeight = def.CaptureHeight
	}
}

func NewDefaultConfig() *Config {
	return &Config{
		ActiveSource:  SourceWebcam,
		CaptureWidth:  640,
		CaptureHeight: 480,
		LogLevel:      "info",
		Webcam:        WebcamConfig{DeviceID: defaultDeviceID()},
	}
}

func defaultDeviceID() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	return "/dev/video0"
}
