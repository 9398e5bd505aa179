package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileMissingReturnsDefaults(t *testing.T) {
	cfg := LoadConfigFile(filepath.Join(t.TempDir(), "absent.json"))

	def := NewDefaultConfig()
	assert.Equal(t, def.ActiveSource, cfg.GetSource())
	assert.Equal(t, def.CaptureWidth, cfg.GetWidth())
	assert.Equal(t, def.CaptureHeight, cfg.GetHeight())
	assert.Empty(t, cfg.GetModelPath())
}

func TestSaveThenLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewDefaultConfig()
	cfg.SetSource(SourceLocal)
	cfg.SetLocalDir("/tmp/pets")
	cfg.SetDeviceID("/dev/video2")
	cfg.ModelPath = "/opt/models/pets.json"
	require.NoError(t, cfg.Save(path))

	loaded := LoadConfigFile(path)
	assert.Equal(t, SourceLocal, loaded.GetSource())
	assert.Equal(t, "/tmp/pets", loaded.GetLocalDir())
	assert.Equal(t, "/dev/video2", loaded.GetDeviceID())
	assert.Equal(t, "/opt/models/pets.json", loaded.GetModelPath())
}

func TestSaveTruncatesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0644))

	require.NoError(t, NewDefaultConfig().Save(path))

	loaded := LoadConfigFile(path)
	assert.Equal(t, NewDefaultConfig().GetSource(), loaded.GetSource())
}

func TestLoadConfigFileNormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"active_source":"YouTube","capture_width":-1,"capture_height":0}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := LoadConfigFile(path)
	def := NewDefaultConfig()
	assert.Equal(t, def.ActiveSource, cfg.GetSource())
	assert.Equal(t, def.CaptureWidth, cfg.GetWidth())
	assert.Equal(t, def.CaptureHeight, cfg.GetHeight())
}

func TestLoadConfigFileBrokenJSONReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg := LoadConfigFile(path)
	assert.Equal(t, NewDefaultConfig().GetWidth(), cfg.GetWidth())
}
