package capture

import (
	"fmt"

	"petclassifier/internal/config"
)

const previewFPS uint = 15

// NewStreamer builds the live source for the configured camera.
func NewStreamer(cfg *config.Config) (VideoStreamer, error) {
	switch cfg.GetSource() {
	case config.SourceWebcam:
		if cfg.GetDeviceID() == "" {
			return nil, fmt.Errorf("no camera selected")
		}
		return NewFFmpegWebcam(cfg.GetDeviceID(), previewFPS, cfg.GetWidth(), cfg.GetHeight()), nil
	default:
		return nil, fmt.Errorf("source %q has no live stream", cfg.GetSource())
	}
}
