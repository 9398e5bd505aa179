package capture

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"sync"
)

const bytesPerPixel = 4

// FFmpegWebcamStreamer reads raw RGBA frames from a camera through ffmpeg.
type FFmpegWebcamStreamer struct {
	stopOnce sync.Once

	deviceName string
	width      int
	height     int
	targetFPS  uint

	cmd       *exec.Cmd
	stderr    bytes.Buffer
	frameChan chan image.Image
	errChan   chan error
	stopChan  chan struct{}
}

func NewFFmpegWebcam(deviceName string, targetFPS uint, width, height int) *FFmpegWebcamStreamer {
	return &FFmpegWebcamStreamer{
		deviceName: deviceName,
		width:      width,
		height:     height,
		targetFPS:  targetFPS,

		frameChan: make(chan image.Image, 1),
		errChan:   make(chan error, 1),
		stopChan:  make(chan struct{}),
	}
}

func webcamArgs(goos, device string, fps uint, width, height int) []string {
	var input []string
	if goos == "windows" {
		input = []string{"-f", "dshow", "-i", fmt.Sprintf("video=%s", device)}
	} else {
		input = []string{"-f", "v4l2", "-i", device}
	}

	return append(input,
		"-vf", fmt.Sprintf("fps=%d,scale=%d:%d", fps, width, height),
		"-f", "image2pipe",
		"-pix_fmt", "rgba",
		"-vcodec", "rawvideo",
		"-",
	)
}

func (ws *FFmpegWebcamStreamer) Start() error {
	ws.cmd = exec.Command("ffmpeg", webcamArgs(runtime.GOOS, ws.deviceName, ws.targetFPS, ws.width, ws.height)...)
	ws.cmd.Stderr = &ws.stderr

	stdout, err := ws.cmd.StdoutPipe()
	if err != nil {
		return err
	}

	if err := ws.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w. Details: %s", err, ws.stderr.String())
	}

	go ws.readLoop(stdout)

	return nil
}

func (ws *FFmpegWebcamStreamer) readLoop(stdout io.ReadCloser) {
	defer close(ws.frameChan)
	defer close(ws.errChan)
	defer stdout.Close()
	defer ws.stopCmdOut()

	stride := ws.width * bytesPerPixel
	buffer := make([]byte, stride*ws.height)

	for {
		select {
		case <-ws.stopChan:
			return
		default:
		}

		if _, err := io.ReadFull(stdout, buffer); err != nil {
			select {
			case <-ws.stopChan:
			default:
				ws.errChan <- fmt.Errorf("camera read error: %v", err)
			}
			return
		}

		img := &image.RGBA{
			Pix:    append([]byte(nil), buffer...),
			Stride: stride,
			Rect:   image.Rect(0, 0, ws.width, ws.height),
		}

		offerLatest(ws.frameChan, img)
	}
}

// offerLatest puts img into the one-slot ch, replacing a frame nobody picked up yet.
// ch must have a single sender.
func offerLatest(ch chan image.Image, img image.Image) {
	select {
	case ch <- img:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- img:
	default:
	}
}

// stopCmdOut reaps ffmpeg. Only readLoop calls it, so Wait runs once.
func (ws *FFmpegWebcamStreamer) stopCmdOut() {
	if ws.cmd != nil && ws.cmd.Process != nil {
		ws.cmd.Process.Kill()
		ws.cmd.Wait()
	}
}

// Stop kills ffmpeg; readLoop then closes the channels and waits for the process.
func (ws *FFmpegWebcamStreamer) Stop() {
	ws.stopOnce.Do(func() {
		close(ws.stopChan)
		if ws.cmd != nil && ws.cmd.Process != nil {
			ws.cmd.Process.Kill()
		}
	})
}

func (ws *FFmpegWebcamStreamer) FrameChan() <-chan image.Image { return ws.frameChan }
func (ws *FFmpegWebcamStreamer) ErrorChan() <-chan error       { return ws.errChan }

var dshowDeviceRe = regexp.MustCompile(`"([^"]+)"\s+\(video\)`)

func parseDshowDevices(output string) []string {
	var cameras []string
	seen := make(map[string]bool)

	for _, m := range dshowDeviceRe.FindAllStringSubmatch(output, -1) {
		name := m[1]
		if name != "dummy" && !seen[name] {
			cameras = append(cameras, name)
			seen[name] = true
		}
	}
	return cameras
}

// ListCameras enumerates capture devices ffmpeg can open.
func ListCameras() ([]string, error) {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("ffmpeg", "-list_devices", "true", "-f", "dshow", "-i", "dummy")
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		// ffmpeg always exits non-zero here; the listing is on stderr.
		_ = cmd.Run()

		return parseDshowDevices(stderr.String()), nil
	}

	devices, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, err
	}
	sort.Strings(devices)
	return devices, nil
}
