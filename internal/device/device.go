// Package device exposes GPU availability, trace capture toggles and
// device information to the host.
package device

import (
	"errors"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Common errors.
var (
	ErrUnavailable   = errors.New("device: no GPU adapter available")
	ErrCaptureActive = errors.New("device: capture already in progress")
	ErrEmptyPath     = errors.New("device: capture path is empty")
)

// Adapter describes the GPU adapter found by a probe.
type Adapter struct {
	Name    string
	Vendor  string
	Backend string
}

// Probe looks for a usable GPU adapter.
type Probe func() (Adapter, bool)

// Device is a lazily probed GPU device. The probe runs at most once.
type Device struct {
	probe  Probe
	logger *zap.Logger

	once    sync.Once
	adapter Adapter
	found   bool

	mu      sync.Mutex
	capture string
}

// New creates a device backed by probe. A nil logger disables logging.
func New(probe Probe, logger *zap.Logger) *Device {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Device{probe: probe, logger: logger}
}

var (
	system     *Device
	systemOnce sync.Once
)

// System returns the device for this machine's default GPU adapter.
func System() *Device {
	systemOnce.Do(func() {
		system = New(probeAdapter, nil)
	})
	return system
}

func (d *Device) detect() {
	d.once.Do(func() {
		d.adapter, d.found = d.probe()
		d.logger.Debug("device probed",
			zap.Bool("available", d.found),
			zap.String("adapter", d.adapter.Name))
	})
}

// IsAvailable reports whether a GPU adapter was found.
func (d *Device) IsAvailable() bool {
	d.detect()
	return d.found
}

// StartCapture begins recording a GPU trace to path.
func (d *Device) StartCapture(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if !d.IsAvailable() {
		return ErrUnavailable
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.capture != "" {
		return ErrCaptureActive
	}
	d.capture = path
	d.logger.Info("gpu capture started", zap.String("path", path))
	return nil
}

// StopCapture ends the current capture. It does nothing when no capture is
// in progress.
func (d *Device) StopCapture() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.capture == "" {
		return
	}
	d.logger.Info("gpu capture stopped", zap.String("path", d.capture))
	d.capture = ""
}

// Capturing returns the active capture path.
func (d *Device) Capturing() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capture, d.capture != ""
}

// Info returns device properties keyed by name. Values are strings or
// float64 numbers.
func (d *Device) Info() map[string]any {
	d.detect()
	info := map[string]any{
		"architecture": runtime.GOARCH,
		"num_cpu":      float64(runtime.NumCPU()),
	}
	if !d.found {
		info["device_name"] = "cpu"
		info["backend"] = "cpu"
		return info
	}
	info["device_name"] = d.adapter.Name
	info["vendor"] = d.adapter.Vendor
	info["backend"] = d.adapter.Backend
	return info
}
