// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Default camera settings
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrFrameNotReady is returned when the source has no valid decoded frame
// yet. The gesture loop treats this as a skippable condition, not a fault.
var ErrFrameNotReady = errors.New("no decoded frame available")

// Frame is a captured video frame plus the source playback position it was
// decoded at. The position is what the gesture loop uses to avoid
// classifying the same frame twice.
type Frame struct {
	Mat        *gocv.Mat
	PositionMs float64
	Width      int
	Height     int
}

// Close releases the frame's pixel data.
func (f *Frame) Close() {
	if f != nil && f.Mat != nil {
		f.Mat.Close()
		f.Mat = nil
	}
}

// Camera defines the interface for video source implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*Frame, error)
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
	openedAt time.Time
}

// NewCamera creates a new Camera with the given device ID.
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		running:  false,
		capture:  nil,
	}
}

// Open opens the camera for capturing frames.
// It sets the resolution to 640x480 for performance.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	// Set resolution for performance
	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)

	c.capture = capture
	c.running = true
	c.openedAt = time.Now()

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Frame.
func (c *cameraImpl) ReadFrame() (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrFrameNotReady
	}

	if mat.Empty() || mat.Cols() == 0 || mat.Rows() == 0 {
		mat.Close()
		return nil, ErrFrameNotReady
	}

	// Live devices usually report 0 for the position property; fall back
	// to elapsed capture time so each decoded frame is distinguishable.
	pos := c.capture.Get(gocv.VideoCapturePosMsec)
	if pos <= 0 {
		pos = float64(time.Since(c.openedAt).Milliseconds())
	}

	return &Frame{
		Mat:        &mat,
		PositionMs: pos,
		Width:      mat.Cols(),
		Height:     mat.Rows(),
	}, nil
}

// IsOpen returns true if the camera is currently open and running.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
