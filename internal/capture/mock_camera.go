package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a scripted sequence of frames for testing. Each
// entry pairs pixel data with the playback position it was decoded at, so
// tests can exercise the gesture loop's same-position dedup.
type MockCamera struct {
	frames  []MockFrame
	index   int
	loop    bool
	mu      sync.Mutex
	running bool
}

// MockFrame is one scripted ReadFrame outcome.
type MockFrame struct {
	Mat        *gocv.Mat
	PositionMs float64
	Err        error
}

func NewMockCamera(frames []MockFrame, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *MockCamera) ReadFrame() (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if len(c.frames) == 0 {
		return nil, ErrFrameNotReady
	}

	if c.index >= len(c.frames) {
		if c.loop {
			c.index = 0
		} else {
			// Hold on the last scripted frame, as a paused source would
			c.index = len(c.frames) - 1
		}
	}

	f := c.frames[c.index]
	c.index++

	if f.Err != nil {
		return nil, f.Err
	}

	// Clone the pixel data so the original isn't modified
	mat := f.Mat.Clone()
	return &Frame{
		Mat:        &mat,
		PositionMs: f.PositionMs,
		Width:      mat.Cols(),
		Height:     mat.Rows(),
	}, nil
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetFrames replaces the frame sequence
func (c *MockCamera) SetFrames(frames []MockFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Reset restarts playback from the beginning
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
