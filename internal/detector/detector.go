package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand landmark providers.
type Detector interface {
	// Warmup performs one-time model initialization. It must be called
	// before the first Detect. A Warmup failure is fatal to starting the
	// gesture pipeline; the detector does not retry on its own.
	Warmup() error

	// Detect analyzes a video frame and returns the landmarks of the most
	// prominent hand, or nil if no hand is present. The timestamp is in
	// milliseconds and must increase monotonically across calls. Detect
	// may fail transiently on an individual frame.
	Detect(frame *gocv.Mat, timestampMs int64) (*HandPose, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
