package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns a scripted sequence of poses and errors.
type MockDetector struct {
	results   []MockResult
	index     int
	warmupErr error
	calls     int
}

// MockResult is one scripted Detect outcome.
type MockResult struct {
	Pose *HandPose
	Err  error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPose makes every Detect call return the given pose.
func (m *MockDetector) SetPose(pose *HandPose) {
	m.results = []MockResult{{Pose: pose}}
	m.index = 0
}

// SetResults sets a scripted sequence of results. The last result repeats
// once the sequence is exhausted.
func (m *MockDetector) SetResults(results []MockResult) {
	m.results = results
	m.index = 0
}

// SetWarmupError makes Warmup fail with the given error.
func (m *MockDetector) SetWarmupError(err error) {
	m.warmupErr = err
}

// Calls returns the number of Detect invocations so far.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Warmup returns the configured warmup error, if any.
func (m *MockDetector) Warmup() error {
	return m.warmupErr
}

// Detect returns the next scripted result.
func (m *MockDetector) Detect(frame *gocv.Mat, timestampMs int64) (*HandPose, error) {
	m.calls++

	if len(m.results) == 0 {
		return nil, nil
	}

	r := m.results[m.index]
	if m.index < len(m.results)-1 {
		m.index++
	}
	return r.Pose, r.Err
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistPose returns a synthetic pose with all four non-thumb fingertips
// curled to within 0.2 of the wrist. The thumb tip also sits within the
// pinch distance of the index tip, so this pose exercises the fist-over-
// pinch classification priority.
func FistPose() *HandPose {
	pose := &HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.62, Z: 0.0}

	// Thumb folded across the curled fingers, tip next to the index tip
	pose.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.60, Z: 0.0}
	pose.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.58, Z: 0.01}
	pose.Points[ThumbIP] = Point3D{X: 0.43, Y: 0.56, Z: 0.01}
	pose.Points[ThumbTip] = Point3D{X: 0.42, Y: 0.55, Z: 0.01}

	// Index finger curled in
	pose.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.56, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.45, Y: 0.53, Z: -0.02}
	pose.Points[IndexDIP] = Point3D{X: 0.45, Y: 0.52, Z: -0.03}
	pose.Points[IndexTip] = Point3D{X: 0.46, Y: 0.52, Z: -0.03}

	// Middle finger curled in
	pose.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.55, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: -0.02}
	pose.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.50, Z: -0.03}
	pose.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.50, Z: -0.03}

	// Ring finger curled in
	pose.Points[RingMCP] = Point3D{X: 0.54, Y: 0.56, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.54, Y: 0.53, Z: -0.02}
	pose.Points[RingDIP] = Point3D{X: 0.54, Y: 0.52, Z: -0.03}
	pose.Points[RingTip] = Point3D{X: 0.54, Y: 0.52, Z: -0.03}

	// Pinky curled in
	pose.Points[PinkyMCP] = Point3D{X: 0.57, Y: 0.58, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.57, Y: 0.56, Z: -0.02}
	pose.Points[PinkyDIP] = Point3D{X: 0.57, Y: 0.55, Z: -0.02}
	pose.Points[PinkyTip] = Point3D{X: 0.57, Y: 0.55, Z: -0.02}

	return pose
}

// OpenPalmPose returns a synthetic pose with all four non-thumb fingertips
// extended beyond 0.3 from the wrist.
func OpenPalmPose() *HandPose {
	pose := &HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.78, Z: 0.0}

	// Thumb extended to the side, well away from the index tip
	pose.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.74, Z: 0.02}
	pose.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	pose.Points[ThumbIP] = Point3D{X: 0.66, Y: 0.66, Z: 0.03}
	pose.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.62, Z: 0.03}

	// Index finger extended upward
	pose.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.56, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.47, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.56, Y: 0.40, Z: 0.0}

	// Middle finger extended upward
	pose.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.64, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.53, Z: 0.0}
	pose.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.43, Z: 0.0}
	pose.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.36, Z: 0.0}

	// Ring finger extended upward
	pose.Points[RingMCP] = Point3D{X: 0.45, Y: 0.66, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.44, Y: 0.56, Z: 0.0}
	pose.Points[RingDIP] = Point3D{X: 0.44, Y: 0.47, Z: 0.0}
	pose.Points[RingTip] = Point3D{X: 0.44, Y: 0.40, Z: 0.0}

	// Pinky extended upward
	pose.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.39, Y: 0.62, Z: 0.0}
	pose.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.54, Z: 0.0}
	pose.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.48, Z: 0.0}

	return pose
}

// PinchPose returns a synthetic pose with the thumb and index tips within
// the pinch distance while the remaining fingers are half-extended, so
// neither the fist nor the open palm rule matches.
func PinchPose() *HandPose {
	pose := &HandPose{
		Handedness: "Right",
		Score:      0.95,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.75, Z: 0.0}

	// Thumb reaching toward the index tip
	pose.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.70, Z: 0.01}
	pose.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.63, Z: 0.02}
	pose.Points[ThumbIP] = Point3D{X: 0.54, Y: 0.56, Z: 0.02}
	pose.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.50, Z: 0.02}

	// Index finger meeting the thumb
	pose.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.63, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.56, Y: 0.50, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.55, Y: 0.47, Z: 0.01}

	// Middle finger half-extended
	pose.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.62, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.56, Z: 0.0}
	pose.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.54, Z: 0.0}
	pose.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}

	// Ring finger half-extended
	pose.Points[RingMCP] = Point3D{X: 0.46, Y: 0.63, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.46, Y: 0.58, Z: 0.0}
	pose.Points[RingDIP] = Point3D{X: 0.46, Y: 0.56, Z: 0.0}
	pose.Points[RingTip] = Point3D{X: 0.46, Y: 0.55, Z: 0.0}

	// Pinky relaxed
	pose.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.66, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.63, Z: 0.0}
	pose.Points[PinkyDIP] = Point3D{X: 0.42, Y: 0.61, Z: 0.0}
	pose.Points[PinkyTip] = Point3D{X: 0.42, Y: 0.60, Z: 0.0}

	return pose
}

// RelaxedPose returns a synthetic pose with half-curled fingers that
// matches no classification rule.
func RelaxedPose() *HandPose {
	pose := &HandPose{
		Handedness: "Right",
		Score:      0.90,
	}

	pose.Points[Wrist] = Point3D{X: 0.50, Y: 0.70, Z: 0.0}

	// Thumb resting away from the index tip
	pose.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.66, Z: 0.01}
	pose.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.62, Z: 0.01}
	pose.Points[ThumbIP] = Point3D{X: 0.41, Y: 0.58, Z: 0.01}
	pose.Points[ThumbTip] = Point3D{X: 0.40, Y: 0.55, Z: 0.01}

	// Fingertips between the fist and open-palm thresholds
	pose.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.60, Z: 0.0}
	pose.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.54, Z: 0.0}
	pose.Points[IndexDIP] = Point3D{X: 0.55, Y: 0.50, Z: 0.0}
	pose.Points[IndexTip] = Point3D{X: 0.55, Y: 0.47, Z: 0.0}

	pose.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.58, Z: 0.0}
	pose.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	pose.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.48, Z: 0.0}
	pose.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.45, Z: 0.0}

	pose.Points[RingMCP] = Point3D{X: 0.46, Y: 0.60, Z: 0.0}
	pose.Points[RingPIP] = Point3D{X: 0.45, Y: 0.54, Z: 0.0}
	pose.Points[RingDIP] = Point3D{X: 0.45, Y: 0.50, Z: 0.0}
	pose.Points[RingTip] = Point3D{X: 0.45, Y: 0.47, Z: 0.0}

	pose.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.64, Z: 0.0}
	pose.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.58, Z: 0.0}
	pose.Points[PinkyDIP] = Point3D{X: 0.41, Y: 0.55, Z: 0.0}
	pose.Points[PinkyTip] = Point3D{X: 0.41, Y: 0.52, Z: 0.0}

	return pose
}
