package gesture

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/anvesh/phototree/internal/capture"
	"github.com/anvesh/phototree/internal/detector"
)

// stateRecorder collects published states for assertions.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestService_StartRequiresListener(t *testing.T) {
	svc := NewService(detector.NewMockDetector())

	err := svc.Start(capture.NewMockCamera(nil, false))
	if !errors.Is(err, ErrNoListener) {
		t.Errorf("Start() error = %v, want %v", err, ErrNoListener)
	}
}

func TestService_WarmupFailureIsFatal(t *testing.T) {
	mock := detector.NewMockDetector()
	warmupErr := errors.New("model download failed")
	mock.SetWarmupError(warmupErr)

	svc := NewService(mock)
	svc.OnState(func(State) {})

	if err := svc.Start(capture.NewMockCamera(nil, false)); !errors.Is(err, warmupErr) {
		t.Errorf("Start() error = %v, want %v", err, warmupErr)
	}

	// The loop must not have started
	time.Sleep(3 * PollInterval)
	if mock.Calls() != 0 {
		t.Errorf("Detect called %d times after failed warmup, want 0", mock.Calls())
	}
}

func TestService_DedupSamePlaybackPosition(t *testing.T) {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	// Two ticks at position 33, then one at 66, then the camera holds on
	// 66 forever. Only two distinct positions ever appear.
	cam := capture.NewMockCamera([]capture.MockFrame{
		{Mat: &mat, PositionMs: 33},
		{Mat: &mat, PositionMs: 33},
		{Mat: &mat, PositionMs: 66},
	}, false)
	cam.Open()
	defer cam.Close()

	mock := detector.NewMockDetector()
	mock.SetPose(detector.OpenPalmPose())

	rec := &stateRecorder{}
	svc := NewService(mock)
	svc.OnState(rec.record)

	if err := svc.Start(cam); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(8 * PollInterval)
	svc.Stop()

	if got := mock.Calls(); got != 2 {
		t.Errorf("Detect calls = %d, want 2 (one per distinct playback position)", got)
	}

	states := rec.snapshot()
	if len(states) != 2 {
		t.Fatalf("published states = %d, want 2", len(states))
	}
	for _, s := range states {
		if s.Gesture != GestureOpenPalm {
			t.Errorf("Gesture = %q, want %q", s.Gesture, GestureOpenPalm)
		}
	}
}

func TestService_DetectorErrorSkipsFrame(t *testing.T) {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	cam := capture.NewMockCamera([]capture.MockFrame{
		{Mat: &mat, PositionMs: 33},
		{Mat: &mat, PositionMs: 66},
		{Mat: &mat, PositionMs: 99},
	}, false)
	cam.Open()
	defer cam.Close()

	mock := detector.NewMockDetector()
	mock.SetResults([]detector.MockResult{
		{Err: errors.New("inference timeout")},
		{Pose: detector.PinchPose()},
	})

	rec := &stateRecorder{}
	svc := NewService(mock)
	svc.OnState(rec.record)

	if err := svc.Start(cam); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(8 * PollInterval)
	svc.Stop()

	// The first frame failed and published nothing; the loop kept going
	// and the later frames classified normally.
	states := rec.snapshot()
	if len(states) != 2 {
		t.Fatalf("published states = %d, want 2", len(states))
	}
	for _, s := range states {
		if s.Gesture != GesturePinch {
			t.Errorf("Gesture = %q, want %q", s.Gesture, GesturePinch)
		}
	}
}

func TestService_NoHandPublishesDefault(t *testing.T) {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	cam := capture.NewMockCamera([]capture.MockFrame{
		{Mat: &mat, PositionMs: 33},
	}, false)
	cam.Open()
	defer cam.Close()

	// Detector reports no hand: a valid classification, not an error.
	mock := detector.NewMockDetector()

	rec := &stateRecorder{}
	svc := NewService(mock)
	svc.OnState(rec.record)

	if err := svc.Start(cam); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(4 * PollInterval)
	svc.Stop()

	states := rec.snapshot()
	if len(states) != 1 {
		t.Fatalf("published states = %d, want 1", len(states))
	}

	want := State{HandDetected: false, Gesture: GestureNone, HandX: 0.5, HandY: 0.5}
	if states[0] != want {
		t.Errorf("state = %+v, want %+v", states[0], want)
	}
}

func TestService_StopHaltsPublishing(t *testing.T) {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	// Looping camera with ever-advancing positions
	frames := make([]capture.MockFrame, 100)
	for i := range frames {
		frames[i] = capture.MockFrame{Mat: &mat, PositionMs: float64((i + 1) * 33)}
	}
	cam := capture.NewMockCamera(frames, true)
	cam.Open()
	defer cam.Close()

	mock := detector.NewMockDetector()
	mock.SetPose(detector.FistPose())

	rec := &stateRecorder{}
	svc := NewService(mock)
	svc.OnState(rec.record)

	if err := svc.Start(cam); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(4 * PollInterval)
	svc.Stop()

	count := len(rec.snapshot())
	if count == 0 {
		t.Fatal("expected at least one published state before Stop")
	}

	time.Sleep(4 * PollInterval)
	if got := len(rec.snapshot()); got != count {
		t.Errorf("states published after Stop: %d -> %d", count, got)
	}

	// Start after Stop resumes the loop
	if err := svc.Start(cam); err != nil {
		t.Fatalf("restart Start() error = %v", err)
	}
	time.Sleep(4 * PollInterval)
	svc.Stop()

	if got := len(rec.snapshot()); got <= count {
		t.Errorf("states after restart = %d, want > %d", got, count)
	}
}
