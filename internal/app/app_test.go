package app

import (
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/anvesh/phototree/internal/capture"
	"github.com/anvesh/phototree/internal/detector"
	"github.com/anvesh/phototree/internal/gesture"
	"github.com/anvesh/phototree/internal/photo"
	"github.com/anvesh/phototree/internal/scene"
	"github.com/anvesh/phototree/internal/store"
)

// updateRecorder collects pipeline updates without blocking the publisher.
type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *updateRecorder) record(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) snapshot() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Update, len(r.updates))
	copy(out, r.updates)
	return out
}

// waitFor polls the recorder until an update satisfies pred or the timeout
// elapses.
func (r *updateRecorder) waitFor(t *testing.T, timeout time.Duration, pred func(Update) bool) Update {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, u := range r.snapshot() {
			if pred(u) {
				return u
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for update")
	return Update{}
}

func newTestApp(t *testing.T) (*App, *detector.MockDetector, *capture.MockCamera, *updateRecorder) {
	t.Helper()

	s, err := store.New()
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{
		Store:    s,
		Importer: photo.NewImporter(t.TempDir(), photo.NewLayout(1)),
	})

	det := detector.NewMockDetector()
	a.SetDetector(det)

	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })

	cam := capture.NewMockCamera([]capture.MockFrame{
		{Mat: &mat, PositionMs: 33},
		{Mat: &mat, PositionMs: 66},
		{Mat: &mat, PositionMs: 99},
	}, true)
	a.SetCamera(cam)

	rec := &updateRecorder{}
	a.OnUpdate(rec.record)

	return a, det, cam, rec
}

func TestApp_OpenPalmSwitchesToScatter(t *testing.T) {
	a, det, _, rec := newTestApp(t)
	det.SetPose(detector.OpenPalmPose())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	u := rec.waitFor(t, 2*time.Second, func(u Update) bool {
		return u.Scene.Mode == scene.ModeScatter
	})

	if u.Gesture.Gesture != gesture.GestureOpenPalm {
		t.Errorf("gesture = %q, want %q", u.Gesture.Gesture, gesture.GestureOpenPalm)
	}
	if !u.Gesture.HandDetected {
		t.Error("HandDetected = false, want true")
	}
}

func TestApp_PinchZoomsIntoStoredPhoto(t *testing.T) {
	a, det, _, rec := newTestApp(t)

	p := &photo.Photo{ID: "photo-1", SourceURL: "/api/photos/photo-1/image", CreatedAt: time.Now()}
	if err := a.config.Store.Photos().Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Scatter first, then pinch
	det.SetResults([]detector.MockResult{
		{Pose: detector.OpenPalmPose()},
		{Pose: detector.PinchPose()},
	})

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	u := rec.waitFor(t, 2*time.Second, func(u Update) bool {
		return u.Scene.Mode == scene.ModeZoom
	})

	if u.Scene.SelectedPhotoID != p.ID {
		t.Errorf("SelectedPhotoID = %q, want %q", u.Scene.SelectedPhotoID, p.ID)
	}
	if u.PhotoCount != 1 {
		t.Errorf("PhotoCount = %d, want 1", u.PhotoCount)
	}
}

func TestApp_LostHandReturnsToTree(t *testing.T) {
	a, det, _, rec := newTestApp(t)

	det.SetResults([]detector.MockResult{
		{Pose: detector.OpenPalmPose()},
		{Pose: nil},
	})

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	rec.waitFor(t, 2*time.Second, func(u Update) bool {
		return u.Scene.Mode == scene.ModeScatter
	})
	u := rec.waitFor(t, 2*time.Second, func(u Update) bool {
		return u.Scene.Mode == scene.ModeTree && !u.Gesture.HandDetected
	})

	if u.Scene.SelectedPhotoID != "" {
		t.Errorf("SelectedPhotoID = %q, want empty", u.Scene.SelectedPhotoID)
	}
}

func TestApp_DisabledDiscardsGestures(t *testing.T) {
	a, det, _, rec := newTestApp(t)
	det.SetPose(detector.OpenPalmPose())

	a.SetEnabled(false)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	time.Sleep(300 * time.Millisecond)

	if got := len(rec.snapshot()); got != 0 {
		t.Fatalf("received %d updates while disabled, want 0", got)
	}
	if a.Machine().Snapshot().Mode != scene.ModeTree {
		t.Errorf("mode advanced while disabled: %v", a.Machine().Snapshot().Mode)
	}

	// Re-enabling resumes publication
	a.SetEnabled(true)
	rec.waitFor(t, 2*time.Second, func(u Update) bool {
		return u.Scene.Mode == scene.ModeScatter
	})
}

func TestApp_StartTwiceIsNoOp(t *testing.T) {
	a, det, _, _ := newTestApp(t)
	det.SetPose(nil)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	if err := a.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}
}
