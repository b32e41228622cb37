// Package app wires the Phototree pipeline together: camera frames in,
// gesture/mode snapshots out to the rendering frontend.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/anvesh/phototree/internal/capture"
	"github.com/anvesh/phototree/internal/detector"
	"github.com/anvesh/phototree/internal/gesture"
	"github.com/anvesh/phototree/internal/photo"
	"github.com/anvesh/phototree/internal/scene"
	"github.com/anvesh/phototree/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Importer *photo.Importer
	CameraID int
	// DropDir, when non-empty, is watched for image files to import.
	DropDir string
}

// Update is one snapshot pushed to the rendering frontend: the latest
// classified gesture, the resulting display mode, and the collection size.
type Update struct {
	Gesture     gesture.State  `json:"gesture"`
	Scene       scene.Snapshot `json:"scene"`
	PhotoCount  int            `json:"photoCount"`
	TimestampMs int64          `json:"timestamp"`
}

// App is the main application that orchestrates gesture detection and the
// display mode machine.
type App struct {
	config    Config
	camera    capture.Camera
	detector  detector.Detector
	service   *gesture.Service
	machine   *scene.Machine
	watcher   *Watcher
	onUpdate  func(Update)
	lastState gesture.State
	enabled   bool
	running   bool
	mu        sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:    config,
		camera:    capture.NewCamera(config.CameraID),
		machine:   scene.NewMachine(config.Store.Photos()),
		lastState: gesture.Classify(nil),
		enabled:   true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.service = gesture.NewService(a.detector)
	a.service.OnState(a.handleGesture)

	if config.DropDir != "" {
		a.watcher = NewWatcher(config.DropDir, a.importFile)
	}

	return a
}

// OnUpdate sets the callback that receives every pipeline update. It must
// not block; the state hub's Publish satisfies that.
func (a *App) OnUpdate(fn func(Update)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

// SetEnabled enables or disables gesture detection. While disabled,
// classified states are discarded and the mode machine holds its state.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use. Only valid
// before Start.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
	a.service = gesture.NewService(d)
	a.service.OnState(a.handleGesture)
}

// SetCamera sets the camera implementation to use. Only valid before
// Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start opens the camera and begins the gesture pipeline. A detector
// initialization failure is returned as-is; the caller decides whether to
// surface a retry.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	if err := a.service.Start(a.camera); err != nil {
		a.camera.Close()
		return err
	}

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			log.Printf("Drop folder watch unavailable: %v", err)
		}
	}

	a.running = true
	log.Println("Gesture pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	running := a.running
	a.running = false
	a.mu.Unlock()

	if !running {
		return
	}

	a.service.Stop()

	if a.watcher != nil {
		a.watcher.Stop()
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Gesture pipeline stopped")
}

// handleGesture is the single gesture service listener: it advances the
// mode machine and publishes the combined snapshot.
func (a *App) handleGesture(s gesture.State) {
	if !a.IsEnabled() {
		return
	}

	a.mu.Lock()
	a.lastState = s
	a.mu.Unlock()

	snap := a.machine.Apply(s)

	count, err := a.config.Store.Photos().Count()
	if err != nil {
		log.Printf("Count photos: %v", err)
	}

	a.publish(Update{
		Gesture:     s,
		Scene:       snap,
		PhotoCount:  count,
		TimestampMs: time.Now().UnixMilli(),
	})
}

// importFile brings a dropped file into the session collection.
func (a *App) importFile(path string) {
	p, err := a.config.Importer.ImportFile(path)
	if err != nil {
		log.Printf("Skipping %s: %v", path, err)
		return
	}

	if err := a.config.Store.Photos().Create(p); err != nil {
		log.Printf("Failed to store %s: %v", path, err)
		a.config.Importer.RemoveAsset(p.ID)
		return
	}

	log.Printf("Imported %s as %s", path, p.ID)

	count, err := a.config.Store.Photos().Count()
	if err != nil {
		log.Printf("Count photos: %v", err)
	}

	a.mu.RLock()
	last := a.lastState
	a.mu.RUnlock()

	// Nudge the frontend so it refetches the collection
	a.publish(Update{
		Gesture:     last,
		Scene:       a.machine.Snapshot(),
		PhotoCount:  count,
		TimestampMs: time.Now().UnixMilli(),
	})
}

func (a *App) publish(u Update) {
	a.mu.RLock()
	fn := a.onUpdate
	a.mu.RUnlock()

	if fn != nil {
		fn(u)
	}
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Machine returns the display mode machine.
func (a *App) Machine() *scene.Machine {
	return a.machine
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
