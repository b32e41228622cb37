package gesture

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/anvesh/phototree/internal/capture"
	"github.com/anvesh/phototree/internal/detector"
)

// PollInterval is how often the service samples the video source. The
// renderer runs faster than this; the same-position gate below keeps the
// two rates from causing duplicate classification work.
const PollInterval = 33 * time.Millisecond // ~30 Hz

// ErrNoListener is returned when Start is called before a listener is
// registered.
var ErrNoListener = errors.New("no state listener registered")

// Service bridges the continuous video stream to discrete classification
// calls. Each poll tick reads at most one frame, runs at most one
// detection, and publishes at most one State to the single registered
// listener. The listener must not block.
type Service struct {
	detector detector.Detector
	listener func(State)
	mu       sync.Mutex
	camera   capture.Camera
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewService creates a Service around the given landmark detector.
func NewService(d detector.Detector) *Service {
	return &Service{detector: d}
}

// OnState registers the listener that receives every published state.
// Exactly one listener is supported; it must be set before Start.
func (s *Service) OnState(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

// Start warms up the detector and begins the polling loop against the
// given video source. A detector warmup failure is fatal: Start returns
// the error and the loop never begins. Start is a no-op if the service is
// already running.
func (s *Service) Start(cam capture.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		return nil
	}
	if s.listener == nil {
		return ErrNoListener
	}

	if err := s.detector.Warmup(); err != nil {
		return err
	}

	s.camera = cam
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(cam, s.stopCh, s.doneCh)

	return nil
}

// Stop cancels the polling loop. No further states are published after
// Stop returns; an in-flight detection finishes its tick first.
func (s *Service) Stop() {
	s.mu.Lock()
	stopCh, doneCh := s.stopCh, s.doneCh
	s.stopCh = nil
	s.doneCh = nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}
}

// run is the polling loop. One tick processes at most one frame:
//
//  1. Read a frame; if the source has no valid decoded frame yet, skip.
//  2. If the frame's playback position equals the last processed one,
//     skip - the source hasn't advanced since the previous tick.
//  3. Detect landmarks with the current wall-clock timestamp. On failure
//     log a warning and skip; the next tick simply tries again. Nothing is
//     republished for skipped frames.
//  4. Classify and publish.
func (s *Service) run(cam capture.Camera, stopCh chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	lastPositionMs := -1.0

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := cam.ReadFrame()
			if err != nil {
				if !errors.Is(err, capture.ErrFrameNotReady) {
					log.Printf("gesture: read frame: %v", err)
				}
				continue
			}

			if frame.PositionMs == lastPositionMs {
				frame.Close()
				continue
			}
			lastPositionMs = frame.PositionMs

			pose, err := s.detector.Detect(frame.Mat, time.Now().UnixMilli())
			frame.Close()
			if err != nil {
				log.Printf("gesture: detect failed, skipping frame: %v", err)
				continue
			}

			s.publish(Classify(pose))
		}
	}
}

func (s *Service) publish(state State) {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(state)
	}
}
