// Package scene holds the display mode state machine that turns classified
// gestures into Phototree's top-level visual modes.
package scene

import (
	"log"
	"sync"

	"github.com/anvesh/phototree/internal/gesture"
	"github.com/anvesh/phototree/internal/photo"
)

// Mode is the top-level visual state of the display. The string values are
// part of the wire format consumed by the rendering frontend.
type Mode string

const (
	// ModeTree shows the assembled photo tree. Initial mode.
	ModeTree Mode = "tree"
	// ModeScatter shows the scattered explosion.
	ModeScatter Mode = "scatter"
	// ModeZoom focuses one selected photo.
	ModeZoom Mode = "zoom"
)

// PhotoPicker supplies the machine with the current photo collection.
// Implemented by the store's photo repository.
type PhotoPicker interface {
	Count() (int, error)
	Random() (*photo.Photo, error)
}

// Snapshot is the machine's externally visible state. SelectedPhotoID is
// empty unless the mode is zoom.
type Snapshot struct {
	Mode            Mode   `json:"mode"`
	SelectedPhotoID string `json:"selectedPhotoId,omitempty"`
}

// Machine maps the gesture stream onto display modes. All transitions go
// through Apply; there is no other way to change the mode.
type Machine struct {
	mu       sync.Mutex
	mode     Mode
	selected string
	photos   PhotoPicker
}

// NewMachine creates a Machine starting in tree mode.
func NewMachine(photos PhotoPicker) *Machine {
	return &Machine{
		mode:   ModeTree,
		photos: photos,
	}
}

// Apply evaluates the transition rules against one gesture state. Rules
// are checked in order and the first match applies:
//
//  1. hand lost while away from the tree: reassemble, clear selection
//  2. fist while away from the tree: reassemble, clear selection
//  3. open palm on the tree: scatter
//  4. pinch outside zoom with photos available: zoom; pick a random photo
//     only if none is already held
//  5. anything else: no transition
//
// Pinching while already zoomed never reselects.
func (m *Machine) Apply(s gesture.State) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case !s.HandDetected && m.mode != ModeTree:
		m.mode = ModeTree
		m.selected = ""

	case s.Gesture == gesture.GestureFist && m.mode != ModeTree:
		m.mode = ModeTree
		m.selected = ""

	case s.Gesture == gesture.GestureOpenPalm && m.mode == ModeTree:
		m.mode = ModeScatter

	case s.Gesture == gesture.GesturePinch && m.mode != ModeZoom:
		count, err := m.photos.Count()
		if err != nil {
			log.Printf("scene: count photos: %v", err)
			break
		}
		if count == 0 {
			break
		}

		if m.selected == "" {
			p, err := m.photos.Random()
			if err != nil {
				log.Printf("scene: pick photo: %v", err)
				break
			}
			m.selected = p.ID
		}
		m.mode = ModeZoom
	}

	return Snapshot{Mode: m.mode, SelectedPhotoID: m.selected}
}

// Snapshot returns the current mode and selection.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Mode: m.mode, SelectedPhotoID: m.selected}
}
