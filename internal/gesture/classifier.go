// Package gesture classifies hand poses into the discrete gestures that
// drive the Phototree display.
package gesture

import (
	"math"

	"github.com/anvesh/phototree/internal/detector"
)

// Gesture is a discrete hand-shape classification. The string values are
// part of the wire format consumed by the rendering frontend.
type Gesture string

const (
	// GestureFist is a closed fist: all four non-thumb fingertips pulled
	// in toward the wrist.
	GestureFist Gesture = "Closed_Fist"
	// GestureOpenPalm is an open palm: all four non-thumb fingertips
	// extended away from the wrist.
	GestureOpenPalm Gesture = "Open_Palm"
	// GesturePinch is a thumb-to-index pinch.
	GesturePinch Gesture = "Pinch"
	// GestureNone means no hand was detected or no rule matched.
	GestureNone Gesture = "None"
)

// Classification thresholds, in normalized landmark space. Tuned by
// inspection against real webcam footage; changing them changes which hand
// shapes trigger which display transitions.
const (
	// FistMaxTipDistance is the maximum fingertip-to-wrist distance for a
	// finger to count as curled.
	FistMaxTipDistance = 0.20
	// PinchMaxDistance is the maximum thumb-tip-to-index-tip distance for
	// a pinch. Looser than a strict touch so the pinch is easy to trigger.
	PinchMaxDistance = 0.08
	// PalmMinTipDistance is the minimum fingertip-to-wrist distance for a
	// finger to count as extended.
	PalmMinTipDistance = 0.30
)

// State is an immutable per-frame classification snapshot. HandX and HandY
// are always within [0,1]; when no hand is detected they hold the screen
// center.
type State struct {
	HandDetected bool    `json:"isHandDetected"`
	Gesture      Gesture `json:"gesture"`
	HandX        float64 `json:"handX"`
	HandY        float64 `json:"handY"`
}

// noHandState is the deterministic result for frames without a hand.
var noHandState = State{
	HandDetected: false,
	Gesture:      GestureNone,
	HandX:        0.5,
	HandY:        0.5,
}

// Classify converts a hand pose into a gesture state. It is a pure
// function of the pose; no history is kept.
//
// The reported hand position is the centroid of all 21 landmarks with the
// x-axis mirrored: a front-facing camera flips the scene, so mirroring
// makes a rightward hand move read as rightward control motion.
//
// Rules are checked in order and the first match wins: fist beats pinch
// beats open palm. Depth (z) is ignored; all distances are 2-D.
func Classify(pose *detector.HandPose) State {
	if pose == nil {
		return noHandState
	}

	var cx, cy float64
	for i := 0; i < detector.NumLandmarks; i++ {
		cx += pose.Points[i].X
		cy += pose.Points[i].Y
	}
	cx /= detector.NumLandmarks
	cy /= detector.NumLandmarks

	s := State{
		HandDetected: true,
		Gesture:      GestureNone,
		HandX:        clamp01(1 - cx),
		HandY:        clamp01(cy),
	}

	wrist := pose.Points[detector.Wrist]
	indexDist := distance2D(pose.Points[detector.IndexTip], wrist)
	middleDist := distance2D(pose.Points[detector.MiddleTip], wrist)
	ringDist := distance2D(pose.Points[detector.RingTip], wrist)
	pinkyDist := distance2D(pose.Points[detector.PinkyTip], wrist)
	pinchDist := distance2D(pose.Points[detector.ThumbTip], pose.Points[detector.IndexTip])

	switch {
	case indexDist < FistMaxTipDistance && middleDist < FistMaxTipDistance &&
		ringDist < FistMaxTipDistance && pinkyDist < FistMaxTipDistance:
		s.Gesture = GestureFist
	case pinchDist < PinchMaxDistance:
		s.Gesture = GesturePinch
	case indexDist > PalmMinTipDistance && middleDist > PalmMinTipDistance &&
		ringDist > PalmMinTipDistance && pinkyDist > PalmMinTipDistance:
		s.Gesture = GestureOpenPalm
	}

	return s
}

// distance2D calculates the Euclidean distance between two landmarks in
// the x/y plane.
func distance2D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
